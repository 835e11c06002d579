package tenant

import (
	"context"

	"karaokehub/internal/domain"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	CreateWithAdmin(ctx context.Context, t *domain.Tenant, admin *domain.User) error
	Update(ctx context.Context, t *domain.Tenant) error
	Deactivate(ctx context.Context, id int64) error
}
