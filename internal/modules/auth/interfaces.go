package auth

import (
	"context"

	"karaokehub/internal/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, tenantID *int64, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ExistsByEmail(ctx context.Context, tenantID *int64, email string) (bool, error)
}

type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, tenantID *int64, role string) (string, error)
}
