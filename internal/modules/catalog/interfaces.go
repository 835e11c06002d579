package catalog

import (
	"context"

	"karaokehub/internal/domain"
)

type RoomRepository interface {
	GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Room, error)
	ListForTenant(ctx context.Context, tenantID int64, includeInactive bool) ([]domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	CountActiveForTenant(ctx context.Context, tenantID int64) (int64, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

type HoursRepository interface {
	GetForTenant(ctx context.Context, tenantID int64) ([]domain.BusinessHours, error)
	ReplaceForTenant(ctx context.Context, tenantID int64, hours []domain.BusinessHours) error
}
