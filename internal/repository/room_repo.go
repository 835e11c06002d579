package repository

import (
	"context"

	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetForTenant loads one room, scoped by tenant. A room owned by another
// tenant comes back as gorm.ErrRecordNotFound, same as a missing one.
func (r *RoomRepository) GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&room)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) ListForTenant(ctx context.Context, tenantID int64, includeInactive bool) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var out []domain.Room
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) CountActiveForTenant(ctx context.Context, tenantID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&cnt).Error
	return cnt, err
}
