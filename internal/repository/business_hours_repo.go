package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type BusinessHoursRepository struct {
	db *gorm.DB
}

func NewBusinessHoursRepository(db *gorm.DB) *BusinessHoursRepository {
	return &BusinessHoursRepository{db: db}
}

func (r *BusinessHoursRepository) GetForTenant(ctx context.Context, tenantID int64) ([]domain.BusinessHours, error) {
	var out []domain.BusinessHours
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("day_of_week ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetForDay returns the window for one weekday. Tenants with no row for that
// day fall back to the default schedule rather than appearing closed.
func (r *BusinessHoursRepository) GetForDay(ctx context.Context, tenantID int64, dayOfWeek int) (*domain.BusinessHours, error) {
	var h domain.BusinessHours
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND day_of_week = ?", tenantID, dayOfWeek).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			def := domain.DefaultBusinessHours(tenantID)[dayOfWeek]
			return &def, nil
		}
		return nil, err
	}
	return &h, nil
}

// ReplaceForTenant swaps the whole 7-day schedule atomically.
func (r *BusinessHoursRepository) ReplaceForTenant(ctx context.Context, tenantID int64, hours []domain.BusinessHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).Delete(&domain.BusinessHours{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].TenantID = tenantID
		}
		return tx.Create(&hours).Error
	})
}
