package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var t domain.Tenant
	tx := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&t)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		Count(&cnt).Error
	return cnt > 0, err
}

// CreateWithAdmin inserts the tenant, its first admin user and the default
// business-hours schedule in one transaction. A registration either exists
// completely or not at all.
func (r *TenantRepository) CreateWithAdmin(ctx context.Context, t *domain.Tenant, admin *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}

		admin.TenantID = &t.ID
		admin.Email = normalizeEmail(admin.Email)
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		hours := domain.DefaultBusinessHours(t.ID)
		return tx.Create(&hours).Error
	})
}

// Deactivate soft-deletes a tenant. Rows stay; logins and bookings for the
// tenant refuse from here on.
func (r *TenantRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
