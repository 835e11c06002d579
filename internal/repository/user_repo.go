package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail looks a user up inside one tenant. tenantID nil searches the
// tenant-less super_admin accounts instead.
func (r *UserRepository) GetByEmail(ctx context.Context, tenantID *int64, email string) (*domain.User, error) {
	q := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email))
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	} else {
		q = q.Where("tenant_id IS NULL")
	}

	var u domain.User
	if err := q.First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// ExistsByEmail enforces per-tenant email uniqueness ahead of the composite
// index, which cannot cover the NULL-tenant super_admin rows on Postgres.
func (r *UserRepository) ExistsByEmail(ctx context.Context, tenantID *int64, email string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("LOWER(email) = ?", normalizeEmail(email))
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	} else {
		q = q.Where("tenant_id IS NULL")
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
