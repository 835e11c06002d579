package domain

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleStaff      UserRole = "staff"
	RoleUser       UserRole = "user"
)

// User is an account scoped to exactly one tenant. TenantID is nil only for
// super_admin accounts, which are tenant-less. Email uniqueness is scoped per
// tenant, not global.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	TenantID     *int64    `json:"tenant_id,omitempty" gorm:"uniqueIndex:idx_users_tenant_email"`
	Email        string    `json:"email" gorm:"uniqueIndex:idx_users_tenant_email;size:255" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
