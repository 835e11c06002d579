package auth

type LoginRequest struct {
	// TenantSlug selects the venue the account belongs to. Empty slug logs
	// in against the tenant-less super_admin accounts.
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}
