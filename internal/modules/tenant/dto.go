package tenant

// RegisterTenantRequest signs up a venue together with its first admin
// account. Both rows are created atomically.
type RegisterTenantRequest struct {
	Slug         string `json:"slug" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Timezone     string `json:"timezone"`
	Currency     string `json:"currency"`
	Plan         string `json:"plan"`

	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required"`
	AdminName     string `json:"admin_name" binding:"required"`
}

type UpdateTenantRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Timezone     *string `json:"timezone"`
	Currency     *string `json:"currency"`
}
