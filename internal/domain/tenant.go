package domain

import "time"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Tenant is an isolated venue account. Every room, user, booking and
// business-hours row belongs to exactly one tenant. Tenants are never
// hard-deleted; deactivation flips IsActive.
type Tenant struct {
	ID                  int64     `json:"id" gorm:"primaryKey"`
	Slug                string    `json:"slug" gorm:"uniqueIndex;size:64" validate:"required"`
	Name                string    `json:"name" validate:"required"`
	ContactEmail        string    `json:"contact_email,omitempty"`
	ContactPhone        string    `json:"contact_phone,omitempty"`
	Timezone            string    `json:"timezone"`
	Currency            string    `json:"currency"`
	Plan                Plan      `json:"plan"`
	MaxRooms            int       `json:"max_rooms"`
	MaxBookingsPerMonth int       `json:"max_bookings_per_month"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PlanLimits returns the room and monthly-booking caps for a plan.
func PlanLimits(p Plan) (maxRooms, maxBookingsPerMonth int) {
	switch p {
	case PlanPremium:
		return 50, 5000
	case PlanStandard:
		return 15, 1000
	default:
		return 3, 100
	}
}
