package domain

import "time"

type RoomCategory string

const (
	RoomStandard RoomCategory = "standard"
	RoomVIP      RoomCategory = "vip"
	RoomParty    RoomCategory = "party"
	RoomDuet     RoomCategory = "duet"
)

// Room is a bookable karaoke room owned by a tenant. Every query touching
// rooms must filter by tenant_id.
type Room struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	TenantID     int64        `json:"tenant_id" gorm:"index:idx_rooms_tenant"`
	Name         string       `json:"name" validate:"required"`
	Capacity     int          `json:"capacity" validate:"required,gt=0"`
	Category     RoomCategory `json:"category"`
	PricePerHour float64      `json:"price_per_hour" validate:"gte=0"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
