package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// IsTerminal reports whether a booking in this status can never change again.
// Confirmed is the only live status; everything else is terminal.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted || s == BookingNoShow
}

// Booking reserves one room for a contiguous [StartTime, EndTime) interval.
// Two confirmed bookings for the same room must never overlap.
type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	Reference     string        `json:"reference" gorm:"uniqueIndex;size:36"`
	TenantID      int64         `json:"tenant_id" gorm:"index:idx_bookings_tenant"`
	RoomID        int64         `json:"room_id" gorm:"index:idx_bookings_room"`
	CustomerName  string        `json:"customer_name" validate:"required"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	StartTime     time.Time     `json:"start_time" validate:"required"`
	EndTime       time.Time     `json:"end_time" validate:"required"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	TotalPrice    float64       `json:"total_price"`
	CancelReason  string        `json:"cancel_reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// Overlaps reports whether [StartTime, EndTime) shares any instant with
// [start, end). End instants are exclusive, so back-to-back bookings touch
// without conflict.
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
