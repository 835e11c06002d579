package booking

import "time"

type CreateBookingRequest struct {
	RoomID        int64     `json:"room_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	Notes         string    `json:"notes"`
}

// UpdateBookingRequest patches a booking. Nil fields stay untouched; changing
// either time re-runs the overlap check.
type UpdateBookingRequest struct {
	CustomerName  *string    `json:"customer_name"`
	CustomerEmail *string    `json:"customer_email"`
	CustomerPhone *string    `json:"customer_phone"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Notes         *string    `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	RoomID    int64      `json:"room_id"`
	Date      string     `json:"date"`
	OpenTime  string     `json:"open_time"`
	CloseTime string     `json:"close_time"`
	IsClosed  bool       `json:"is_closed"`
	FreeSlots []TimeSlot `json:"free_slots"`
}
