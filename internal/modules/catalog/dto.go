package catalog

type CreateRoomRequest struct {
	Name         string  `json:"name" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,gt=0"`
	Category     string  `json:"category"`
	PricePerHour float64 `json:"price_per_hour" binding:"gte=0"`
}

type UpdateRoomRequest struct {
	Name         *string  `json:"name"`
	Capacity     *int     `json:"capacity"`
	Category     *string  `json:"category"`
	PricePerHour *float64 `json:"price_per_hour"`
	IsActive     *bool    `json:"is_active"`
}

// HoursDay is one weekday's window in an UpdateBusinessHoursRequest.
type HoursDay struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

// UpdateBusinessHoursRequest replaces the full 7-day schedule.
type UpdateBusinessHoursRequest struct {
	Days []HoursDay `json:"days" binding:"required"`
}
