package domain

import "time"

// BusinessHours holds a tenant's open/close window for one weekday.
// DayOfWeek follows time.Weekday: 0 = Sunday. The (tenant_id, day_of_week)
// pair is unique by schema, one row per tenant per weekday.
type BusinessHours struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	TenantID  int64  `json:"tenant_id" gorm:"uniqueIndex:idx_hours_tenant_day"`
	DayOfWeek int    `json:"day_of_week" gorm:"uniqueIndex:idx_hours_tenant_day" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time"`  // "15:04"
	CloseTime string `json:"close_time"` // "15:04"
	IsClosed  bool   `json:"is_closed"`
}

// Window resolves the open/close instants for a concrete date in the given
// location. ok is false when the tenant is closed that day.
func (h BusinessHours) Window(day time.Time, loc *time.Location) (open, close time.Time, ok bool) {
	if h.IsClosed {
		return time.Time{}, time.Time{}, false
	}
	openT, err := time.Parse("15:04", h.OpenTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	closeT, err := time.Parse("15:04", h.CloseTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	open = time.Date(day.Year(), day.Month(), day.Day(), openT.Hour(), openT.Minute(), 0, 0, loc)
	close = time.Date(day.Year(), day.Month(), day.Day(), closeT.Hour(), closeT.Minute(), 0, 0, loc)
	return open, close, close.After(open)
}

// DefaultBusinessHours is the schedule a fresh tenant starts with:
// open 10:00-23:00 every day.
func DefaultBusinessHours(tenantID int64) []BusinessHours {
	out := make([]BusinessHours, 0, 7)
	for d := 0; d <= 6; d++ {
		out = append(out, BusinessHours{
			TenantID:  tenantID,
			DayOfWeek: d,
			OpenTime:  "10:00",
			CloseTime: "23:00",
		})
	}
	return out
}
