package booking

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"karaokehub/internal/domain"
	"karaokehub/internal/repository"
)

const (
	EventCreated   = "booking.created"
	EventUpdated   = "booking.updated"
	EventCancelled = "booking.cancelled"
	EventCompleted = "booking.completed"
	EventNoShow    = "booking.no_show"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	hours    HoursRepository
	tenants  TenantRepository
	notifs   Notifier

	// enforceHours rejects intervals outside the tenant's business hours
	// for non-admin callers. Admins may always override.
	enforceHours bool
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	hours HoursRepository,
	tenants TenantRepository,
	notifs Notifier,
	enforceHours bool,
) *Service {
	return &Service{
		bookings:     bookings,
		rooms:        rooms,
		hours:        hours,
		tenants:      tenants,
		notifs:       notifs,
		enforceHours: enforceHours,
	}
}

// CreateBooking validates the request against the tenant's rooms and business
// hours and persists it. The final existence + overlap check runs atomically
// inside the repository so two racing requests cannot both win the same slot.
func (s *Service) CreateBooking(ctx context.Context, tenantID int64, actorRole string, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidInterval
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !tenant.IsActive {
		return nil, ErrNotFound
	}

	if tenant.MaxBookingsPerMonth > 0 {
		cnt, err := s.bookings.CountForMonth(ctx, tenantID, req.StartTime)
		if err != nil {
			return nil, err
		}
		if cnt >= int64(tenant.MaxBookingsPerMonth) {
			return nil, ErrPlanLimitExceeded
		}
	}

	room, err := s.rooms.GetForTenant(ctx, tenantID, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrNotFound
	}

	if err := s.checkBusinessHours(ctx, tenant, actorRole, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		TenantID:      tenantID,
		RoomID:        room.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        domain.BookingConfirmed,
		Notes:         req.Notes,
		TotalPrice:    totalPrice(room.PricePerHour, req.StartTime, req.EndTime),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, s.mapRepoError(ctx, tenantID, room.ID, req.StartTime, req.EndTime, err)
	}

	s.notify(tenantID, b.RoomID, b.ID, EventCreated)
	return b, nil
}

// UpdateBooking applies a patch. A time change re-validates the interval and
// re-runs the overlap check, excluding the booking's own row.
func (s *Service) UpdateBooking(ctx context.Context, tenantID int64, actorRole string, bookingID int64, patch UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.getForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, ErrStatusTransition
	}

	if patch.CustomerName != nil {
		b.CustomerName = *patch.CustomerName
	}
	if patch.CustomerEmail != nil {
		b.CustomerEmail = *patch.CustomerEmail
	}
	if patch.CustomerPhone != nil {
		b.CustomerPhone = *patch.CustomerPhone
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}

	timesChanged := false
	if patch.StartTime != nil && !patch.StartTime.Equal(b.StartTime) {
		b.StartTime = *patch.StartTime
		timesChanged = true
	}
	if patch.EndTime != nil && !patch.EndTime.Equal(b.EndTime) {
		b.EndTime = *patch.EndTime
		timesChanged = true
	}

	if timesChanged {
		if !b.EndTime.After(b.StartTime) {
			return nil, ErrInvalidInterval
		}

		tenant, err := s.tenants.GetByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if err := s.checkBusinessHours(ctx, tenant, actorRole, b.StartTime, b.EndTime); err != nil {
			return nil, err
		}

		room, err := s.rooms.GetForTenant(ctx, tenantID, b.RoomID)
		if err != nil {
			return nil, err
		}
		b.TotalPrice = totalPrice(room.PricePerHour, b.StartTime, b.EndTime)

		if err := s.bookings.UpdateInterval(ctx, b); err != nil {
			return nil, s.mapRepoError(ctx, tenantID, b.RoomID, b.StartTime, b.EndTime, err)
		}
	} else {
		if err := s.bookings.Save(ctx, b); err != nil {
			return nil, err
		}
	}

	s.notify(tenantID, b.RoomID, b.ID, EventUpdated)
	return b, nil
}

// CancelBooking moves confirmed → cancelled. Cancelled slots immediately
// become bookable again since overlap checks only look at confirmed rows.
func (s *Service) CancelBooking(ctx context.Context, tenantID, bookingID int64, reason string) (*domain.Booking, error) {
	return s.transition(ctx, tenantID, bookingID, domain.BookingCancelled, reason, EventCancelled)
}

// CompleteBooking moves confirmed → completed once the session finished.
func (s *Service) CompleteBooking(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, tenantID, bookingID, domain.BookingCompleted, "", EventCompleted)
}

// MarkNoShow moves confirmed → no_show.
func (s *Service) MarkNoShow(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, tenantID, bookingID, domain.BookingNoShow, "", EventNoShow)
}

func (s *Service) transition(ctx context.Context, tenantID, bookingID int64, to domain.BookingStatus, reason, event string) (*domain.Booking, error) {
	b, err := s.getForTenant(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	// confirmed is the only non-terminal status, so any transition out of a
	// terminal state is rejected here.
	if b.Status != domain.BookingConfirmed {
		return nil, ErrStatusTransition
	}

	b.Status = to
	if to == domain.BookingCancelled {
		now := time.Now()
		b.CancelledAt = &now
		b.CancelReason = reason
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	s.notify(tenantID, b.RoomID, b.ID, event)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error) {
	return s.getForTenant(ctx, tenantID, bookingID)
}

// ListBookings returns the tenant's bookings; filters combine as AND.
func (s *Service) ListBookings(ctx context.Context, tenantID int64, f repository.BookingFilter) ([]domain.Booking, error) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.bookings.List(ctx, tenantID, f)
}

// RoomAvailability computes the free slots for one room on one date: the
// business-hours window minus the merged confirmed bookings.
func (s *Service) RoomAvailability(ctx context.Context, tenantID, roomID int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidInterval
	}

	room, err := s.rooms.GetForTenant(ctx, tenantID, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	loc := tenantLocation(tenant)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	h, err := s.hours.GetForDay(ctx, tenantID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	open, close, ok := h.Window(day, loc)
	if !ok {
		return &AvailabilityResponse{
			RoomID:    room.ID,
			Date:      dateStr,
			IsClosed:  true,
			FreeSlots: []TimeSlot{},
		}, nil
	}

	confirmed, err := s.bookings.ListConfirmedForRoom(ctx, tenantID, room.ID, open, close)
	if err != nil {
		return nil, err
	}
	busy := make([]TimeSlot, 0, len(confirmed))
	for _, b := range confirmed {
		busy = append(busy, TimeSlot{Start: b.StartTime, End: b.EndTime})
	}

	return &AvailabilityResponse{
		RoomID:    room.ID,
		Date:      dateStr,
		OpenTime:  h.OpenTime,
		CloseTime: h.CloseTime,
		FreeSlots: subtractBusy(open, close, busy),
	}, nil
}

func (s *Service) getForTenant(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) checkBusinessHours(ctx context.Context, tenant *domain.Tenant, actorRole string, start, end time.Time) error {
	if !s.enforceHours || canOverrideHours(actorRole) {
		return nil
	}

	loc := tenantLocation(tenant)
	localStart := start.In(loc)
	localEnd := end.In(loc)

	h, err := s.hours.GetForDay(ctx, tenant.ID, int(localStart.Weekday()))
	if err != nil {
		return err
	}
	open, close, ok := h.Window(localStart, loc)
	if !ok {
		return ErrOutOfHours
	}
	if localStart.Before(open) || localEnd.After(close) {
		return ErrOutOfHours
	}
	return nil
}

// mapRepoError converts repository sentinels to module errors, attaching the
// first conflicting interval to conflicts when it can be read back.
func (s *Service) mapRepoError(ctx context.Context, tenantID, roomID int64, start, end time.Time, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrOverlap):
		if existing, lerr := s.bookings.ListConfirmedForRoom(ctx, tenantID, roomID, start, end); lerr == nil && len(existing) > 0 {
			return &ConflictError{Start: existing[0].StartTime, End: existing[0].EndTime}
		}
		return ErrConflict
	default:
		return err
	}
}

func (s *Service) notify(tenantID, roomID, bookingID int64, eventType string) {
	if s.notifs != nil {
		s.notifs.BookingEvent(tenantID, roomID, bookingID, eventType)
	}
}

func canOverrideHours(role string) bool {
	return role == string(domain.RoleAdmin) || role == string(domain.RoleSuperAdmin)
}

func tenantLocation(t *domain.Tenant) *time.Location {
	if t.Timezone != "" {
		if loc, err := time.LoadLocation(t.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

func totalPrice(pricePerHour float64, start, end time.Time) float64 {
	total := end.Sub(start).Hours() * pricePerHour
	return math.Round(total*100) / 100
}

// subtractBusy clips the busy slots to [open, close), merges them and returns
// the gaps.
func subtractBusy(open, close time.Time, busy []TimeSlot) []TimeSlot {
	if len(busy) == 0 {
		return []TimeSlot{{Start: open, End: close}}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	merged := make([]TimeSlot, 0, len(busy))
	for _, s := range busy {
		if s.End.Before(open) || !s.Start.Before(close) {
			continue
		}
		if s.Start.Before(open) {
			s.Start = open
		}
		if s.End.After(close) {
			s.End = close
		}
		if !s.End.After(s.Start) {
			continue
		}

		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := merged[len(merged)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
				merged[len(merged)-1] = last
			}
		} else {
			merged = append(merged, s)
		}
	}

	cur := open
	out := make([]TimeSlot, 0)
	for _, b := range merged {
		if b.Start.After(cur) {
			out = append(out, TimeSlot{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(close) {
			break
		}
	}
	if cur.Before(close) {
		out = append(out, TimeSlot{Start: cur, End: close})
	}
	return out
}
