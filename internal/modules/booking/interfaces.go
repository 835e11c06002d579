package booking

import (
	"context"
	"time"

	"karaokehub/internal/domain"
	"karaokehub/internal/repository"
)

// BookingRepository is the persistence contract for bookings. Create and
// UpdateInterval must run their existence + overlap checks and the write as
// one atomic transaction.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	UpdateInterval(ctx context.Context, b *domain.Booking) error
	Save(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	List(ctx context.Context, tenantID int64, f repository.BookingFilter) ([]domain.Booking, error)
	ListConfirmedForRoom(ctx context.Context, tenantID, roomID int64, from, to time.Time) ([]domain.Booking, error)
	CountForMonth(ctx context.Context, tenantID int64, t time.Time) (int64, error)
}

type RoomRepository interface {
	GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Room, error)
}

type HoursRepository interface {
	GetForDay(ctx context.Context, tenantID int64, dayOfWeek int) (*domain.BusinessHours, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// Notifier broadcasts a booking mutation to the tenant's subscribers.
// Delivery is best-effort; the booking core never waits on it.
type Notifier interface {
	BookingEvent(tenantID, roomID, bookingID int64, eventType string)
}
