package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"karaokehub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows List results. Set fields combine as AND conditions;
// the tenant scope is always applied on top.
type BookingFilter struct {
	From   *time.Time
	To     *time.Time
	RoomID *int64
	Status *domain.BookingStatus
	Limit  int
	Offset int
}

// Create persists b after re-verifying, inside a single transaction, that the
// room still belongs to b.TenantID and that no confirmed booking overlaps
// [StartTime, EndTime). On Postgres the room row is locked FOR UPDATE so two
// racing requests for the same room serialize on the check; the
// bookings_no_overlap exclusion constraint is the backstop. On SQLite the
// write transaction itself serializes.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.TenantID, b.RoomID); err != nil {
			return err
		}
		cnt, err := countOverlaps(tx, b.RoomID, b.StartTime, b.EndTime, 0)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Create(b).Error
	})
	if err != nil && isOverlapViolation(err) {
		return ErrOverlap
	}
	return err
}

// UpdateInterval re-runs the overlap check for a booking whose times changed,
// excluding the booking's own row, then saves the whole record. Same locking
// discipline as Create.
func (r *BookingRepository) UpdateInterval(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.TenantID, b.RoomID); err != nil {
			return err
		}
		cnt, err := countOverlaps(tx, b.RoomID, b.StartTime, b.EndTime, b.ID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Save(b).Error
	})
	if err != nil && isOverlapViolation(err) {
		return ErrOverlap
	}
	return err
}

// Save persists changes that do not touch the booking interval
// (status transitions, customer fields, notes).
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&b)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, tenantID int64, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("tenant_id = ?", tenantID)

	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("end_time > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var out []domain.Booking
	if err := q.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListConfirmedForRoom returns the confirmed bookings touching [from, to) on
// one room, ordered by start time. Used by the availability computation.
func (r *BookingRepository) ListConfirmedForRoom(ctx context.Context, tenantID, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND room_id = ? AND status = ? AND start_time < ? AND end_time > ?",
			tenantID, roomID, domain.BookingConfirmed, to, from).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountForMonth counts a tenant's bookings starting in the month containing
// t, for plan-limit enforcement. Advance bookings count against the month
// they occupy, not the month they were made in. Cancelled bookings still
// count.
func (r *BookingRepository) CountForMonth(ctx context.Context, tenantID int64, t time.Time) (int64, error) {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("tenant_id = ? AND start_time >= ? AND start_time < ?", tenantID, monthStart, monthEnd).
		Count(&cnt).Error
	return cnt, err
}

func lockRoom(tx *gorm.DB, tenantID, roomID int64) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room domain.Room
	if err := q.Where("id = ? AND tenant_id = ?", roomID, tenantID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

// countOverlaps uses half-open interval semantics: a.start < b.end AND
// b.start < a.end. excludeID skips the booking's own row on updates.
func countOverlaps(tx *gorm.DB, roomID int64, start, end time.Time, excludeID int64) (int64, error) {
	q := tx.Model(&domain.Booking{}).
		Where("room_id = ? AND status = ? AND start_time < ? AND end_time > ?",
			roomID, domain.BookingConfirmed, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23P01 exclusion_violation from bookings_no_overlap; 23505 kept for
	// schemas where the constraint was retrofitted as a unique index.
	return pgErr.Code == "23P01" ||
		(pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_no_overlap")
}
