package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type Service struct {
	rooms   RoomRepository
	tenants TenantRepository
	hours   HoursRepository
}

func NewService(rooms RoomRepository, tenants TenantRepository, hours HoursRepository) *Service {
	return &Service{
		rooms:   rooms,
		tenants: tenants,
		hours:   hours,
	}
}

func (s *Service) ListRooms(ctx context.Context, tenantID int64, includeInactive bool) ([]domain.Room, error) {
	return s.rooms.ListForTenant(ctx, tenantID, includeInactive)
}

func (s *Service) GetRoom(ctx context.Context, tenantID, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetForTenant(ctx, tenantID, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

// CreateRoom adds a room, enforcing the tenant plan's MaxRooms cap on active
// rooms.
func (s *Service) CreateRoom(ctx context.Context, tenantID int64, req CreateRoomRequest) (*domain.Room, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.MaxRooms > 0 {
		cnt, err := s.rooms.CountActiveForTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if cnt >= int64(tenant.MaxRooms) {
			return nil, ErrRoomLimitExceeded
		}
	}

	room := &domain.Room{
		TenantID:     tenantID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Category:     category,
		PricePerHour: req.PricePerHour,
		IsActive:     true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, tenantID, roomID int64, patch UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, ErrValidation
		}
		room.Name = *patch.Name
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return nil, ErrValidation
		}
		room.Capacity = *patch.Capacity
	}
	if patch.Category != nil {
		category, err := parseCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		room.Category = category
	}
	if patch.PricePerHour != nil {
		if *patch.PricePerHour < 0 {
			return nil, ErrValidation
		}
		room.PricePerHour = *patch.PricePerHour
	}
	if patch.IsActive != nil {
		room.IsActive = *patch.IsActive
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetBusinessHours(ctx context.Context, tenantID int64) ([]domain.BusinessHours, error) {
	hours, err := s.hours.GetForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return domain.DefaultBusinessHours(tenantID), nil
	}
	return hours, nil
}

// UpdateBusinessHours replaces the tenant's schedule. The request must cover
// each weekday at most once, with open < close for every open day.
func (s *Service) UpdateBusinessHours(ctx context.Context, tenantID int64, req UpdateBusinessHoursRequest) ([]domain.BusinessHours, error) {
	if len(req.Days) == 0 || len(req.Days) > 7 {
		return nil, ErrInvalidHours
	}

	seen := make(map[int]bool, 7)
	rows := make([]domain.BusinessHours, 0, len(req.Days))
	for _, d := range req.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 || seen[d.DayOfWeek] {
			return nil, ErrInvalidHours
		}
		seen[d.DayOfWeek] = true

		if !d.IsClosed {
			open, err1 := time.Parse("15:04", d.OpenTime)
			close, err2 := time.Parse("15:04", d.CloseTime)
			if err1 != nil || err2 != nil || !close.After(open) {
				return nil, ErrInvalidHours
			}
		}

		rows = append(rows, domain.BusinessHours{
			TenantID:  tenantID,
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			IsClosed:  d.IsClosed,
		})
	}

	if err := s.hours.ReplaceForTenant(ctx, tenantID, rows); err != nil {
		return nil, err
	}
	return s.GetBusinessHours(ctx, tenantID)
}

func parseCategory(v string) (domain.RoomCategory, error) {
	if v == "" {
		return domain.RoomStandard, nil
	}
	c := domain.RoomCategory(v)
	switch c {
	case domain.RoomStandard, domain.RoomVIP, domain.RoomParty, domain.RoomDuet:
		return c, nil
	}
	return "", ErrValidation
}
