package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetForTenant(ctx context.Context, tenantID, id int64) (*domain.Room, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListForTenant(ctx context.Context, tenantID int64, includeInactive bool) ([]domain.Room, error) {
	args := m.Called(ctx, tenantID, includeInactive)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if room != nil && args.Error(0) == nil {
		room.ID = 10
	}
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) CountActiveForTenant(ctx context.Context, tenantID int64) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockHoursRepository struct {
	mock.Mock
}

func (m *MockHoursRepository) GetForTenant(ctx context.Context, tenantID int64) ([]domain.BusinessHours, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.BusinessHours), args.Error(1)
}

func (m *MockHoursRepository) ReplaceForTenant(ctx context.Context, tenantID int64, hours []domain.BusinessHours) error {
	args := m.Called(ctx, tenantID, hours)
	return args.Error(0)
}

func TestCreateRoom_Success(t *testing.T) {
	rooms := new(MockRoomRepository)
	tenants := new(MockTenantRepository)

	tenants.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Tenant{ID: 1, MaxRooms: 3, IsActive: true}, nil)
	rooms.On("CountActiveForTenant", mock.Anything, int64(1)).Return(int64(2), nil)
	rooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(rooms, tenants, new(MockHoursRepository))
	room, err := svc.CreateRoom(context.Background(), 1, CreateRoomRequest{
		Name:         "VIP Lounge",
		Capacity:     8,
		Category:     "vip",
		PricePerHour: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoomVIP, room.Category)
	assert.True(t, room.IsActive)
	assert.Equal(t, int64(1), room.TenantID)
}

func TestCreateRoom_PlanLimit(t *testing.T) {
	rooms := new(MockRoomRepository)
	tenants := new(MockTenantRepository)

	tenants.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Tenant{ID: 1, MaxRooms: 3, IsActive: true}, nil)
	rooms.On("CountActiveForTenant", mock.Anything, int64(1)).Return(int64(3), nil)

	svc := NewService(rooms, tenants, new(MockHoursRepository))
	_, err := svc.CreateRoom(context.Background(), 1, CreateRoomRequest{Name: "One Too Many", Capacity: 4})

	assert.ErrorIs(t, err, ErrRoomLimitExceeded)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRoom_BadCategory(t *testing.T) {
	svc := NewService(new(MockRoomRepository), new(MockTenantRepository), new(MockHoursRepository))

	_, err := svc.CreateRoom(context.Background(), 1, CreateRoomRequest{
		Name: "X", Capacity: 4, Category: "penthouse",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRoom_Patch(t *testing.T) {
	rooms := new(MockRoomRepository)

	existing := &domain.Room{ID: 10, TenantID: 1, Name: "Old", Capacity: 4, PricePerHour: 20, IsActive: true}
	rooms.On("GetForTenant", mock.Anything, int64(1), int64(10)).Return(existing, nil)
	rooms.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(rooms, new(MockTenantRepository), new(MockHoursRepository))

	name := "Renamed"
	inactive := false
	room, err := svc.UpdateRoom(context.Background(), 1, 10, UpdateRoomRequest{
		Name:     &name,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", room.Name)
	assert.False(t, room.IsActive)
	assert.Equal(t, 4, room.Capacity) // untouched
}

func TestUpdateRoom_InvalidPatch(t *testing.T) {
	rooms := new(MockRoomRepository)
	existing := &domain.Room{ID: 10, TenantID: 1, Name: "Old", Capacity: 4, IsActive: true}
	rooms.On("GetForTenant", mock.Anything, int64(1), int64(10)).Return(existing, nil)

	svc := NewService(rooms, new(MockTenantRepository), new(MockHoursRepository))

	empty := ""
	_, err := svc.UpdateRoom(context.Background(), 1, 10, UpdateRoomRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	zero := 0
	_, err = svc.UpdateRoom(context.Background(), 1, 10, UpdateRoomRequest{Capacity: &zero})
	assert.ErrorIs(t, err, ErrValidation)

	negative := -1.0
	_, err = svc.UpdateRoom(context.Background(), 1, 10, UpdateRoomRequest{PricePerHour: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	rooms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetRoom_CrossTenantIsNotFound(t *testing.T) {
	rooms := new(MockRoomRepository)
	rooms.On("GetForTenant", mock.Anything, int64(2), int64(10)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(rooms, new(MockTenantRepository), new(MockHoursRepository))
	_, err := svc.GetRoom(context.Background(), 2, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBusinessHours_Success(t *testing.T) {
	hours := new(MockHoursRepository)
	hours.On("ReplaceForTenant", mock.Anything, int64(1), mock.Anything).Return(nil)
	hours.On("GetForTenant", mock.Anything, int64(1)).Return([]domain.BusinessHours{
		{TenantID: 1, DayOfWeek: 0, IsClosed: true},
		{TenantID: 1, DayOfWeek: 5, OpenTime: "12:00", CloseTime: "23:00"},
	}, nil)

	svc := NewService(new(MockRoomRepository), new(MockTenantRepository), hours)
	got, err := svc.UpdateBusinessHours(context.Background(), 1, UpdateBusinessHoursRequest{
		Days: []HoursDay{
			{DayOfWeek: 0, IsClosed: true},
			{DayOfWeek: 5, OpenTime: "12:00", CloseTime: "23:00"},
		},
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpdateBusinessHours_Validation(t *testing.T) {
	svc := NewService(new(MockRoomRepository), new(MockTenantRepository), new(MockHoursRepository))
	ctx := context.Background()

	cases := []UpdateBusinessHoursRequest{
		{}, // empty
		{Days: []HoursDay{{DayOfWeek: 7, OpenTime: "10:00", CloseTime: "22:00"}}},                                 // day out of range
		{Days: []HoursDay{{DayOfWeek: 1, OpenTime: "10:00", CloseTime: "22:00"}, {DayOfWeek: 1, IsClosed: true}}}, // duplicate day
		{Days: []HoursDay{{DayOfWeek: 1, OpenTime: "22:00", CloseTime: "10:00"}}},                                 // close before open
		{Days: []HoursDay{{DayOfWeek: 1, OpenTime: "ten", CloseTime: "22:00"}}},                                   // unparsable
	}
	for i, req := range cases {
		_, err := svc.UpdateBusinessHours(ctx, 1, req)
		assert.ErrorIs(t, err, ErrInvalidHours, "case %d", i)
	}
}

func TestGetBusinessHours_EmptyFallsBackToDefault(t *testing.T) {
	hours := new(MockHoursRepository)
	hours.On("GetForTenant", mock.Anything, int64(1)).Return([]domain.BusinessHours{}, nil)

	svc := NewService(new(MockRoomRepository), new(MockTenantRepository), hours)
	got, err := svc.GetBusinessHours(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, "10:00", got[0].OpenTime)
}
