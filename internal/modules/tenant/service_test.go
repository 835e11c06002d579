package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"karaokehub/internal/domain"
)

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

func (m *MockTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) CreateWithAdmin(ctx context.Context, t *domain.Tenant, admin *domain.User) error {
	args := m.Called(ctx, t, admin)
	if args.Error(0) == nil {
		t.ID = 1
		admin.ID = 2
		admin.TenantID = &t.ID
	}
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validRequest() RegisterTenantRequest {
	return RegisterTenantRequest{
		Slug:          "Neon-Nights",
		Name:          "Neon Nights Karaoke",
		Timezone:      "Asia/Almaty",
		Plan:          "standard",
		AdminEmail:    "owner@example.com",
		AdminPassword: "longenough",
		AdminName:     "Owner",
	}
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("ExistsBySlug", mock.Anything, "neon-nights").Return(false, nil)
	repo.On("CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, bcrypt.MinCost)
	tenant, admin, err := svc.Register(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "neon-nights", tenant.Slug)
	assert.Equal(t, domain.PlanStandard, tenant.Plan)
	assert.Equal(t, 15, tenant.MaxRooms)
	assert.Equal(t, 1000, tenant.MaxBookingsPerMonth)
	assert.Equal(t, "USD", tenant.Currency)
	assert.True(t, tenant.IsActive)

	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Empty(t, admin.PasswordHash)
}

func TestRegister_DefaultsToFreePlan(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("ExistsBySlug", mock.Anything, "sing-city").Return(false, nil)
	repo.On("CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Slug = "sing-city"
	req.Plan = ""
	req.Timezone = ""

	svc := NewService(repo, bcrypt.MinCost)
	tenant, _, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, tenant.Plan)
	assert.Equal(t, 3, tenant.MaxRooms)
	assert.Equal(t, "UTC", tenant.Timezone)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(new(MockTenantRepository), bcrypt.MinCost)
	ctx := context.Background()

	req := validRequest()
	req.Slug = "-starts-with-dash"
	_, _, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidSlug)

	req = validRequest()
	req.Slug = "x"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidSlug)

	req = validRequest()
	req.AdminPassword = "short"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrWeakPassword)

	req = validRequest()
	req.Timezone = "Mars/Olympus"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validRequest()
	req.Plan = "enterprise"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_SlugTaken(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("ExistsBySlug", mock.Anything, "neon-nights").Return(true, nil)

	svc := NewService(repo, bcrypt.MinCost)
	_, _, err := svc.Register(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlugTaken)
	repo.AssertNotCalled(t, "CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Tenant{ID: 1, Name: "Old Name", Timezone: "UTC", Currency: "USD", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, bcrypt.MinCost)

	name := "New Name"
	tz := "Europe/Berlin"
	currency := "eur"
	got, err := svc.UpdateProfile(context.Background(), 1, UpdateTenantRequest{
		Name:     &name,
		Timezone: &tz,
		Currency: &currency,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "Europe/Berlin", got.Timezone)
	assert.Equal(t, "EUR", got.Currency)
}

func TestUpdateProfile_BadTimezone(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Tenant{ID: 1, Name: "Name", IsActive: true}, nil)

	svc := NewService(repo, bcrypt.MinCost)

	tz := "Nowhere/Nothing"
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateTenantRequest{Timezone: &tz})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeactivate(t *testing.T) {
	repo := new(MockTenantRepository)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Tenant{ID: 1, IsActive: true}, nil)
	repo.On("Deactivate", mock.Anything, int64(1)).Return(nil)

	svc := NewService(repo, bcrypt.MinCost)
	require.NoError(t, svc.Deactivate(context.Background(), 1))
	repo.AssertExpectations(t)
}
