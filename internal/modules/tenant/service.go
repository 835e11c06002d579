package tenant

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

const minPasswordLength = 8

// slugPattern keeps slugs URL-safe: lowercase alphanumerics and dashes,
// 2-63 characters, no leading dash.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

type Service struct {
	tenants    TenantRepository
	bcryptCost int
}

func NewService(tenants TenantRepository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{tenants: tenants, bcryptCost: bcryptCost}
}

// Register creates a tenant, its first admin user and the default hours
// schedule in one transaction.
func (s *Service) Register(ctx context.Context, req RegisterTenantRequest) (*domain.Tenant, *domain.User, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, nil, ErrInvalidSlug
	}
	if len(req.AdminPassword) < minPasswordLength {
		return nil, nil, ErrWeakPassword
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, nil, ErrValidation
	}

	plan := domain.Plan(req.Plan)
	switch plan {
	case "":
		plan = domain.PlanFree
	case domain.PlanFree, domain.PlanStandard, domain.PlanPremium:
	default:
		return nil, nil, ErrValidation
	}

	taken, err := s.tenants.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrSlugTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	maxRooms, maxBookings := domain.PlanLimits(plan)
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	t := &domain.Tenant{
		Slug:                slug,
		Name:                req.Name,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
		Timezone:            timezone,
		Currency:            currency,
		Plan:                plan,
		MaxRooms:            maxRooms,
		MaxBookingsPerMonth: maxBookings,
		IsActive:            true,
	}
	admin := &domain.User{
		Email:        req.AdminEmail,
		PasswordHash: string(hash),
		Name:         req.AdminName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	if err := s.tenants.CreateWithAdmin(ctx, t, admin); err != nil {
		return nil, nil, err
	}

	admin.PasswordHash = ""
	return t, admin, nil
}

func (s *Service) GetProfile(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateProfile(ctx context.Context, tenantID int64, patch UpdateTenantRequest) (*domain.Tenant, error) {
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, ErrValidation
		}
		t.Name = *patch.Name
	}
	if patch.ContactEmail != nil {
		t.ContactEmail = *patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		t.ContactPhone = *patch.ContactPhone
	}
	if patch.Timezone != nil {
		if _, err := time.LoadLocation(*patch.Timezone); err != nil {
			return nil, ErrValidation
		}
		t.Timezone = *patch.Timezone
	}
	if patch.Currency != nil {
		t.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}

	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Deactivate soft-deletes a tenant. Its data stays in place; logins and
// bookings refuse from here on.
func (s *Service) Deactivate(ctx context.Context, tenantID int64) error {
	if _, err := s.GetProfile(ctx, tenantID); err != nil {
		return err
	}
	return s.tenants.Deactivate(ctx, tenantID)
}
