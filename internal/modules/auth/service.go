package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"karaokehub/internal/domain"
)

const minPasswordLength = 8

type Service struct {
	users      UserRepository
	tenants    TenantRepository
	jwt        tokenIssuer
	bcryptCost int
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepository, tenants TenantRepository, jwt tokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		tenants:    tenants,
		jwt:        jwt,
		bcryptCost: bcryptCost,
	}
}

// Login authenticates an account inside the tenant named by slug and issues a
// signed token carrying {user_id, tenant_id, role}. Every failure path
// returns ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var tenantID *int64

	slug := strings.ToLower(strings.TrimSpace(req.TenantSlug))
	if slug != "" {
		tenant, err := s.tenants.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		if !tenant.IsActive {
			return nil, ErrInvalidCredentials
		}
		tenantID = &tenant.ID
	}

	user, err := s.users.GetByEmail(ctx, tenantID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a comparison anyway so the timing of unknown emails
			// matches known ones.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinval"), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.TenantID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

// RegisterUser creates a staff/user/admin account inside the caller's tenant.
// Email uniqueness is scoped to the tenant.
func (s *Service) RegisterUser(ctx context.Context, tenantID int64, req RegisterUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleStaff, domain.RoleUser:
	default:
		return nil, ErrInvalidRole
	}

	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, &tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		TenantID:     &tenantID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
