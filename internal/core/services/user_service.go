package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	portsrepo "github.com/zenapticlabs/expense-management-server/internal/core/ports/repositories"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
	"github.com/zenapticlabs/expense-management-server/internal/utils/mapping"
)

// UserService handles user registration, authentication and lookup.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo, now: time.Now}
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// Register creates a new user account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	currency := req.Currency
	if currency == "" {
		currency = domain.BaseCurrency
	}
	currency, err := utils.NormalizeCurrencyCode(currency)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Currency:     currency,
		CompanyCode:  req.CompanyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, mapping.ToModelUser(user)); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password produce
// the same error so login failures do not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrValidation)
	}
	return user, nil
}
