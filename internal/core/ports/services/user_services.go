package services

import (
	"context"

	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines registration and authentication.
type UserWriterSvc interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies credentials and returns the user; invalid
	// credentials surface as apperrors.ErrValidation without distinguishing
	// unknown email from wrong password.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.User, error)
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
