package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/core/services"
	"github.com/zenapticlabs/expense-management-server/internal/dto"
	"github.com/zenapticlabs/expense-management-server/internal/models"
	"github.com/zenapticlabs/expense-management-server/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestRegister_NormalizesEmailAndHashesPassword() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Email:    "  Jamie@Example.COM ",
		Password: "hunter2hunter2",
		Name:     "Jamie",
		Currency: "eur",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "jamie@example.com" &&
			u.Currency == "EUR" &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("jamie@example.com", user.Email)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Email: "jamie@example.com", Password: "hunter2hunter2", Name: "Jamie"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("models.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "jamie@example.com").
		Return(&domain.User{Email: "jamie@example.com", PasswordHash: hash}, nil).Once()

	user, err := suite.service.Authenticate(ctx, dto.LoginRequest{Email: "Jamie@example.com", Password: "hunter2hunter2"})

	suite.Require().NoError(err)
	suite.Equal("jamie@example.com", user.Email)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPasswordAndUnknownEmailLookAlike() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	suite.mockRepo.On("FindUserByEmail", ctx, "known@example.com").
		Return(&domain.User{Email: "known@example.com", PasswordHash: hash}, nil).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "unknown@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, errWrongPassword := suite.service.Authenticate(ctx, dto.LoginRequest{Email: "known@example.com", Password: "wrong"})
	_, errUnknownEmail := suite.service.Authenticate(ctx, dto.LoginRequest{Email: "unknown@example.com", Password: "whatever"})

	suite.Require().Error(errWrongPassword)
	suite.Require().Error(errUnknownEmail)
	suite.ErrorIs(errWrongPassword, apperrors.ErrValidation)
	suite.ErrorIs(errUnknownEmail, apperrors.ErrValidation)
	suite.Equal(errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
