package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/core/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
	user         domain.User
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockUserRepo, "test-secret", time.Hour, "obs-backend-test")

	hash, err := utils.HashPassword("correct horse battery staple")
	suite.Require().NoError(err)
	suite.user = domain.User{
		ID:           10,
		Username:     "alice",
		PasswordHash: hash,
		Active:       true,
		Roles:        []domain.Role{domain.RoleCustomer},
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse battery staple"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.Equal("alice", resp.User.Username)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})

	// Same error kind as a bad password so usernames are not enumerable.
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_DisabledUser() {
	ctx := context.Background()
	suite.user.Active = false
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse battery staple"})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegister_HashesPasswordOnce() {
	ctx := context.Background()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(&domain.User{ID: 1, Username: "alice"}, nil).Once()

	req := dto.RegisterRequest{
		Username:    "alice",
		Password:    "hunter2hunter2",
		Email:       "alice@example.com",
		PhoneNumber: "5550001111",
		FullName:    "Alice Kl",
	}
	_, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	suite.Equal([]domain.Role{domain.RoleCustomer}, saved.Roles)
	suite.True(saved.Active)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "hunter2hunter2"})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
