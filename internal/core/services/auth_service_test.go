package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/core/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/platform/config"
	"github.com/caravel-trade/caravel-backend/internal/utils"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "caravel-test",
	}
}

func activeUser(t *testing.T, password string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return domain.User{
		UserID:       uuid.NewString(),
		Username:     "operator",
		Name:         "Operator One",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := services.NewAuthService(mockUserRepo, authTestConfig())

	user := activeUser(t, "correct horse")
	mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	resp, err := service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "correct horse"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.UserID, resp.UserID)
	assert.Equal(t, user.Name, resp.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := services.NewAuthService(mockUserRepo, authTestConfig())

	user := activeUser(t, "correct horse")
	mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	_, err := service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := services.NewAuthService(mockUserRepo, authTestConfig())

	mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := services.NewAuthService(mockUserRepo, authTestConfig())

	user := activeUser(t, "correct horse")
	user.IsActive = false
	mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	_, err := service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "correct horse"})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := services.NewUserService(mockUserRepo)

	mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "operator" && user.IsActive &&
			user.PasswordHash != "" && user.PasswordHash != "plaintext pass" &&
			utils.VerifyPassword("plaintext pass", user.PasswordHash)
	})).Return(nil).Once()

	user, err := service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator",
		Name:     "Operator One",
		Password: "plaintext pass",
	}, uuid.NewString())

	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	mockUserRepo.AssertExpectations(t)
}
