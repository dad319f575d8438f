package services

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/dto"
)

// UserSvcFacade exposes user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// AuthSvcFacade exposes authentication operations.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
