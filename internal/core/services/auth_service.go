package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
	"github.com/caravel-trade/caravel-backend/internal/platform/config"
	"github.com/caravel-trade/caravel-backend/internal/utils"
)

// ErrInvalidCredentials is returned for a bad username/password pair. It
// deliberately does not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService verifies credentials and issues access tokens.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the password against the stored bcrypt hash and issues a JWT.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("Password verification failed", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, err := utils.NewAccessToken(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", "user_id", user.UserID)
	return &dto.LoginResponse{Token: token, UserID: user.UserID, Name: user.Name}, nil
}
