package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/obsbank/obs_backend/internal/apperrors"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
	"github.com/obsbank/obs_backend/internal/utils"
)

// authService exchanges credentials for signed access tokens.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and issues a JWT whose subject is the
// username. Bad username and bad password produce the same error so the
// endpoint does not leak which usernames exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return nil, fmt.Errorf("%w: user account is disabled", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	token, err := utils.GenerateJWT(user.Username, roles, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.Info("User logged in", slog.String("username", user.Username))
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.jwtExpiry),
		User:        dto.ToUserResponse(user),
	}, nil
}
