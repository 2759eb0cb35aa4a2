package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	"github.com/obsbank/obs_backend/internal/utils"
)

// Users creates the built-in admin and banker users when they are absent.
// Passwords are the usernames; operators are expected to change them on first
// login in any real deployment.
func Users(ctx context.Context, userRepo portsrepo.UserRepositoryFacade, logger *slog.Logger) error {
	builtins := []struct {
		username string
		fullName string
		roles    []domain.Role
	}{
		{"admin", "System Administrator", []domain.Role{domain.RoleAdmin, domain.RoleBanker}},
		{"banker", "Branch Banker", []domain.Role{domain.RoleBanker}},
	}

	for _, b := range builtins {
		_, err := userRepo.FindUserByUsername(ctx, b.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check for seed user %s: %w", b.username, err)
		}

		hashed, err := utils.HashPassword(b.username)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := domain.User{
			Username:     b.username,
			PasswordHash: hashed,
			Email:        b.username + "@obsbank.local",
			FullName:     b.fullName,
			Roles:        b.roles,
			Active:       true,
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := userRepo.SaveUser(ctx, user); err != nil {
			// A concurrent replica may have just created it.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed user %s: %w", b.username, err)
		}
		logger.Info("Seed user created", slog.String("username", b.username))
	}
	return nil
}
