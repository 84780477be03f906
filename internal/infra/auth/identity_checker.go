package auth

import (
	"context"

	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"github.com/google/uuid"
)

type repositoryIdentityChecker struct {
	users repository.UserRepository
}

// NewIdentityChecker confirms token subjects against the user store.
func NewIdentityChecker(users repository.UserRepository) service.IdentityChecker {
	return &repositoryIdentityChecker{users: users}
}

func (c *repositoryIdentityChecker) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if _, err := c.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "look up token subject")
	}

	return true, nil
}
