package impl

import (
	"log/slog"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"
)

func toInternal(logger *slog.Logger, err error, msg string, fallback *domainerrors.BaseError) error {
	if !domainerrors.IsInternal(err) {
		return err
	}

	logger.Error(msg, slog.Any("error", err))

	return errors.Join(fallback, err)
}

func withoutDigest(user *entity.User) *entity.User {
	clone := user.Clone()
	clone.PasswordHash = ""

	return clone
}
