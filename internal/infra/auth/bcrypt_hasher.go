// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"

	"accounts/config"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// maxPasswordBytes is the longest input bcrypt reads; anything past it would be ignored.
const (
	maxPasswordBytes       = 72
	passwordTooLongMessage = "Password must be at most 72 bytes"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// A weighted semaphore caps how many digests are computed at once.
type bcryptHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return NewBcryptHasherWithCost(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)
}

// NewBcryptHasherWithCost builds a hasher with an explicit work factor and concurrency limit.
func NewBcryptHasherWithCost(cost, concurrency int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency < 1 {
		concurrency = 1
	}

	return &bcryptHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "wait for hash slot")
	}
	defer h.slots.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domainerrors.ErrBadInput.WithMessage(passwordTooLongMessage)
	}
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(digest), nil
}

// Verify compares a plaintext password with a bcrypt digest. A password longer than
// maxPasswordBytes never matches, since no such password can have been hashed.
func (h *bcryptHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	if len(password) > maxPasswordBytes {
		return false, nil
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "wait for hash slot")
	}
	defer h.slots.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrap(err, "malformed password digest")
	}
}
