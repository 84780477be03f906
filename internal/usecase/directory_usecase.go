package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateUserInput defines a user created by an authenticated caller.
// An empty Password falls back to the configured default.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// UpdateUserInput is a partial update. Empty strings leave the field unchanged.
// Age replaces the stored age when set; ClearAge removes it.
type UpdateUserInput struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
	Age      *int
	ClearAge bool
}

// DirectoryUsecase manages user records on behalf of authenticated callers.
type DirectoryUsecase interface {
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, input *UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
