package impl

import (
	"context"
	"log/slog"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// directoryService implements the DirectoryUsecase interface.
type directoryService struct {
	userRepo        repository.UserRepository
	hasher          service.PasswordHasher
	defaultPassword string
	logger          *slog.Logger
}

// DirectoryServiceParams holds dependencies for DirectoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Config   *config.Config
	Logger   *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	defaultPassword := ""
	if params.Config != nil && params.Config.Auth != nil {
		defaultPassword = params.Config.Auth.DefaultPassword
	}

	return &directoryService{
		userRepo:        params.UserRepo,
		hasher:          params.Hasher,
		defaultPassword: defaultPassword,
		logger:          params.Logger,
	}
}

func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns all users, newest first.
func (srv *directoryService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, toInternal(srv.log(ctx), err, "Failed to list users", domainerrors.ErrInternalError)
	}

	out := make([]*entity.User, 0, len(users))
	for _, user := range users {
		out = append(out, withoutDigest(user))
	}

	return out, nil
}

// Create adds a user. Without a password the configured default is stored.
func (srv *directoryService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, domainerrors.ErrBadInput.WithMessage("Name and email required")
	}

	password := input.Password
	if password == "" {
		if srv.defaultPassword == "" {
			return nil, toInternal(srv.log(ctx), errors.New("no default password configured"),
				"Failed to create user", domainerrors.ErrUserCreationFailed)
		}
		password = srv.defaultPassword
	}

	digest, err := srv.hasher.Hash(ctx, password)
	if err != nil {
		return nil, toInternal(srv.log(ctx), err, "Failed to hash password", domainerrors.ErrUserCreationFailed)
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Age:          input.Age,
		PasswordHash: digest,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, toInternal(srv.log(ctx), err, "Failed to create user", domainerrors.ErrUserCreationFailed)
	}

	srv.log(ctx).Info("User created", slog.String("userID", user.ID.String()))

	return withoutDigest(user), nil
}

// Update applies the supplied fields to an existing user.
func (srv *directoryService) Update(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, toInternal(srv.log(ctx), err, "Failed to load user for update", domainerrors.ErrUserUpdateFailed)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	switch {
	case input.ClearAge:
		user.Age = nil
	case input.Age != nil:
		age := *input.Age
		user.Age = &age
	}
	if input.Password != "" {
		digest, err := srv.hasher.Hash(ctx, input.Password)
		if err != nil {
			return nil, toInternal(srv.log(ctx), err, "Failed to hash password", domainerrors.ErrUserUpdateFailed)
		}
		user.PasswordHash = digest
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		// Deleted between the read and the write.
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, toInternal(srv.log(ctx), err, "Failed to update user", domainerrors.ErrUserUpdateFailed)
	}

	return withoutDigest(user), nil
}

// Delete removes a user permanently.
func (srv *directoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return toInternal(srv.log(ctx), err, "Failed to delete user", domainerrors.ErrUserDeleteFailed)
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id.String()))

	return nil
}
