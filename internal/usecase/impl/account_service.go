// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and signs the caller in.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrBadInput.WithMessage("Name, email, and password are required")
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, srv.internal(ctx, err, "Failed to check existing email", domainerrors.ErrInternalError)
	}

	digest, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, srv.internal(ctx, err, "Failed to hash password", domainerrors.ErrInternalError)
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Age:          input.Age,
		PasswordHash: digest,
	}
	// The unique index still catches a concurrent registration for the same email.
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, srv.internal(ctx, err, "Failed to create user", domainerrors.ErrInternalError)
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, srv.internal(ctx, err, "Failed to issue token", domainerrors.ErrInternalError)
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()))

	return &usecase.AuthOutput{User: withoutDigest(user), Token: token}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, srv.internal(ctx, err, "Failed to find user for login", domainerrors.ErrInternalError)
	}

	ok, err := srv.hasher.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		return nil, srv.internal(ctx, err, "Failed to verify password", domainerrors.ErrInternalError)
	}
	if !ok {
		srv.log(ctx).Debug("Password mismatch", slog.String("userID", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, srv.internal(ctx, err, "Failed to issue token", domainerrors.ErrInternalError)
	}

	return &usecase.AuthOutput{User: withoutDigest(user), Token: token}, nil
}

// internal passes client errors through and turns everything else into fallback, logging the cause.
func (srv *accountService) internal(ctx context.Context, err error, msg string, fallback *domainerrors.BaseError) error {
	return toInternal(srv.log(ctx), err, msg, fallback)
}
