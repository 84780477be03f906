// Package memory provides a process-local user store for development runs and tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewUserRepository returns an empty in-memory repository.UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user.Clone(), nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return repo.byID[id].Clone(), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[user.Email]; exists {
		return domainerrors.ErrDuplicateEmail.WrapMessage("create user")
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate user id")
		}
		user.ID = id
	}
	if _, exists := repo.byID[user.ID]; exists {
		return errors.Errorf("user id %s already exists", user.ID)
	}

	now := repo.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.byID[user.ID] = user.Clone()
	repo.byEmail[user.Email] = user.ID

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.byID[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if owner, exists := repo.byEmail[user.Email]; exists && owner != user.ID {
		return domainerrors.ErrDuplicateEmail.WrapMessage("update user")
	}

	updated := user.Clone()
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = repo.now()

	delete(repo.byEmail, stored.Email)
	repo.byEmail[updated.Email] = updated.ID
	repo.byID[updated.ID] = updated

	user.CreatedAt = updated.CreatedAt
	user.UpdatedAt = updated.UpdatedAt

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	delete(repo.byEmail, stored.Email)
	delete(repo.byID, id)

	return nil
}

func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	users := make([]*entity.User, 0, len(repo.byID))
	for _, user := range repo.byID {
		users = append(users, user.Clone())
	}
	repo.mu.RUnlock()

	// UUIDv7 breaks ties between records created in the same instant.
	slices.SortFunc(users, func(a, b *entity.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return slices.Compare(b.ID[:], a.ID[:])
	})

	return users, nil
}
