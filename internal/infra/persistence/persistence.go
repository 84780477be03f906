// Package persistence selects the user store backend from configuration.
package persistence

import (
	"log/slog"

	"accounts/config"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/persistence/sqldb"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository returns the repository for cfg.Store.Driver. SQL drivers register their
// connection lifecycle with fx.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	if params.Config.Store.Driver == config.DriverMemory {
		params.Logger.Warn("Using in-memory user store, data is lost on restart")

		return memory.NewUserRepository(), nil
	}

	db, err := sqldb.New(sqldb.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	return sqldb.NewUserRepository(db), nil
}
