package sqldb

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"

	"accounts/config"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// NewMigrationProvider returns a goose provider over the embedded migrations for driver.
func NewMigrationProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect database.Dialect
	switch driver {
	case config.DriverPostgres:
		dialect = database.DialectPostgres
	case config.DriverSQLite:
		dialect = database.DialectSQLite3
	default:
		return nil, errors.Errorf("no migrations for store driver %q", driver)
	}

	fsys, err := fs.Sub(migrations.FS, driver)
	if err != nil {
		return nil, errors.Wrap(err, "open embedded migrations")
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "create migration provider")
	}

	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	provider, err := NewMigrationProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	if logger != nil {
		for _, result := range results {
			logger.InfoContext(ctx, "Migration applied",
				slog.String("driver", driver),
				slog.Int64("version", result.Source.Version),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	return nil
}
