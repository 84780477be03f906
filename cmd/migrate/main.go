package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"accounts/config"
	"accounts/internal/infra/persistence/sqldb"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Supported subcommands:
// - up:      apply every pending migration
// - down:    roll back the most recent migration
// - status:  list migrations and whether they are applied

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, out io.Writer) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if cfg.Store.Driver == config.DriverMemory {
		return errors.New("the memory store has no schema to migrate")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	db, err := sqldb.Open(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	defer sqlDB.Close()

	provider, err := sqldb.NewMigrationProvider(sqlDB, cfg.Store.Driver)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return errors.Wrap(err, "migrate up")
		}
		printResults(out, results)
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return errors.Wrap(err, "migrate down")
		}
		printResults(out, []*goose.MigrationResult{result})
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return errors.Wrap(err, "migration status")
		}
		for _, status := range statuses {
			applied := "pending"
			if status.State == goose.StateApplied {
				applied = status.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-30s %s\n", status.Source.Path, applied)
		}
	default:
		printUsage()

		return errors.Errorf("unknown command %q", command)
	}

	return nil
}

func printResults(out io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No migrations to apply")

		return
	}
	for _, result := range results {
		fmt.Fprintf(out, "%s %s (%s)\n", result.Direction, result.Source.Path, result.Duration)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up      Apply all pending migrations")
	fmt.Println("  down    Roll back the latest migration")
	fmt.Println("  status  Show migration status")
	fmt.Println()
	fmt.Println("The store is selected by store.driver in config/config.yaml (postgres or sqlite).")
}
