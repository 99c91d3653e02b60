package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/homestay/homestay/internal/config"
	"github.com/homestay/homestay/internal/database"
	"github.com/homestay/homestay/internal/house"
	houseStore "github.com/homestay/homestay/internal/house/store"
	"github.com/homestay/homestay/internal/seed"
	"github.com/homestay/homestay/internal/user"
	userStore "github.com/homestay/homestay/internal/user/store"
	"github.com/homestay/homestay/migrations"
)

const usage = `usage: migrate <command>

commands:
  up            apply all pending migrations
  down          roll back the last migration
  force <v>     set the schema version without running migrations
  version       print the current schema version
  seed          create the admin account and sample houses if missing`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := run(context.Background(), cfg, db, os.Args[1:]); err != nil {
		slog.Error("migrate failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, db *sql.DB, args []string) error {
	if args[0] == "seed" {
		return runSeed(ctx, cfg, db)
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}

		slog.Info("migrations complete")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}

		slog.Info("rolled back one migration")
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}

		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}

		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version: %w", err)
		}

		slog.Info("forced schema version", "version", version)
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("reading version: %w", err)
		}

		slog.Info("schema version", "version", version, "dirty", dirty)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	return nil
}

// newMigrator reads migrations from the embedded SQL files. The migrator is
// not closed because that would close db too.
func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("db driver: %w", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

func runSeed(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	seeder := seed.New(
		user.NewService(userStore.New(db)),
		house.NewService(houseStore.New(db)),
		seed.Options{
			AdminUsername: cfg.Seed.AdminUsername,
			AdminEmail:    cfg.Seed.AdminEmail,
			AdminPassword: cfg.Seed.AdminPassword,
			AssetBaseURL:  cfg.Seed.AssetBaseURL,
		},
	)

	res, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("seed complete", "admin_created", res.AdminCreated, "houses_created", res.HousesCreated)

	return nil
}
