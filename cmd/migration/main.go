package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/riskibarqy/pool-league/db"
	"github.com/riskibarqy/pool-league/internal/app"
	"github.com/riskibarqy/pool-league/internal/config"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

const usage = `usage: migration <command> [arg]

commands:
  up            apply every pending migration
  down <n>      roll back n migrations (default 1)
  version       print the current schema version
  force <v>     mark version v as applied without running it
  goto <v>      migrate up or down to version v

MIGRATIONS_DIR switches from the embedded migrations to a directory on disk.`

func main() {
	logger := logging.NewConsole(logging.LevelInfo).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *logging.Logger, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBURL == "" {
		return errors.New("DB_URL is required")
	}

	m, origin, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()
	logger.Info("migrator ready", "source", origin)

	switch command {
	case "up":
		return report(logger, "up", m.Up())
	case "down":
		steps, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if steps <= 0 {
			return fmt.Errorf("down steps must be > 0, got %d", steps)
		}
		return report(logger, "down", m.Steps(-steps))
	case "goto":
		target, err := intArg(args, -1)
		if err != nil {
			return err
		}
		if target < 0 {
			return errors.New("goto requires a target version")
		}
		return report(logger, "goto", m.Migrate(uint(target)))
	case "force":
		target, err := intArg(args, -2)
		if err != nil {
			return err
		}
		if target < -1 {
			return errors.New("force requires a version (-1 resets to nil)")
		}
		if err := m.Force(target); err != nil {
			return fmt.Errorf("force version %d: %w", target, err)
		}
		logger.Info("version forced", "version", target)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		logger.Info("current version", "version", version, "dirty", dirty)
		return nil
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// newMigrator prefers the embedded migrations so the binary ships without a
// migrations directory next to it.
func newMigrator(cfg config.Config) (*migrate.Migrate, string, error) {
	dsn := app.PostgresDSN(cfg.DBURL, cfg.ServiceName+"-migration", cfg.DBDisablePreparedBinary)

	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", fmt.Errorf("resolve MIGRATIONS_DIR: %w", err)
		}
		m, err := migrate.New("file://"+filepath.ToSlash(abs), dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open migrator: %w", err)
		}
		return m, abs, nil
	}

	src, err := iofs.New(db.Migrations, db.MigrationsDir)
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open migrator: %w", err)
	}
	return m, "embedded", nil
}

func report(logger *logging.Logger, command string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date", "command", command)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	logger.Info("migration applied", "command", command)
	return nil
}

// intArg parses the first positional argument or returns fallback when it is absent.
func intArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[0], err)
	}
	return v, nil
}
