package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okonek/mathsprint/internal/logger"
)

//go:embed migrations/sqlite3/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// DB wraps a sql.DB with its driver so the repository layer can pick the
// right placeholder format.
type DB struct {
	*sql.DB
	driver string
	log    *logger.Logger
}

// Open opens the database for the given driver (sqlite3 or postgres) and
// applies pending migrations.
func Open(driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	switch driver {
	case "sqlite3":
		dsn = fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", dsn)
	case "postgres":
		// DSN passed through as-is.
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	log.Info("opening database: driver=%s", driver)
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	if driver == "sqlite3" {
		sqlDB.SetMaxOpenConns(1) // SQLite single-writer
	}

	db := &DB{DB: sqlDB, driver: driver, log: log}

	log.Debug("applying migrations")
	if err := db.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		sqlDB.Close()
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Driver returns the driver name the database was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Builder returns a squirrel statement builder with the placeholder format
// matching the driver.
func (db *DB) Builder() squirrel.StatementBuilderType {
	if db.driver == "postgres" {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (db *DB) applyMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	dir := "migrations/" + db.driver
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(dir + "/" + version)
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if err := db.markMigrationApplied(ctx, version); err != nil {
			return err
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query := `SELECT version FROM schema_migrations WHERE version = ?`
	if db.driver == "postgres" {
		query = `SELECT version FROM schema_migrations WHERE version = $1`
	}
	var v string
	err := db.QueryRowContext(ctx, query, version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (db *DB) markMigrationApplied(ctx context.Context, version string) error {
	query := `INSERT INTO schema_migrations (version) VALUES (?)`
	if db.driver == "postgres" {
		query = `INSERT INTO schema_migrations (version) VALUES ($1)`
	}
	_, err := db.ExecContext(ctx, query, version)
	return err
}
