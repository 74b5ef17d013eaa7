package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// EnsureSchema creates the price table if it does not exist yet. It is safe
// to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	defer src.Close()

	var driver migratedb.Driver
	switch db.driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db.conn.DB, &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(db.conn.DB, &sqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// The migrate instance is not closed: that would close the shared pool.
	m, err := migrate.NewWithInstance("iofs", src, db.driver, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
