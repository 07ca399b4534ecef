// Package migrations provides a framework for database schema management.
//
// This package implements a migration system that allows for reliable,
// idempotent database schema creation. It tracks executed migrations in a
// dedicated migrations table and ensures all required tables exist before
// application startup. Migrations are safe to run multiple times.
//
// Note that this package manages the DATABASE schema (tables). The settings
// DOCUMENT schema has its own version marker and migration chain inside the
// settings package; the two are deliberately independent.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/localewatch/localewatch/internal/database"
)

// Migration represents a database migration.
// Each migration performs a specific schema change and is tracked
// to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table affected by this migration, used for existence checks
	TableName string
	// RunSQL is the function that executes the migration SQL within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator over a connection pool.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// Run is a convenience wrapper that creates a migrator and runs all pending
// migrations. Used during server startup.
func Run(ctx context.Context, db *database.Pool) error {
	return NewMigrator(db).RunMigrations(ctx)
}

// RunMigrations runs all pending database migrations.
// It creates the migrations table if it doesn't exist and runs any
// migrations that haven't been executed yet.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during migration, nil if successful
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun := 0

	for _, migration := range migrations {
		if executed[migration.Name] {
			continue
		}

		// A table left behind by an interrupted run is recorded, not re-created.
		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		if exists {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, migration.Name, migration.Description); err != nil {
				return fmt.Errorf("failed to record existing migration: %w", err)
			}
			continue
		}

		log.Info().
			Str("migration", migration.Name).
			Str("table", migration.TableName).
			Msg("Running migration")

		if err := m.runMigration(ctx, migration); err != nil {
			return err
		}
		migrationsRun++
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the migrations table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS migrations (
            name VARCHAR(255) PRIMARY KEY,
            description TEXT,
            executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the set of executed migration names.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM migrations`
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	executed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		executed[name] = true
	}

	return executed, rows.Err()
}

// tableExists checks whether a table exists in the current database.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
        SELECT COUNT(1)
        FROM information_schema.tables
        WHERE table_schema = DATABASE() AND table_name = ?
    `
	var count int
	if err := m.db.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// runMigration executes a single migration within a transaction and records it.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		query := `INSERT INTO migrations (name, description) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
		}

		return nil
	})
}

// recordMigration marks a migration as completed without running its SQL.
func (m *Migrator) recordMigration(ctx context.Context, name, description string) error {
	query := `INSERT INTO migrations (name, description) VALUES (?, ?)`
	_, err := m.db.ExecContext(ctx, query, name, description)
	return err
}
