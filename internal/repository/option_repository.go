// Package repository provides data access to the LocaleWatch tables: the
// generic options store holding named documents and markers, and the
// team-assignment tables backing the capability resolver.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/database"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/utils"
)

// OptionRepository defines methods for the generic key/value options table.
// Documents are stored as JSON blobs under a unique option name; integer
// markers share the table, stored as decimal strings.
type OptionRepository interface {
	// GetDocument retrieves a named document. A missing option is reported
	// with utils.ErrNotFound; a stored blob that no longer decodes is
	// reported with utils.ErrCorrupt.
	GetDocument(ctx context.Context, name string) (models.Document, error)

	// SetDocument stores a named document, creating or replacing it.
	SetDocument(ctx context.Context, name string, doc models.Document) error

	// DeleteDocument removes a named document. Deleting a missing option is
	// reported with utils.ErrNotFound.
	DeleteDocument(ctx context.Context, name string) error

	// GetInt retrieves a named integer marker.
	GetInt(ctx context.Context, name string) (int, error)

	// SetInt stores a named integer marker, creating or replacing it.
	SetInt(ctx context.Context, name string, value int) error
}

// MySQLOptionRepository is the MySQL implementation of OptionRepository.
type MySQLOptionRepository struct {
	db *database.Pool
}

// NewOptionRepository creates an option repository over a connection pool.
func NewOptionRepository(db *database.Pool) *MySQLOptionRepository {
	return &MySQLOptionRepository{db: db}
}

// GetDocument retrieves a named document from the options table.
func (r *MySQLOptionRepository) GetDocument(ctx context.Context, name string) (models.Document, error) {
	raw, err := r.getValue(ctx, name)
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, utils.NewCorruptError(fmt.Sprintf("option %s", name), err)
	}
	return doc, nil
}

// SetDocument stores a named document as a JSON blob, replacing any
// previous value.
func (r *MySQLOptionRepository) SetDocument(ctx context.Context, name string, doc models.Document) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode option %s: %w", name, err)
	}
	return r.setValue(ctx, name, string(blob))
}

// DeleteDocument removes a named document from the options table.
func (r *MySQLOptionRepository) DeleteDocument(ctx context.Context, name string) error {
	query := fmt.Sprintf(`
        DELETE FROM %s
        WHERE %s = ?
    `, constants.TableOptions, constants.ColumnOptionName)

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, name)
	utils.LogDBQuery(query, []interface{}{name}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to delete option: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("option", name)
	}

	return nil
}

// GetInt retrieves a named integer marker.
func (r *MySQLOptionRepository) GetInt(ctx context.Context, name string) (int, error) {
	raw, err := r.getValue(ctx, name)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("option %s is not an integer: %w", name, err)
	}
	return value, nil
}

// SetInt stores a named integer marker.
func (r *MySQLOptionRepository) SetInt(ctx context.Context, name string, value int) error {
	return r.setValue(ctx, name, strconv.Itoa(value))
}

// getValue reads one option row, mapping a missing row to a not-found error.
func (r *MySQLOptionRepository) getValue(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM %s
        WHERE %s = ?
    `, constants.ColumnOptionValue, constants.TableOptions, constants.ColumnOptionName)

	start := time.Now()
	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	utils.LogDBQuery(query, []interface{}{name}, time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", utils.NewNotFoundError("option", name)
		}
		return "", fmt.Errorf("failed to get option: %w", err)
	}

	return value, nil
}

// setValue upserts one option row.
func (r *MySQLOptionRepository) setValue(ctx context.Context, name, value string) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (%s, %s)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE %s = VALUES(%s)
    `, constants.TableOptions, constants.ColumnOptionName, constants.ColumnOptionValue,
		constants.ColumnOptionValue, constants.ColumnOptionValue)

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, name, value)
	utils.LogDBQuery(query, []interface{}{name, value}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to set option: %w", err)
	}

	return nil
}
