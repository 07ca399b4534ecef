package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/database"
	"github.com/localewatch/localewatch/internal/utils"
)

// TeamRepository defines read and write access to the team-assignment
// tables. The capability resolver only uses the membership tests; the
// management handlers use the assignment methods.
type TeamRepository interface {
	// IsLocaleManager reports whether the actor manages the locale.
	IsLocaleManager(ctx context.Context, userID int64, locale string) (bool, error)

	// IsGeneralEditor reports whether the actor has general editing rights
	// for the locale.
	IsGeneralEditor(ctx context.Context, userID int64, locale string) (bool, error)

	// IsProjectEditor reports whether the actor has editing rights for the
	// given project key within the locale.
	IsProjectEditor(ctx context.Context, userID int64, locale, projectKey string) (bool, error)

	// AddLocaleManager grants locale-manager membership.
	AddLocaleManager(ctx context.Context, userID int64, locale string) error

	// AddGeneralEditor grants general-editor membership.
	AddGeneralEditor(ctx context.Context, userID int64, locale string) error

	// AddProjectEditor grants project-editor membership for a project key.
	AddProjectEditor(ctx context.Context, userID int64, locale, projectKey string) error

	// RemoveLocaleManager revokes locale-manager membership.
	RemoveLocaleManager(ctx context.Context, userID int64, locale string) error

	// RemoveGeneralEditor revokes general-editor membership.
	RemoveGeneralEditor(ctx context.Context, userID int64, locale string) error

	// RemoveProjectEditor revokes project-editor membership for a project key.
	RemoveProjectEditor(ctx context.Context, userID int64, locale, projectKey string) error

	// LocaleManagers lists the actor IDs managing a locale.
	LocaleManagers(ctx context.Context, locale string) ([]int64, error)
}

// MySQLTeamRepository is the MySQL implementation of TeamRepository.
type MySQLTeamRepository struct {
	db *database.Pool
}

// NewTeamRepository creates a team repository over a connection pool.
func NewTeamRepository(db *database.Pool) *MySQLTeamRepository {
	return &MySQLTeamRepository{db: db}
}

// IsLocaleManager reports locale-manager membership.
func (r *MySQLTeamRepository) IsLocaleManager(ctx context.Context, userID int64, locale string) (bool, error) {
	return r.exists(ctx, constants.TableLocaleManagers, userID, locale)
}

// IsGeneralEditor reports general-editor membership.
func (r *MySQLTeamRepository) IsGeneralEditor(ctx context.Context, userID int64, locale string) (bool, error) {
	return r.exists(ctx, constants.TableGeneralEditors, userID, locale)
}

// IsProjectEditor reports project-editor membership for a project key. An
// empty key never matches.
func (r *MySQLTeamRepository) IsProjectEditor(ctx context.Context, userID int64, locale, projectKey string) (bool, error) {
	if projectKey == "" {
		return false, nil
	}

	query := fmt.Sprintf(`
        SELECT COUNT(1)
        FROM %s
        WHERE %s = ? AND %s = ? AND %s = ?
    `, constants.TableProjectEditors, constants.ColumnUserID, constants.ColumnLocale, constants.ColumnProjectKey)

	start := time.Now()
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, locale, projectKey).Scan(&count)
	utils.LogDBQuery(query, []interface{}{userID, locale, projectKey}, time.Since(start), err)

	if err != nil {
		return false, fmt.Errorf("failed to check project editor membership: %w", err)
	}
	return count > 0, nil
}

// AddLocaleManager grants locale-manager membership.
func (r *MySQLTeamRepository) AddLocaleManager(ctx context.Context, userID int64, locale string) error {
	return r.add(ctx, constants.TableLocaleManagers, userID, locale)
}

// AddGeneralEditor grants general-editor membership.
func (r *MySQLTeamRepository) AddGeneralEditor(ctx context.Context, userID int64, locale string) error {
	return r.add(ctx, constants.TableGeneralEditors, userID, locale)
}

// AddProjectEditor grants project-editor membership for a project key.
func (r *MySQLTeamRepository) AddProjectEditor(ctx context.Context, userID int64, locale, projectKey string) error {
	if projectKey == "" {
		return utils.NewValidationError("project_key", "project key must not be empty")
	}

	query := fmt.Sprintf(`
        INSERT IGNORE INTO %s (%s, %s, %s)
        VALUES (?, ?, ?)
    `, constants.TableProjectEditors, constants.ColumnUserID, constants.ColumnLocale, constants.ColumnProjectKey)

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, userID, locale, projectKey)
	utils.LogDBQuery(query, []interface{}{userID, locale, projectKey}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to add project editor: %w", err)
	}
	return nil
}

// RemoveLocaleManager revokes locale-manager membership.
func (r *MySQLTeamRepository) RemoveLocaleManager(ctx context.Context, userID int64, locale string) error {
	return r.remove(ctx, constants.TableLocaleManagers, userID, locale)
}

// RemoveGeneralEditor revokes general-editor membership.
func (r *MySQLTeamRepository) RemoveGeneralEditor(ctx context.Context, userID int64, locale string) error {
	return r.remove(ctx, constants.TableGeneralEditors, userID, locale)
}

// RemoveProjectEditor revokes project-editor membership for a project key.
func (r *MySQLTeamRepository) RemoveProjectEditor(ctx context.Context, userID int64, locale, projectKey string) error {
	query := fmt.Sprintf(`
        DELETE FROM %s
        WHERE %s = ? AND %s = ? AND %s = ?
    `, constants.TableProjectEditors, constants.ColumnUserID, constants.ColumnLocale, constants.ColumnProjectKey)

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, userID, locale, projectKey)
	utils.LogDBQuery(query, []interface{}{userID, locale, projectKey}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to remove project editor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("team assignment", fmt.Sprintf("%d/%s/%s", userID, locale, projectKey))
	}
	return nil
}

// LocaleManagers lists the actor IDs managing a locale.
func (r *MySQLTeamRepository) LocaleManagers(ctx context.Context, locale string) ([]int64, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM %s
        WHERE %s = ?
        ORDER BY %s
    `, constants.ColumnUserID, constants.TableLocaleManagers, constants.ColumnLocale, constants.ColumnUserID)

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, locale)
	utils.LogDBQuery(query, []interface{}{locale}, time.Since(start), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list locale managers: %w", err)
	}
	defer rows.Close()

	var managers []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan locale manager row: %w", err)
		}
		managers = append(managers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locale manager rows: %w", err)
	}

	return managers, nil
}

// exists tests membership in one of the two locale-keyed tables.
func (r *MySQLTeamRepository) exists(ctx context.Context, table string, userID int64, locale string) (bool, error) {
	query := fmt.Sprintf(`
        SELECT COUNT(1)
        FROM %s
        WHERE %s = ? AND %s = ?
    `, table, constants.ColumnUserID, constants.ColumnLocale)

	start := time.Now()
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, locale).Scan(&count)
	utils.LogDBQuery(query, []interface{}{userID, locale}, time.Since(start), err)

	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return count > 0, nil
}

// add inserts membership into one of the two locale-keyed tables.
func (r *MySQLTeamRepository) add(ctx context.Context, table string, userID int64, locale string) error {
	query := fmt.Sprintf(`
        INSERT IGNORE INTO %s (%s, %s)
        VALUES (?, ?)
    `, table, constants.ColumnUserID, constants.ColumnLocale)

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, userID, locale)
	utils.LogDBQuery(query, []interface{}{userID, locale}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to add team membership: %w", err)
	}
	return nil
}

// remove deletes membership from one of the two locale-keyed tables.
func (r *MySQLTeamRepository) remove(ctx context.Context, table string, userID int64, locale string) error {
	query := fmt.Sprintf(`
        DELETE FROM %s
        WHERE %s = ? AND %s = ?
    `, table, constants.ColumnUserID, constants.ColumnLocale)

	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, userID, locale)
	utils.LogDBQuery(query, []interface{}{userID, locale}, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to remove team membership: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("team assignment", fmt.Sprintf("%d/%s", userID, locale))
	}
	return nil
}
