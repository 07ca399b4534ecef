package migrations

import (
	"context"
	"database/sql"
)

// GetMigrations returns every migration in execution order.
func GetMigrations() []Migration {
	return []Migration{
		createOptionsTable(),
		createLocaleManagersTable(),
		createGeneralEditorsTable(),
		createProjectEditorsTable(),
	}
}

// createOptionsTable creates the generic key/value options table holding the
// settings document and the schema-version marker.
func createOptionsTable() Migration {
	return Migration{
		Name:        "create_options_table",
		Description: "Creates the options table",
		TableName:   "options",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
                CREATE TABLE IF NOT EXISTS options (
                    option_name VARCHAR(191) NOT NULL PRIMARY KEY,
                    option_value LONGTEXT NOT NULL,
                    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
                )
            `
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createLocaleManagersTable creates the locale-manager assignment table.
func createLocaleManagersTable() Migration {
	return Migration{
		Name:        "create_locale_managers_table",
		Description: "Creates the team_locale_managers table",
		TableName:   "team_locale_managers",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
                CREATE TABLE IF NOT EXISTS team_locale_managers (
                    user_id BIGINT NOT NULL,
                    locale VARCHAR(20) NOT NULL,
                    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
                    PRIMARY KEY (user_id, locale),
                    INDEX idx_locale_managers_locale (locale)
                )
            `
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createGeneralEditorsTable creates the general-editor assignment table.
func createGeneralEditorsTable() Migration {
	return Migration{
		Name:        "create_general_editors_table",
		Description: "Creates the team_general_editors table",
		TableName:   "team_general_editors",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
                CREATE TABLE IF NOT EXISTS team_general_editors (
                    user_id BIGINT NOT NULL,
                    locale VARCHAR(20) NOT NULL,
                    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
                    PRIMARY KEY (user_id, locale),
                    INDEX idx_general_editors_locale (locale)
                )
            `
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createProjectEditorsTable creates the project-editor assignment table. The
// project key is the "type:slug" composite produced by models.ProjectRef.
func createProjectEditorsTable() Migration {
	return Migration{
		Name:        "create_project_editors_table",
		Description: "Creates the team_project_editors table",
		TableName:   "team_project_editors",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
                CREATE TABLE IF NOT EXISTS team_project_editors (
                    user_id BIGINT NOT NULL,
                    locale VARCHAR(20) NOT NULL,
                    project_key VARCHAR(191) NOT NULL,
                    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
                    PRIMARY KEY (user_id, locale, project_key),
                    INDEX idx_project_editors_locale (locale, project_key)
                )
            `
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
