// Package constants provides shared constant values used throughout the application.
//
// The storage_const.go file defines table names, column names and option keys used
// by the persistence layer. Centralizing these prevents subtle mismatches between
// repositories, migrations and tests.
package constants

// Table Names define the database tables used by the application.
const (
	// TableOptions is the generic key/value table holding named documents.
	TableOptions = "options"

	// TableLocaleManagers maps locale codes to the actors managing that locale.
	TableLocaleManagers = "team_locale_managers"

	// TableGeneralEditors maps locale codes to actors with general editing rights.
	TableGeneralEditors = "team_general_editors"

	// TableProjectEditors maps (locale, project key) pairs to actors with
	// project-scoped editing rights.
	TableProjectEditors = "team_project_editors"
)

// Column Names define frequently referenced database columns.
const (
	// ColumnOptionName is the primary key column of the options table.
	ColumnOptionName = "option_name"

	// ColumnOptionValue is the JSON blob column of the options table.
	ColumnOptionValue = "option_value"

	// ColumnLocale is the locale code column of the team tables.
	ColumnLocale = "locale"

	// ColumnProjectKey is the composite project key column of the
	// project-editor table.
	ColumnProjectKey = "project_key"

	// ColumnUserID is the actor identifier column of the team tables.
	ColumnUserID = "user_id"
)

// Option Keys name the documents persisted in the options table.
const (
	// OptionSettings is the key of the settings document blob.
	OptionSettings = "localewatch_settings"

	// OptionSchemaVersion is the key of the persisted schema-version marker.
	// It is stored independently of the settings document so that a corrupt
	// document never loses track of which migrations have been applied.
	OptionSchemaVersion = "localewatch_schema_version"
)

// ProjectKeySeparator joins a project type and slug into the composite key used
// to index the project-editor table. The key is only meaningful when both parts
// are present; an empty type or slug degrades the key to empty.
const ProjectKeySeparator = ":"
