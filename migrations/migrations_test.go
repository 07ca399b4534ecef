package migrations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localewatch/localewatch/internal/database"
	"github.com/localewatch/localewatch/migrations"
)

// createMockDB creates a mock database pool for testing.
func createMockDB(t *testing.T) (*database.Pool, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")

	pool := &database.Pool{DB: mockDB}
	cleanup := func() {
		mockDB.Close()
	}

	return pool, mock, cleanup
}

func TestNewMigrator(t *testing.T) {
	pool, _, cleanup := createMockDB(t)
	defer cleanup()

	migrator := migrations.NewMigrator(pool)
	assert.NotNil(t, migrator, "NewMigrator should return a non-nil migrator")
}

func TestGetMigrations(t *testing.T) {
	migs := migrations.GetMigrations()
	assert.NotEmpty(t, migs, "GetMigrations should return at least one migration")

	tables := make(map[string]string)
	for _, m := range migs {
		assert.NotEmpty(t, m.Name, "Migration name should not be empty")
		assert.NotEmpty(t, m.TableName, "Migration table name should not be empty")
		assert.NotNil(t, m.RunSQL, "Migration should have a RunSQL function")
		tables[m.Name] = m.TableName
	}

	assert.Equal(t, "options", tables["create_options_table"])
	assert.Equal(t, "team_locale_managers", tables["create_locale_managers_table"])
	assert.Equal(t, "team_general_editors", tables["create_general_editors_table"])
	assert.Equal(t, "team_project_editors", tables["create_project_editors_table"])
}

func TestRunMigrations(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "fresh database runs every migration",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				for _, m := range migrations.GetMigrations() {
					mock.ExpectQuery("SELECT COUNT").
						WithArgs(m.TableName).
						WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
					mock.ExpectBegin()
					mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + m.TableName).
						WillReturnResult(sqlmock.NewResult(0, 0))
					mock.ExpectExec("INSERT INTO migrations").
						WithArgs(m.Name, m.Description).
						WillReturnResult(sqlmock.NewResult(1, 1))
					mock.ExpectCommit()
				}
			},
			wantErr: false,
		},
		{
			name: "already executed migrations are skipped",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))

				rows := sqlmock.NewRows([]string{"name"})
				for _, m := range migrations.GetMigrations() {
					rows.AddRow(m.Name)
				}
				mock.ExpectQuery("SELECT name FROM migrations").WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name: "existing tables are recorded without re-running",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				for _, m := range migrations.GetMigrations() {
					mock.ExpectQuery("SELECT COUNT").
						WithArgs(m.TableName).
						WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
					mock.ExpectExec("INSERT INTO migrations").
						WithArgs(m.Name, m.Description).
						WillReturnResult(sqlmock.NewResult(1, 1))
				}
			},
			wantErr: false,
		},
		{
			name: "migrations table creation failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnError(errors.New("permission denied"))
			},
			wantErr: true,
		},
		{
			name: "failed migration rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				first := migrations.GetMigrations()[0]
				mock.ExpectQuery("SELECT COUNT").
					WithArgs(first.TableName).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + first.TableName).
					WillReturnError(errors.New("syntax error"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, mock, cleanup := createMockDB(t)
			defer cleanup()

			tt.setupMock(mock)

			err := migrations.NewMigrator(pool).RunMigrations(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "Unmet mock expectations")
		})
	}
}

func TestRunConvenienceWrapper(t *testing.T) {
	pool, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows := sqlmock.NewRows([]string{"name"})
	for _, m := range migrations.GetMigrations() {
		rows.AddRow(m.Name)
	}
	mock.ExpectQuery("SELECT name FROM migrations").WillReturnRows(rows)

	err := migrations.Run(context.Background(), pool)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
