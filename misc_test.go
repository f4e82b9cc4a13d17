package keysetpager

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, Dialect, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, nil, err
	}

	return "mysql", NewMySQLDialect(), db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, Dialect, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, nil, err
	}

	return "postgres", NewPostgresDialect(), db.Debug(), mock, nil
}

func newGORMSQLiteMock() (string, Dialect, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, nil, err
	}

	// The sqlite driver probes the engine version on init to pick RETURNING
	// support.
	mock.ExpectQuery(`select sqlite_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))

	db, err := gorm.Open(&sqlite.Dialector{Conn: mockDB}, &gorm.Config{})
	if err != nil {
		return "", nil, nil, nil, err
	}

	return "sqlite", NewSQLiteDialect(), db.Debug(), mock, nil
}

func newGORMSQLServerMock() (string, Dialect, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, nil, err
	}

	dialector := sqlserver.New(sqlserver.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, nil, err
	}

	return "sqlserver", NewMSSQLDialect(), db.Debug(), mock, nil
}

func timeMustParse(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %s: %v", value, err)
	}

	return parsed
}
