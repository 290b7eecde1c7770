package repotest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormDB opens a postgres-dialect *gorm.DB over sqlmock. Tests that only use
// the in-memory repositories can ignore the mock; repository tests set
// expectations on it.
func NewGormDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

// contextErr mirrors a driver that refuses to run on a done context
func contextErr(db *gorm.DB) error {
	if db == nil || db.Statement == nil || db.Statement.Context == nil {
		return nil
	}
	return db.Statement.Context.Err()
}
