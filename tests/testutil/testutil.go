package testutil

import (
	"fmt"
	"net/url"
	"os"
	"testing"

	"github.com/kendall-kelly/marketplace-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CheckTestEnvironment returns an error unless GO_ENV is "test".
// Use this in TestMain, where there is no *testing.T to fail.
func CheckTestEnvironment() error {
	if env := os.Getenv("GO_ENV"); env != "test" {
		return fmt.Errorf("tests must run with GO_ENV=test to prevent data loss (GO_ENV=%q, DATABASE_URL=%s)",
			env, maskDatabaseURL(os.Getenv("DATABASE_URL")))
	}
	return nil
}

// RequireTestEnvironment ensures that tests are running in the test environment.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if err := CheckTestEnvironment(); err != nil {
		t.Fatalf("SAFETY CHECK FAILED: %v", err)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// The previous value is restored when t finishes.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// NewTestDB opens a fresh in-memory SQLite database with every model migrated.
// The pool is pinned to one connection because each SQLite memory connection
// is its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CloseDB closes the connection pool behind db. Calls after the first are no-ops.
func CloseDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("Failed to close test database: %v", err)
	}
}

// maskDatabaseURL hides the password in a database URL for safe printing
func maskDatabaseURL(raw string) string {
	if raw == "" {
		return "(not set)"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable)"
	}
	return u.Redacted()
}
