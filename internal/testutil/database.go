package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/artilectsolutions/budgetsplit-backend/internal/database"
)

func init() {
	goose.SetLogger(goose.NopLogger())
}

// SetupTestDB creates an in-memory SQLite database for testing, migrated with
// the same embedded migrations as production.
// Each call gets its own named shared-cache database, so every pooled
// connection of one test sees the same data while tests stay isolated.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := database.OpenWithoutMigrations(dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}
