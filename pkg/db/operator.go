package db

import (
	"context"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"gorm.io/gorm"
)

// FoldFunc is the SQL function SQLite connections provide for Unicode
// case-insensitive comparisons. The built-in LOWER of SQLite only folds
// ASCII letters.
const FoldFunc = "casefold"

// Operator defines the interface for basic database management operations.
// It manages the connection lifecycle and exposes the GORM handle the
// store and the schema manager run their queries on.
type Operator interface {
	// Connect opens the database described by the config.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connections.
	Close() error

	// GORM returns the connected GORM handle, nil before Connect.
	GORM() *gorm.DB

	// Driver returns the name of the driver, "postgres" or "sqlite".
	Driver() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
