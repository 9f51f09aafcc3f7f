package lifecycle

import (
	"context"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate for tables and adds the unique indexes GORM
// tags can not express. Both operations are idempotent.
type SchemaManager interface {
	// Create creates the initial database schema.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context, cfg *config.Config) error
}
