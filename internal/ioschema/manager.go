// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/lifecycle"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate and adds the unique indexes.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB := m.operator.GORM()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return GORMConnectionError(err)
	}

	return createIndexes(ctx, sqlDB)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Missing indexes are added.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB := m.operator.GORM()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return GORMConnectionError(err)
	}

	return createIndexes(ctx, sqlDB)
}

// createIndexes runs the index DDL of all models. The statements use
// IF NOT EXISTS, so existing indexes are kept.
func createIndexes(ctx context.Context, db *sql.DB) error {
	idx := schema.Indexes()
	for _, q := range idx {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return IndexError(q, err)
		}
	}
	slog.Debug("Indexes ensured", "count", len(idx))
	return nil
}
