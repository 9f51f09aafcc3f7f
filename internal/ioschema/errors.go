package ioschema

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot access the SQL connection behind GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - The SQLite file is read-only

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Run <em>breedersdb create --force</em> on a fresh database`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Column types changed in a way AutoMigrate can not convert
  - Insufficient database permissions

<em>How to fix:</em>
  1. Backup data before migration
  2. Check database user has ALTER permissions`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// IndexError creates an error for failed index DDL.
func IndexError(ddl string, err error) error {
	msg := `Cannot create index

<em>Statement:</em>
  %s

<em>Possible causes:</em>
  - Existing rows violate a new unique index
  - Insufficient database permissions

<em>How to fix:</em>
  1. Find and resolve duplicate names (case-insensitive)
  2. Check database user has CREATE permissions`

	vars := []any{ddl}

	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create index: %w", err),
	}
}
