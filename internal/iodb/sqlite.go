package iodb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/naming"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	msqlite "modernc.org/sqlite"
)

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(db.FoldFunc, 1, casefold)
}

// casefold implements db.FoldFunc, NULL and non-text values pass through.
func casefold(
	_ *msqlite.FunctionContext,
	args []driver.Value,
) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return naming.Fold(v), nil
	case []byte:
		return naming.Fold(string(v)), nil
	default:
		return v, nil
	}
}

// sqliteOperator implements db.Operator on a SQLite file or an in-memory
// database using the pure Go modernc driver.
type sqliteOperator struct {
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// NewSQLiteOperator creates a new SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens cfg.Path. The connection pool is limited to a single
// connection, SQLite serializes writers anyway and ":memory:" databases
// exist per connection.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: cfg.Path}),
		gormConfig(),
	)
	if err != nil {
		return SQLiteConnectionError(cfg.Path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return SQLiteConnectionError(cfg.Path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(cfg.Path, err)
	}

	s.sqlDB = sqlDB
	s.gormDB = gormDB
	return nil
}

func (s *sqliteOperator) Close() error {
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}

func (s *sqliteOperator) GORM() *gorm.DB {
	return s.gormDB
}

func (s *sqliteOperator) Driver() string {
	return "sqlite"
}

func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.gormDB == nil {
		return false, NotConnectedError()
	}
	return s.gormDB.WithContext(ctx).Migrator().HasTable(tableName), nil
}

func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.gormDB == nil {
		return false, NotConnectedError()
	}
	tables, err := s.gormDB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableCheckError(err)
	}
	for _, v := range tables {
		if !strings.HasPrefix(v, "sqlite_") {
			return true, nil
		}
	}
	return false, nil
}

func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.gormDB == nil {
		return NotConnectedError()
	}
	m := s.gormDB.WithContext(ctx).Migrator()
	tables, err := m.GetTables()
	if err != nil {
		return QueryTablesError(err)
	}
	for _, table := range tables {
		// sqlite_sequence and friends belong to SQLite
		if strings.HasPrefix(table, "sqlite_") {
			continue
		}
		if err := m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}
