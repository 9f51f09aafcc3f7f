// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/ioschema"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests, so tests never run against production data.
	TestDatabaseName = "breedersdb_test"

	// PostgresEnv enables PostgreSQL integration tests when set.
	PostgresEnv = "BREEDERSDB_TEST_POSTGRES"
)

// GetTestConfig returns a configuration suitable for PostgreSQL
// integration tests. BREEDERSDB_DATABASE_* environment variables override
// the defaults, the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("BREEDERSDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.New()
	var opts []config.Option
	if s := v.GetString("database.host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database.port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database.user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database.password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database.ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}
	opts = append(opts,
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// PostgresOrSkip skips the test unless PostgreSQL tests are enabled.
func PostgresOrSkip(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv(PostgresEnv) == "" {
		t.Skipf("Skipping PostgreSQL test, set %s to enable", PostgresEnv)
	}
	return GetTestConfig()
}

// SQLiteConfig returns a configuration for an in-memory SQLite database.
func SQLiteConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(":memory:"),
		config.OptJobsNumber(2),
		config.OptDatabaseBatchSize(50),
	})
	return cfg
}

// OpenSQLite connects to a fresh in-memory SQLite database with the full
// schema. The connection is closed when the test finishes.
func OpenSQLite(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	cfg := SQLiteConfig()
	return open(t, iodb.NewSQLiteOperator(), cfg)
}

// OpenPostgres connects to the test database, drops all tables and
// creates the schema. The test is skipped unless PostgreSQL tests are
// enabled.
func OpenPostgres(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	cfg := PostgresOrSkip(t)
	op := iodb.NewPgxOperator()
	ctx := context.Background()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	if err := op.DropAllTables(ctx); err != nil {
		op.Close()
		t.Fatalf("Failed to drop tables: %v", err)
	}
	op.Close()
	return open(t, iodb.NewPgxOperator(), cfg)
}

func open(
	t *testing.T,
	op db.Operator,
	cfg *config.Config,
) (db.Operator, *config.Config) {
	ctx := context.Background()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := ioschema.NewManager(op).Create(ctx, cfg); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return op, cfg
}

// SetupTempHomeDir creates a temporary home directory for config and
// log files. The directory is removed when the test finishes.
func SetupTempHomeDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
