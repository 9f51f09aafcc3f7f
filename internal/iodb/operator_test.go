package iodb_test

import (
	"context"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iotesting"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/naming"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests run only when BREEDERSDB_TEST_POSTGRES is set.
// Credentials come from BREEDERSDB_DATABASE_* variables, the database
// name is always forced to "breedersdb_test":
//
//	docker run -d -e POSTGRES_PASSWORD=postgres -p 5432:5432 postgres:16
//	createdb -h localhost -U postgres breedersdb_test
//	BREEDERSDB_TEST_POSTGRES=1 go test ./...

func TestNew(t *testing.T) {
	op, err := iodb.New("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", op.Driver())

	op, err = iodb.New("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", op.Driver())

	_, err = iodb.New("mysql")
	assert.Equal(t, errcode.DBUnknownDriverError, errcode.Code(err))
}

func TestSQLiteOperator(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	cfg := iotesting.SQLiteConfig()

	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NotNil(t, op.GORM())

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "fresh in-memory database is empty")

	err = op.GORM().Exec("CREATE TABLE scratch (id INTEGER)").Error
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "scratch")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, op.DropAllTables(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSQLiteCasefold(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	cfg := iotesting.SQLiteConfig()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	var res struct {
		ASCIILower string `gorm:"column:ascii_lower"`
		Fold       string
		Empty      *string
	}
	err := op.GORM().Raw(
		"SELECT LOWER('ÄPFEL') AS ascii_lower, "+
			db.FoldFunc+"('ÄPFEL') AS fold, "+
			db.FoldFunc+"(NULL) AS empty",
	).Scan(&res).Error
	require.NoError(t, err)
	assert.Equal(t, "Äpfel", res.ASCIILower)
	assert.Equal(t, naming.Fold("äpfel"), res.Fold)
	assert.Nil(t, res.Empty)
}

func TestOperators_NotConnected(t *testing.T) {
	ctx := context.Background()
	for _, op := range []interface {
		HasTables(context.Context) (bool, error)
		DropAllTables(context.Context) error
	}{iodb.NewSQLiteOperator(), iodb.NewPgxOperator()} {
		_, err := op.HasTables(ctx)
		assert.Equal(t, errcode.DBNotConnectedError, errcode.Code(err))
		err = op.DropAllTables(ctx)
		assert.Equal(t, errcode.DBNotConnectedError, errcode.Code(err))
	}
}

func TestPgxOperator_Connect(t *testing.T) {
	cfg := iotesting.PostgresOrSkip(t)

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	cfg := iotesting.PostgresOrSkip(t)
	cfg.Database.Host = "invalid-host-that-does-not-exist"

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), &cfg.Database)
	require.Error(t, err)
	assert.Equal(t, errcode.DBConnectionError, errcode.Code(err))
}

func TestPgxOperator_DropAllTables(t *testing.T) {
	cfg := iotesting.PostgresOrSkip(t)

	op := iodb.NewPgxOperator()
	ctx := context.Background()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	err := op.GORM().Exec(
		"CREATE TABLE IF NOT EXISTS scratch (id INTEGER)").Error
	require.NoError(t, err)

	require.NoError(t, op.DropAllTables(ctx))
	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
