package ioschema

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateIndexes checks that every index statement is executed in
// order.
func TestCreateIndexes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, q := range schema.Indexes() {
		mock.ExpectExec(regexp.QuoteMeta(q)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, createIndexes(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIndexesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	first := schema.Indexes()[0]
	mock.ExpectExec(regexp.QuoteMeta(first)).
		WillReturnError(errors.New("duplicate key"))

	err = createIndexes(context.Background(), db)
	require.Error(t, err)
	assert.Equal(t, errcode.SchemaIndexError, errcode.Code(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerNotConnected(t *testing.T) {
	mgr := NewManager(iodb.NewSQLiteOperator())
	err := mgr.Create(context.Background(), config.New())
	assert.Equal(t, errcode.DBNotConnectedError, errcode.Code(err))
	err = mgr.Migrate(context.Background(), config.New())
	assert.Equal(t, errcode.DBNotConnectedError, errcode.Code(err))
}

// TestManagerSQLite creates and migrates an in-memory database.
func TestManagerSQLite(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(":memory:"),
	})
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	mgr := NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg))
	require.NoError(t, mgr.Migrate(ctx, cfg))

	for _, m := range schema.AllModels() {
		name := m.(interface{ TableName() string }).TableName()
		ok, err := op.TableExists(ctx, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}
