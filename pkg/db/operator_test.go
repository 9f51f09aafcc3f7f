package db_test

import (
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/db"
	"github.com/stretchr/testify/assert"
)

// TestOperatorsImplementInterface verifies that both drivers implement
// the db.Operator interface.
func TestOperatorsImplementInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
	var _ db.Operator = iodb.NewSQLiteOperator()

	assert.Equal(t, "postgres", iodb.NewPgxOperator().Driver())
	assert.Equal(t, "sqlite", iodb.NewSQLiteOperator().Driver())
}
