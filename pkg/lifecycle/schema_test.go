package lifecycle_test

import (
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/internal/iodb"
	"github.com/bolliger-tech/breedersdb.com-sub000/internal/ioschema"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestSchemaManagerContract ensures that the ioschema manager satisfies
// the lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	var mgr lifecycle.SchemaManager = ioschema.NewManager(iodb.NewSQLiteOperator())
	assert.NotNil(t, mgr)
}
