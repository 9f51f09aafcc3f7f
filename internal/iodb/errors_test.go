package iodb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 4, "host, port, host, user")
	assert.ErrorIs(t, gnErr.Err, originalErr)

	msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
	assert.Contains(t, msg, "pg_isready -h localhost -p 5432")
	assert.Contains(t, msg, "psql -h localhost -U postgres -l")
	assert.NotContains(t, msg, "%!")
}

func TestSQLiteConnectionError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := SQLiteConnectionError("/tmp/x.sqlite", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Equal(t, []any{"/tmp/x.sqlite"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestUnknownDriverError(t *testing.T) {
	err := UnknownDriverError("mysql")
	assert.Equal(t, errcode.DBUnknownDriverError, errcode.Code(err))
	assert.Contains(t, err.Error(), "mysql")
}

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestAllErrors_ErrorWrapping verifies the wrapped cause is reachable.
func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("original error")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"GORMConnectionError", GORMConnectionError(originalErr),
			errcode.SchemaGORMConnectionError},
		{"TableCheckError", TableCheckError(originalErr),
			errcode.DBTableCheckError},
		{"TableExistsCheckError",
			TableExistsCheckError("plants", originalErr),
			errcode.DBTableCheckError},
		{"QueryTablesError", QueryTablesError(originalErr),
			errcode.DBQueryTablesError},
		{"DropTableError", DropTableError("plants", originalErr),
			errcode.DBDropTableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, originalErr)
		})
	}
}
