package iofs

import (
	"errors"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"create dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "cannot create"},
		{"copy file", CopyFileError("/test/config.yaml", cause),
			errcode.CopyFileError, "cannot copy"},
		{"read file", ReadFileError("/test/config.yaml", cause),
			errcode.ReadFileError, "cannot read"},
		{"config format", ConfigFormatError("/test/config.yaml", cause),
			errcode.ConfigFormatError, "config /test/config.yaml"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.NotEmpty(t, gnErr.Vars)
			assert.Contains(t, gnErr.Vars[0], "/test/")
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), v.text)
		})
	}
}
