package errcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		code  gn.ErrorCode
		class errcode.Class
		str   string
	}{
		{errcode.RequiredFieldError, errcode.ClassConstraint,
			"constraint-violation"},
		{errcode.NameConflictError, errcode.ClassUniqueness,
			"uniqueness-violation"},
		{errcode.MotherCultivarError, errcode.ClassBusinessRule,
			"business-rule-violation"},
		{errcode.NotFoundError, errcode.ClassNotFound, "not-found"},
		{errcode.UnknownFieldError, errcode.ClassUnknownField,
			"field-not-found"},
		{errcode.DBConnectionError, errcode.ClassInternal, "internal"},
	}

	for _, tt := range tests {
		class := errcode.ClassOf(tt.code)
		assert.Equal(t, tt.class, class)
		assert.Equal(t, tt.str, class.String())
	}
}

func TestCodeAndMessage(t *testing.T) {
	err := &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  "%s %d not found.",
		Vars: []any{"plant", 7},
		Err:  errors.New("plant 7 not found"),
	}
	wrapped := fmt.Errorf("loading: %w", err)

	assert.Equal(t, errcode.NotFoundError, errcode.Code(wrapped))
	assert.Equal(t, "plant 7 not found.", errcode.Message(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, errcode.UnknownError, errcode.Code(plain))
	assert.Equal(t, "boom", errcode.Message(plain))
}
