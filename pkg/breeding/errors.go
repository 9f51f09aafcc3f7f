package breeding

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownFieldError is returned for input keys that do not name a
// settable field, derived fields like is_variety included.
func UnknownFieldError(field, kind string) error {
	msg := "field %q not found for %s"
	vars := []any{field, kind}
	return &gn.Error{
		Code: errcode.UnknownFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// UnknownKindError is returned for unknown record kinds.
func UnknownKindError(kind string) error {
	msg := "record kind %q not found"
	vars := []any{kind}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// InvalidInputError is returned when an input can not be decoded.
func InvalidInputError(kind string, err error) error {
	msg := "The %s input is not valid: %s"
	vars := []any{kind, err.Error()}
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("decode %s: %w", kind, err),
	}
}

// OfflineIDError is returned for offline ids that are not UUIDs.
func OfflineIDError(id string) error {
	msg := "offline_id %s is not a valid UUID."
	vars := []any{id}
	return &gn.Error{
		Code: errcode.ValueOfflineIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}
