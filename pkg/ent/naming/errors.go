package naming

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// ConflictError names the kind and field the candidate collides with.
func ConflictError(candidate, existing Reservation) error {
	msg := "%s %s %s conflicts with existing %s %s"
	vars := []any{
		candidate.Kind, candidate.Field(), candidate.Value,
		existing.Kind, existing.Field(),
	}
	return &gn.Error{
		Code: errcode.NameConflictError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s %d: %s",
			existing.Kind, existing.ID, fmt.Sprintf(msg, vars...)),
	}
}

// RequiredError is returned for blank required names.
func RequiredError(kind Kind, field string) error {
	msg := "%s %s must not be empty."
	vars := []any{kind, field}
	return &gn.Error{
		Code: errcode.RequiredFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// FormatError is returned for names that do not match their pattern.
func FormatError(kind Kind, field, value string) error {
	msg := "%s %s %s does not match the required format."
	vars := []any{kind, field, value}
	return &gn.Error{
		Code: errcode.FieldFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// LengthError is returned for names longer than allowed.
func LengthError(kind Kind, field string, limit int) error {
	msg := "%s %s must not be longer than %d characters."
	vars := []any{kind, field, limit}
	return &gn.Error{
		Code: errcode.FieldLengthError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}
