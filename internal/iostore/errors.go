package iostore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/breeding"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// NotConnectedError is returned when the store is created on an operator
// without connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NotFoundError is returned for unknown ids.
func NotFoundError(kind breeding.Kind, id uint) error {
	msg := "%s %d not found."
	vars := []any{kind.Name(), id}

	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// DuplicateError is returned when a value already exists where it must
// be unique.
func DuplicateError(kind breeding.Kind, field, value string) error {
	msg := "%s %s %s already exists."
	vars := []any{kind.Name(), field, value}

	return &gn.Error{
		Code: errcode.DuplicateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// ReferencedError is returned when a record to delete is still referenced.
func ReferencedError(kind breeding.Kind, id uint, by string) error {
	msg := "%s %d can not be deleted because %s reference it."
	vars := []any{kind.Name(), id, by}

	return &gn.Error{
		Code: errcode.ReferencedRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// RequiredError is returned for missing required fields.
func RequiredError(kind breeding.Kind, field string) error {
	msg := "%s %s must not be empty."
	vars := []any{kind.Name(), field}

	return &gn.Error{
		Code: errcode.RequiredFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// LengthError is returned for fields longer than allowed.
func LengthError(kind breeding.Kind, field string, limit int) error {
	msg := "%s %s must not be longer than %d characters."
	vars := []any{kind.Name(), field, limit}

	return &gn.Error{
		Code: errcode.FieldLengthError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// QueryError wraps failures of the database itself.
func QueryError(err error) error {
	msg := "Database query failed"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("query: %w", err),
	}
}

// RefreshError is returned when a view refresh or cache rebuild fails.
func RefreshError(view string, err error) error {
	msg := "Cannot refresh <em>%s</em>"
	vars := []any{view}

	return &gn.Error{
		Code: errcode.StoreRefreshError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("refresh %s: %w", view, err),
	}
}

// dbError keeps *gn.Error values and classifies the rest. Unique
// violations that slipped past the checks become DuplicateError.
func dbError(err error) error {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	if isUniqueViolation(err) {
		return &gn.Error{
			Code: errcode.DuplicateError,
			Msg:  "The record already exists.",
			Err:  err,
		}
	}
	return QueryError(err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
