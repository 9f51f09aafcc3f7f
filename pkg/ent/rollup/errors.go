package rollup

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingSourceError is returned when a record references a row that was
// not loaded.
func MissingSourceError(kind string, id uint) error {
	msg := "%s %d not found."
	vars := []any{kind, id}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

func ChecksumError(err error) error {
	msg := "Cannot compute checksum of view record"
	return &gn.Error{
		Code: errcode.StoreRefreshError,
		Msg:  msg,
		Err:  fmt.Errorf("checksum: %w", err),
	}
}
