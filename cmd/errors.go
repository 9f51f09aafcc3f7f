package cmd

import (
	"errors"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// EmptyDatabaseError is returned by commands that need an existing schema.
func EmptyDatabaseError() error {
	msg := `Database appears to be empty

<em>How to fix:</em>
  Run <em>breedersdb create</em> first to initialize the schema.`

	return &gn.Error{
		Code: errcode.DBEmptyError,
		Msg:  msg,
		Err:  errors.New("database has no tables"),
	}
}
