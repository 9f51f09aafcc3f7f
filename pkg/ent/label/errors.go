package label

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

func SeedError(seed string) error {
	msg := "The seed %q must consist of one to eight digits."
	vars := []any{seed}
	return &gn.Error{
		Code: errcode.LabelSeedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

func ExhaustedError(seed string) error {
	msg := "There is no free label id at or above %s."
	vars := []any{seed}
	return &gn.Error{
		Code: errcode.LabelExhaustedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

func FormatError(value string) error {
	msg := "label_id %s must consist of eight digits, optionally prefixed by #."
	vars := []any{value}
	return &gn.Error{
		Code: errcode.FieldFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}
