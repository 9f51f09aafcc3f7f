package association

import (
	"errors"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

func newError(code gn.ErrorCode, msg string) error {
	return &gn.Error{Code: code, Msg: msg, Err: errors.New(msg)}
}

func AttributionExclusivityError() error {
	return newError(errcode.AssociationExclusivityError,
		"An attribution must be associated with exactly one of plant, "+
			"plant_group, cultivar or lot.")
}

func MarkExclusivityError() error {
	return newError(errcode.AssociationExclusivityError,
		"A mark must be associated with exactly one of tree, cultivar or lot.")
}

func MotherMismatchError() error {
	return newError(errcode.MotherCultivarError,
		"The mother cultivar does not match the cultivar of the mother plant.")
}

func FatherMismatchError() error {
	return newError(errcode.FatherCultivarError,
		"The father cultivar does not match the cultivar of the pollen.")
}

func MotherLockedError() error {
	return newError(errcode.MotherCultivarError,
		"The mother cultivar can not be changed because linked mother "+
			"plants belong to another cultivar.")
}

func FatherLockedError() error {
	return newError(errcode.FatherCultivarError,
		"The father cultivar can not be changed because linked pollen "+
			"belongs to another cultivar.")
}

func MotherMoveError() error {
	return newError(errcode.MotherCultivarError,
		"The cultivar can not be changed because the plant is the mother "+
			"of a crossing with another mother cultivar.")
}

func PollenMoveError() error {
	return newError(errcode.FatherCultivarError,
		"The cultivar can not be changed because the pollen was used for "+
			"a crossing with another father cultivar.")
}
