package errcode

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError
	ConfigFormatError

	// Database errors
	DBConnectionError
	DBUnknownDriverError
	DBTableCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBDropTableError
	DBEmptyError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Store errors
	StoreQueryError
	StoreRefreshError

	// Shape errors
	RequiredFieldError
	FieldFormatError
	FieldLengthError
	UnknownFieldError
	InvalidInputError

	// Value errors
	ValueExactlyOneError
	ValueTypeMismatchError
	ValueRuleError
	ValuePhotoFilenameError
	ValueTextLengthError
	ValueOfflineIDError

	// Attribute definition errors
	AttributeRuleError
	AttributeDefaultError
	AttributeLegendError
	AttributeDataTypeLockedError

	// Naming errors
	NameConflictError
	DuplicateError

	// Association errors
	AssociationExclusivityError
	MotherCultivarError
	FatherCultivarError
	ReferencedRecordError

	// Label errors
	LabelSeedError
	LabelExhaustedError

	// Lookup errors
	NotFoundError

	// HTTP gateway errors
	ServeError
)

// Class groups error codes by how a caller is expected to react.
type Class int

const (
	ClassInternal Class = iota
	ClassConstraint
	ClassUniqueness
	ClassBusinessRule
	ClassNotFound
	ClassUnknownField
)

func (c Class) String() string {
	switch c {
	case ClassConstraint:
		return "constraint-violation"
	case ClassUniqueness:
		return "uniqueness-violation"
	case ClassBusinessRule:
		return "business-rule-violation"
	case ClassNotFound:
		return "not-found"
	case ClassUnknownField:
		return "field-not-found"
	default:
		return "internal"
	}
}

var classes = map[gn.ErrorCode]Class{
	RequiredFieldError:      ClassConstraint,
	FieldFormatError:        ClassConstraint,
	FieldLengthError:        ClassConstraint,
	InvalidInputError:       ClassConstraint,
	ValueExactlyOneError:    ClassConstraint,
	ValuePhotoFilenameError: ClassConstraint,
	ValueTextLengthError:    ClassConstraint,
	ValueOfflineIDError:     ClassConstraint,
	LabelSeedError:          ClassConstraint,

	NameConflictError: ClassUniqueness,
	DuplicateError:    ClassUniqueness,

	ValueTypeMismatchError:       ClassBusinessRule,
	ValueRuleError:               ClassBusinessRule,
	AttributeRuleError:           ClassBusinessRule,
	AttributeDefaultError:        ClassBusinessRule,
	AttributeLegendError:         ClassBusinessRule,
	AttributeDataTypeLockedError: ClassBusinessRule,
	AssociationExclusivityError:  ClassBusinessRule,
	MotherCultivarError:          ClassBusinessRule,
	FatherCultivarError:          ClassBusinessRule,
	ReferencedRecordError:        ClassBusinessRule,
	LabelExhaustedError:          ClassBusinessRule,

	NotFoundError: ClassNotFound,

	UnknownFieldError: ClassUnknownField,
}

// ClassOf returns the class of an error code. Codes without explicit
// class are internal.
func ClassOf(code gn.ErrorCode) Class {
	if c, ok := classes[code]; ok {
		return c
	}
	return ClassInternal
}

// Code returns the error code of the first *gn.Error in the chain of err.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}

// Message renders the human-readable message of err. For *gn.Error it is
// Msg formatted with Vars, otherwise the plain error string.
func Message(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return err.Error()
	}
	if len(gnErr.Vars) == 0 {
		return gnErr.Msg
	}
	return fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
}
