package attribute

import (
	"fmt"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

func newError(code gn.ErrorCode, msg string, vars ...any) error {
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// ExactlyOneError is returned when zero or several value slots are set.
func ExactlyOneError(populated int) error {
	return &gn.Error{
		Code: errcode.ValueExactlyOneError,
		Msg:  "Exactly one value column must be set.",
		Err:  fmt.Errorf("%d value columns are set", populated),
	}
}

// TypeMismatchError is returned when the populated slot does not fit
// the data type.
func TypeMismatchError(dt DataType, slot Slot) error {
	return &gn.Error{
		Code: errcode.ValueTypeMismatchError,
		Msg:  "The value type does not match the attribute type.",
		Err:  fmt.Errorf("%s does not accept %s", dt, slot),
	}
}

// RuleViolationError is returned for values outside of the rule.
func RuleViolationError(v any) error {
	return &gn.Error{
		Code: errcode.ValueRuleError,
		Msg:  "The value does not match the validation rule.",
		Err:  fmt.Errorf("value %v violates the validation rule", v),
	}
}

// PhotoFilenameError is returned for photo names that were not generated
// by the upload.
func PhotoFilenameError(name string) error {
	return &gn.Error{
		Code: errcode.ValuePhotoFilenameError,
		Msg:  "The photo filename is not valid.",
		Err:  fmt.Errorf("invalid photo file name %q", name),
	}
}

// TextLengthError is returned for texts exceeding the variant limit.
func TextLengthError(limit int) error {
	return newError(errcode.ValueTextLengthError,
		"The text value must not be longer than %d characters.", limit)
}

// InvalidDataTypeError is returned for unknown data types.
func InvalidDataTypeError(s string) error {
	return newError(errcode.FieldFormatError,
		"data_type %s is not supported.", s)
}

// InvalidKindError is returned for unknown attribute kinds.
func InvalidKindError(s string) error {
	return newError(errcode.FieldFormatError,
		"attribute_type %s is not supported.", s)
}

// RuleNotAllowedError is returned for rules on types without rules.
func RuleNotAllowedError(dt DataType) error {
	return newError(errcode.AttributeRuleError,
		"validation_rule must be null for data type %s.", dt)
}

// RuleRequiredError is returned for missing or malformed numeric rules.
func RuleRequiredError(dt DataType) error {
	if dt.IntegralRule() {
		return newError(errcode.AttributeRuleError,
			"validation_rule requires integer min, max and step for data type %s.",
			dt)
	}
	return newError(errcode.AttributeRuleError,
		"validation_rule requires numeric min, max and step for data type %s.",
		dt)
}

// RuleMinMaxError is returned when min exceeds max.
func RuleMinMaxError() error {
	return newError(errcode.AttributeRuleError,
		"validation_rule min must not be greater than max.")
}

// RuleStepError is returned for a step that is not positive.
func RuleStepError() error {
	return newError(errcode.AttributeRuleError,
		"validation_rule step must be greater than zero.")
}

// RatingRuleError is returned for rating rules outside of 0..9 or step 1.
func RatingRuleError() error {
	return newError(errcode.AttributeRuleError,
		"validation_rule of RATING requires 0 <= min, max <= 9 and step = 1.")
}

// PhotoDefaultError is returned for default values of PHOTO attributes.
func PhotoDefaultError() error {
	return newError(errcode.AttributeDefaultError,
		"default_value is not allowed for data type PHOTO.")
}

// DefaultValueError wraps the value error of a default value that does
// not fit the data type or the validation rule.
func DefaultValueError(err error) error {
	return &gn.Error{
		Code: errcode.AttributeDefaultError,
		Msg:  "default_value does not match the attribute type or validation rule.",
		Err:  fmt.Errorf("invalid default value: %w", err),
	}
}

// LegendNotAllowedError is returned for legends on non-RATING types.
func LegendNotAllowedError() error {
	return newError(errcode.AttributeLegendError,
		"legend is only allowed for data type RATING.")
}

// LegendStringsError is returned when the legend is not a string array.
func LegendStringsError() error {
	return newError(errcode.AttributeLegendError,
		"legend must be an array of strings.")
}

// LegendSizeError names the exact number of entries a legend needs.
func LegendSizeError(want, got int) error {
	return &gn.Error{
		Code: errcode.AttributeLegendError,
		Msg:  "legend must have exactly %d entries.",
		Vars: []any{want},
		Err:  fmt.Errorf("legend has %d entries, want %d", got, want),
	}
}

// DataTypeLockedError is returned when values block a data type change.
func DataTypeLockedError() error {
	return newError(errcode.AttributeDataTypeLockedError,
		"The data type can not be changed because values exist for this attribute.")
}

// RequiredError is returned for missing or blank required fields.
func RequiredError(kind, field string) error {
	return newError(errcode.RequiredFieldError,
		"%s %s must not be empty.", kind, field)
}

// LengthError is returned for fields longer than allowed.
func LengthError(kind, field string, limit int) error {
	return newError(errcode.FieldLengthError,
		"%s %s must not be longer than %d characters.", kind, field, limit)
}
