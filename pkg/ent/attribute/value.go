package attribute

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

// Slot is one of the typed value columns.
type Slot int

const (
	SlotNone Slot = iota
	SlotInteger
	SlotFloat
	SlotText
	SlotBoolean
	SlotDate
)

func (s Slot) String() string {
	switch s {
	case SlotInteger:
		return "integer_value"
	case SlotFloat:
		return "float_value"
	case SlotText:
		return "text_value"
	case SlotBoolean:
		return "boolean_value"
	case SlotDate:
		return "date_value"
	default:
		return "none"
	}
}

// Value is a typed value. It is one of IntegerValue, FloatValue, TextValue,
// BooleanValue or DateValue.
type Value interface {
	Slot() Slot
	isValue()
}

type (
	IntegerValue int64
	FloatValue   float64
	TextValue    string
	BooleanValue bool
	DateValue    time.Time
)

func (IntegerValue) Slot() Slot { return SlotInteger }
func (FloatValue) Slot() Slot   { return SlotFloat }
func (TextValue) Slot() Slot    { return SlotText }
func (BooleanValue) Slot() Slot { return SlotBoolean }
func (DateValue) Slot() Slot    { return SlotDate }

func (IntegerValue) isValue() {}
func (FloatValue) isValue()   {}
func (TextValue) isValue()    {}
func (BooleanValue) isValue() {}
func (DateValue) isValue()    {}

// Slots are the nullable value columns of a stored value.
type Slots struct {
	Integer *int64
	Float   *float64
	Text    *string
	Boolean *bool
	Date    *time.Time
}

// Value returns the only populated slot as a Value. An empty text counts
// as not populated.
func (s Slots) Value() (Value, error) {
	var res []Value
	if s.Integer != nil {
		res = append(res, IntegerValue(*s.Integer))
	}
	if s.Float != nil {
		res = append(res, FloatValue(*s.Float))
	}
	if s.Text != nil && *s.Text != "" {
		res = append(res, TextValue(*s.Text))
	}
	if s.Boolean != nil {
		res = append(res, BooleanValue(*s.Boolean))
	}
	if s.Date != nil {
		res = append(res, DateValue(*s.Date))
	}
	if len(res) != 1 {
		return nil, ExactlyOneError(len(res))
	}
	return res[0], nil
}

// SlotsOf converts a Value back to its column representation.
func SlotsOf(v Value) Slots {
	var res Slots
	switch t := v.(type) {
	case IntegerValue:
		i := int64(t)
		res.Integer = &i
	case FloatValue:
		f := float64(t)
		res.Float = &f
	case TextValue:
		s := string(t)
		res.Text = &s
	case BooleanValue:
		b := bool(t)
		res.Boolean = &b
	case DateValue:
		d := time.Time(t)
		res.Date = &d
	}
	return res
}

// Variant carries the limits that differ between the attribution values
// and the older mark values.
type Variant struct {
	Name      string
	PhotoStem int
	TextMax   int
	photoRe   *regexp.Regexp
}

// NewVariant creates a Variant for photo file names with a stem of
// photoStem word characters and texts of at most textMax characters.
func NewVariant(name string, photoStem, textMax int) Variant {
	return Variant{
		Name:      name,
		PhotoStem: photoStem,
		TextMax:   textMax,
		photoRe: regexp.MustCompile(
			fmt.Sprintf(`^\w{%d}\.(jpe?g|avif)$`, photoStem),
		),
	}
}

var (
	// Attributions is the variant of attribution_values.
	Attributions = NewVariant("attribution_values", 64, 2047)

	// Marks is the variant of mark_values.
	Marks = NewVariant("mark_values", 32, 2046)
)

// ValidPhoto checks a photo file name.
func (v Variant) ValidPhoto(name string) bool {
	return v.photoRe.MatchString(name)
}

// Validate checks the candidate slots against the attribute schema and
// returns the typed value. Checks run in this order: exactly one slot,
// slot matches the data type, validation rule, photo file name, text
// length.
func (s Schema) Validate(variant Variant, slots Slots) (Value, error) {
	v, err := slots.Value()
	if err != nil {
		return nil, err
	}
	return v, s.ValidateValue(variant, v)
}

// ValidateValue runs all checks after the exactly-one check.
func (s Schema) ValidateValue(variant Variant, v Value) error {
	if v.Slot() != s.DataType.Slot() {
		return TypeMismatchError(s.DataType, v.Slot())
	}

	switch t := v.(type) {
	case IntegerValue:
		if s.Rule != nil && !s.Rule.AllowsInt(int64(t)) {
			return RuleViolationError(t)
		}
	case FloatValue:
		if s.Rule != nil && !s.Rule.AllowsFloat(float64(t)) {
			return RuleViolationError(t)
		}
	case TextValue:
		if s.DataType == Photo && !variant.ValidPhoto(string(t)) {
			return PhotoFilenameError(string(t))
		}
		if utf8.RuneCountInString(string(t)) > variant.TextMax {
			return TextLengthError(variant.TextMax)
		}
	}
	return nil
}
