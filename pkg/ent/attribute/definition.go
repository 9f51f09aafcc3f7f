package attribute

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// NameMaxLength is the longest allowed attribute name.
const NameMaxLength = 45

// Definition is an attribute definition as submitted by a client. The JSON
// fields are kept raw so that their shape can be checked.
type Definition struct {
	Name           string
	DataType       DataType
	ValidationRule json.RawMessage
	DefaultValue   json.RawMessage
	Legend         json.RawMessage
}

// Schema is a checked attribute definition used to validate values.
type Schema struct {
	DataType DataType
	Rule     *Rule
	Default  Value
	Legend   []string
}

// Validate checks the definition and returns its Schema.
func (d Definition) Validate() (*Schema, error) {
	if _, err := ValidateName(d.Name); err != nil {
		return nil, err
	}
	if d.DataType.Slot() == SlotNone {
		return nil, InvalidDataTypeError(string(d.DataType))
	}
	return d.Schema()
}

// Schema parses rule, default value and legend of the definition without
// checking the name.
func (d Definition) Schema() (*Schema, error) {
	rule, err := ParseRule(d.DataType, d.ValidationRule)
	if err != nil {
		return nil, err
	}
	res := &Schema{DataType: d.DataType, Rule: rule}

	if !isNull(d.DefaultValue) {
		if d.DataType == Photo {
			return nil, PhotoDefaultError()
		}
		slots, err := defaultSlots(d.DataType, d.DefaultValue)
		if err != nil {
			return nil, DefaultValueError(err)
		}
		v, err := res.Validate(Attributions, slots)
		if err != nil {
			return nil, DefaultValueError(err)
		}
		res.Default = v
	}

	legend, err := parseLegend(d.DataType, rule, d.Legend)
	if err != nil {
		return nil, err
	}
	res.Legend = legend
	return res, nil
}

// ValidateName trims the name and checks it is present and short enough.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", RequiredError("attribute", "name")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return "", LengthError("attribute", "name", NameMaxLength)
	}
	return name, nil
}

// CheckDataTypeChange rejects a data type change of an attribute that
// already has values.
func CheckDataTypeChange(current, next DataType, inUse bool) error {
	if current != next && inUse {
		return DataTypeLockedError()
	}
	return nil
}

// defaultSlots maps a JSON default value to the slot its JSON type implies.
func defaultSlots(dt DataType, raw json.RawMessage) (Slots, error) {
	var res Slots
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return res, TypeMismatchError(dt, SlotNone)
	}

	switch x := v.(type) {
	case json.Number:
		if dt.Slot() != SlotFloat {
			if i, err := x.Int64(); err == nil {
				res.Integer = &i
				return res, nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return res, TypeMismatchError(dt, SlotFloat)
		}
		res.Float = &f
	case string:
		if dt == Date {
			if d, ok := ParseDate(x); ok {
				res.Date = &d
				return res, nil
			}
		}
		res.Text = &x
	case bool:
		res.Boolean = &x
	default:
		return res, TypeMismatchError(dt, SlotNone)
	}
	return res, nil
}

// ParseDate accepts dates as YYYY-MM-DD or RFC3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseLegend(
	dt DataType,
	rule *Rule,
	raw json.RawMessage,
) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	if dt != Rating {
		return nil, LegendNotAllowedError()
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, LegendStringsError()
	}
	res := make([]string, 0, len(items))
	for _, v := range items {
		s, ok := v.(string)
		if !ok {
			return nil, LegendStringsError()
		}
		res = append(res, s)
	}
	if size := rule.Size(); len(res) != size {
		return nil, LegendSizeError(size, len(res))
	}
	return res, nil
}
