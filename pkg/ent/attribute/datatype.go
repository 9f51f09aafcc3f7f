// Package attribute validates typed values against dynamically defined
// attributes and validates the attribute definitions themselves.
//
// A value is stored in exactly one of five typed slots. The slot must match
// the storage type of the attribute's data type, numeric values must satisfy
// the attribute's validation rule, photos must carry a generated file name
// and texts are bounded in length.
package attribute

import (
	"strings"
)

// DataType is the declared type of an attribute.
type DataType string

const (
	Integer DataType = "INTEGER"
	Float   DataType = "FLOAT"
	Rating  DataType = "RATING"
	Text    DataType = "TEXT"
	Boolean DataType = "BOOLEAN"
	Date    DataType = "DATE"
	Photo   DataType = "PHOTO"
)

// DataTypes lists all supported data types.
var DataTypes = []DataType{Integer, Float, Rating, Text, Boolean, Date, Photo}

// ParseDataType converts a string to a DataType.
func ParseDataType(s string) (DataType, error) {
	dt := DataType(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range DataTypes {
		if v == dt {
			return dt, nil
		}
	}
	return "", InvalidDataTypeError(s)
}

// Slot returns the storage slot used by values of this data type.
func (d DataType) Slot() Slot {
	switch d {
	case Integer, Rating:
		return SlotInteger
	case Float:
		return SlotFloat
	case Text, Photo:
		return SlotText
	case Boolean:
		return SlotBoolean
	case Date:
		return SlotDate
	default:
		return SlotNone
	}
}

// HasRule is true for data types that require a validation rule.
func (d DataType) HasRule() bool {
	return d == Integer || d == Float || d == Rating
}

// IntegralRule is true when min, max and step must be integers.
func (d DataType) IntegralRule() bool {
	return d == Integer || d == Rating
}

// Kind of an attribute.
type Kind string

const (
	Observation Kind = "OBSERVATION"
	Treatment   Kind = "TREATMENT"
	Sample      Kind = "SAMPLE"
	Other       Kind = "OTHER"
)

// ParseKind converts a string to an attribute Kind. Empty input defaults to
// Observation.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case "":
		return Observation, nil
	case Observation, Treatment, Sample, Other:
		return k, nil
	}
	return "", InvalidKindError(s)
}
