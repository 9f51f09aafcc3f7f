package attribute_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func code(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "error should be of type *gn.Error")
	return gnErr.Code
}

func schema(t *testing.T, dt attribute.DataType, rule string) *attribute.Schema {
	t.Helper()
	def := attribute.Definition{Name: "test", DataType: dt}
	if rule != "" {
		def.ValidationRule = json.RawMessage(rule)
	}
	res, err := def.Validate()
	require.NoError(t, err)
	return res
}

func TestParseDataType(t *testing.T) {
	dt, err := attribute.ParseDataType(" rating ")
	require.NoError(t, err)
	assert.Equal(t, attribute.Rating, dt)

	_, err = attribute.ParseDataType("JSON")
	assert.Equal(t, errcode.FieldFormatError, code(t, err))
}

func TestSlotsValue(t *testing.T) {
	tests := []struct {
		msg   string
		slots attribute.Slots
		slot  attribute.Slot
		code  gn.ErrorCode
	}{
		{"no slots", attribute.Slots{}, attribute.SlotNone,
			errcode.ValueExactlyOneError},
		{"empty text counts as unset", attribute.Slots{Text: ptr("")},
			attribute.SlotNone, errcode.ValueExactlyOneError},
		{"two slots", attribute.Slots{Integer: ptr(int64(1)), Float: ptr(1.0)},
			attribute.SlotNone, errcode.ValueExactlyOneError},
		{"integer", attribute.Slots{Integer: ptr(int64(1))},
			attribute.SlotInteger, 0},
		{"text", attribute.Slots{Text: ptr("a")},
			attribute.SlotText, 0},
		{"boolean false", attribute.Slots{Boolean: ptr(false)},
			attribute.SlotBoolean, 0},
		{"date", attribute.Slots{Date: ptr(time.Now())},
			attribute.SlotDate, 0},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := v.slots.Value()
			if v.code != 0 {
				assert.Equal(t, v.code, code(t, err))
				gnErr := err.(*gn.Error)
				assert.Equal(t, "Exactly one value column must be set.", gnErr.Msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.slot, res.Slot())
		})
	}
}

func TestSlotsRoundTrip(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, v := range []attribute.Value{
		attribute.IntegerValue(7),
		attribute.FloatValue(2.5),
		attribute.TextValue("sweet"),
		attribute.BooleanValue(true),
		attribute.DateValue(day),
	} {
		res, err := attribute.SlotsOf(v).Value()
		require.NoError(t, err)
		assert.Equal(t, v, res)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	tests := []struct {
		dt    attribute.DataType
		rule  string
		slots attribute.Slots
	}{
		{attribute.Integer, `{"min":0,"max":10,"step":1}`,
			attribute.Slots{Float: ptr(1.0)}},
		{attribute.Rating, `{"min":1,"max":9,"step":1}`,
			attribute.Slots{Text: ptr("5")}},
		{attribute.Float, `{"min":0,"max":10,"step":0.5}`,
			attribute.Slots{Integer: ptr(int64(1))}},
		{attribute.Text, "", attribute.Slots{Boolean: ptr(true)}},
		{attribute.Photo, "", attribute.Slots{Integer: ptr(int64(1))}},
		{attribute.Boolean, "", attribute.Slots{Text: ptr("true")}},
		{attribute.Date, "", attribute.Slots{Text: ptr("2024-01-01")}},
	}

	for _, v := range tests {
		t.Run(string(v.dt), func(t *testing.T) {
			s := schema(t, v.dt, v.rule)
			_, err := s.Validate(attribute.Attributions, v.slots)
			assert.Equal(t, errcode.ValueTypeMismatchError, code(t, err))
			assert.Equal(t,
				"The value type does not match the attribute type.",
				errcode.Message(err))
		})
	}
}

func TestValidateRule(t *testing.T) {
	integer := schema(t, attribute.Integer, `{"min":2,"max":20,"step":4}`)
	float := schema(t, attribute.Float, `{"min":0.5,"max":1.5,"step":0.1}`)

	tests := []struct {
		msg   string
		s     *attribute.Schema
		slots attribute.Slots
		ok    bool
	}{
		{"int min", integer, attribute.Slots{Integer: ptr(int64(2))}, true},
		{"int on step", integer, attribute.Slots{Integer: ptr(int64(14))}, true},
		{"int max off step", integer, attribute.Slots{Integer: ptr(int64(20))}, false},
		{"int off step", integer, attribute.Slots{Integer: ptr(int64(3))}, false},
		{"int below", integer, attribute.Slots{Integer: ptr(int64(-1))}, false},
		{"int above", integer, attribute.Slots{Integer: ptr(int64(23))}, false},
		{"float off step is fine", float, attribute.Slots{Float: ptr(0.77)}, true},
		{"float max", float, attribute.Slots{Float: ptr(1.5)}, true},
		{"float above", float, attribute.Slots{Float: ptr(1.51)}, false},
		{"float below", float, attribute.Slots{Float: ptr(0.49)}, false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := v.s.Validate(attribute.Attributions, v.slots)
			if v.ok {
				require.NoError(t, err)
				assert.Equal(t, v.slots, attribute.SlotsOf(res))
				return
			}
			assert.Equal(t, errcode.ValueRuleError, code(t, err))
			assert.Equal(t, "The value does not match the validation rule.",
				errcode.Message(err))
		})
	}
}

func TestValidatePhoto(t *testing.T) {
	s := schema(t, attribute.Photo, "")
	stem64 := strings.Repeat("a1", 32)
	stem32 := strings.Repeat("b2", 16)

	tests := []struct {
		msg     string
		variant attribute.Variant
		name    string
		ok      bool
	}{
		{"64 jpg", attribute.Attributions, stem64 + ".jpg", true},
		{"64 jpeg", attribute.Attributions, stem64 + ".jpeg", true},
		{"64 avif", attribute.Attributions, stem64 + ".avif", true},
		{"64 png", attribute.Attributions, stem64 + ".png", false},
		{"32 on attributions", attribute.Attributions, stem32 + ".jpg", false},
		{"32 on marks", attribute.Marks, stem32 + ".jpg", true},
		{"64 on marks", attribute.Marks, stem64 + ".jpg", false},
		{"path", attribute.Attributions, "../" + stem64 + ".jpg", false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := s.Validate(v.variant, attribute.Slots{Text: ptr(v.name)})
			if v.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errcode.ValuePhotoFilenameError, code(t, err))
		})
	}
}

func TestValidateTextLength(t *testing.T) {
	s := schema(t, attribute.Text, "")

	_, err := s.Validate(attribute.Attributions,
		attribute.Slots{Text: ptr(strings.Repeat("ä", 2047))})
	assert.NoError(t, err)

	_, err = s.Validate(attribute.Attributions,
		attribute.Slots{Text: ptr(strings.Repeat("a", 2048))})
	assert.Equal(t, errcode.ValueTextLengthError, code(t, err))

	_, err = s.Validate(attribute.Marks,
		attribute.Slots{Text: ptr(strings.Repeat("a", 2047))})
	assert.Equal(t, errcode.ValueTextLengthError, code(t, err))
	assert.Equal(t,
		"The text value must not be longer than 2046 characters.",
		errcode.Message(err))
}

func TestDefinitionRule(t *testing.T) {
	tests := []struct {
		msg  string
		dt   attribute.DataType
		rule string
		ok   bool
	}{
		{"text without rule", attribute.Text, "", true},
		{"text with rule", attribute.Text, `{"min":0,"max":1,"step":1}`, false},
		{"boolean with rule", attribute.Boolean, `{}`, false},
		{"date with null rule", attribute.Date, `null`, true},
		{"photo with rule", attribute.Photo, `{"min":0,"max":1,"step":1}`, false},
		{"integer without rule", attribute.Integer, "", false},
		{"integer missing step", attribute.Integer, `{"min":0,"max":1}`, false},
		{"integer extra key", attribute.Integer,
			`{"min":0,"max":1,"step":1,"x":1}`, false},
		{"integer fractional", attribute.Integer,
			`{"min":0,"max":1.5,"step":1}`, false},
		{"integer quoted", attribute.Integer,
			`{"min":"0","max":1,"step":1}`, false},
		{"integer ok", attribute.Integer, `{"min":-5,"max":5,"step":5}`, true},
		{"integer min above max", attribute.Integer,
			`{"min":6,"max":5,"step":1}`, false},
		{"integer zero step", attribute.Integer,
			`{"min":0,"max":5,"step":0}`, false},
		{"float fractional", attribute.Float,
			`{"min":0.1,"max":0.9,"step":0.01}`, true},
		{"float negative step", attribute.Float,
			`{"min":0.1,"max":0.9,"step":-0.01}`, false},
		{"rating ok", attribute.Rating, `{"min":1,"max":9,"step":1}`, true},
		{"rating zero min", attribute.Rating, `{"min":0,"max":3,"step":1}`, true},
		{"rating negative min", attribute.Rating,
			`{"min":-1,"max":3,"step":1}`, false},
		{"rating max 10", attribute.Rating, `{"min":1,"max":10,"step":1}`, false},
		{"rating step 2", attribute.Rating, `{"min":1,"max":9,"step":2}`, false},
		{"rating min above max", attribute.Rating,
			`{"min":5,"max":4,"step":1}`, false},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			def := attribute.Definition{Name: "x", DataType: v.dt}
			if v.rule != "" {
				def.ValidationRule = json.RawMessage(v.rule)
			}
			_, err := def.Validate()
			if v.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errcode.AttributeRuleError, code(t, err))
		})
	}
}

func TestDefinitionRuleMessages(t *testing.T) {
	def := attribute.Definition{Name: "x", DataType: attribute.Text,
		ValidationRule: json.RawMessage(`{"min":0,"max":1,"step":1}`)}
	_, err := def.Validate()
	assert.Equal(t, "validation_rule must be null for data type TEXT.",
		errcode.Message(err))

	def = attribute.Definition{Name: "x", DataType: attribute.Rating}
	_, err = def.Validate()
	assert.Equal(t,
		"validation_rule requires integer min, max and step for data type RATING.",
		errcode.Message(err))

	def = attribute.Definition{Name: "x", DataType: attribute.Float}
	_, err = def.Validate()
	assert.Equal(t,
		"validation_rule requires numeric min, max and step for data type FLOAT.",
		errcode.Message(err))
}

func TestDefinitionDefaultValue(t *testing.T) {
	intRule := `{"min":0,"max":10,"step":2}`
	floatRule := `{"min":0,"max":1,"step":0.1}`
	msg := "default_value does not match the attribute type or validation rule."

	tests := []struct {
		msg  string
		dt   attribute.DataType
		rule string
		def  string
		ok   bool
	}{
		{"integer ok", attribute.Integer, intRule, `4`, true},
		{"integer off step", attribute.Integer, intRule, `5`, false},
		{"integer above rule", attribute.Integer,
			`{"min":1,"max":5,"step":1}`, `7`, false},
		{"integer fractional", attribute.Integer, intRule, `4.5`, false},
		{"integer as string", attribute.Integer, intRule, `"4"`, false},
		{"rating below rule", attribute.Rating,
			`{"min":1,"max":9,"step":1}`, `0`, false},
		{"float integer literal", attribute.Float, floatRule, `1`, true},
		{"float out of range", attribute.Float, floatRule, `1.1`, false},
		{"boolean ok", attribute.Boolean, "", `false`, true},
		{"boolean string", attribute.Boolean, "", `"false"`, false},
		{"boolean yes", attribute.Boolean, "", `"yes"`, false},
		{"date ok", attribute.Date, "", `"2024-02-29"`, true},
		{"date invalid", attribute.Date, "", `"2023-02-29"`, false},
		{"text ok", attribute.Text, "", `"n/a"`, true},
		{"text array", attribute.Text, "", `["n/a"]`, false},
		{"text number", attribute.Text, "", `12`, false},
		{"null default", attribute.Photo, "", `null`, true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			def := attribute.Definition{
				Name:         "x",
				DataType:     v.dt,
				DefaultValue: json.RawMessage(v.def),
			}
			if v.rule != "" {
				def.ValidationRule = json.RawMessage(v.rule)
			}
			res, err := def.Validate()
			if v.ok {
				require.NoError(t, err)
				if v.def != "null" {
					assert.NotNil(t, res.Default)
				}
				return
			}
			assert.Equal(t, errcode.AttributeDefaultError, code(t, err))
			assert.Equal(t, msg, errcode.Message(err))
			assert.Equal(t, errcode.ClassBusinessRule,
				errcode.ClassOf(code(t, err)))
		})
	}

	def := attribute.Definition{
		Name:         "x",
		DataType:     attribute.Photo,
		DefaultValue: json.RawMessage(`"` + strings.Repeat("a", 64) + `.jpg"`),
	}
	_, err := def.Validate()
	assert.Equal(t, errcode.AttributeDefaultError, code(t, err))
	assert.Equal(t, "default_value is not allowed for data type PHOTO.",
		errcode.Message(err))
}

func TestRuleLargeIntegers(t *testing.T) {
	// above 2^53 neighbouring integers collapse in float64
	s := schema(t, attribute.Integer,
		`{"min":9007199254740993,"max":9007199254740999,"step":2}`)
	require.NotNil(t, s.Rule)
	assert.Equal(t, int64(9007199254740993), s.Rule.IntMin)
	assert.Equal(t, int64(9007199254740999), s.Rule.IntMax)

	tests := []struct {
		v  int64
		ok bool
	}{
		{9007199254740992, false},
		{9007199254740993, true},
		{9007199254740994, false},
		{9007199254740995, true},
		{9007199254740999, true},
		{9007199254741000, false},
	}
	for _, v := range tests {
		_, err := s.Validate(attribute.Attributions,
			attribute.Slots{Integer: ptr(v.v)})
		if v.ok {
			assert.NoError(t, err, v.v)
			continue
		}
		assert.Equal(t, errcode.ValueRuleError, code(t, err), v.v)
	}

	wide := schema(t, attribute.Integer,
		`{"min":-9223372036854775808,"max":9223372036854775807,"step":2}`)
	_, err := wide.Validate(attribute.Attributions,
		attribute.Slots{Integer: ptr(int64(9223372036854775807))})
	assert.Equal(t, errcode.ValueRuleError, code(t, err))
	_, err = wide.Validate(attribute.Attributions,
		attribute.Slots{Integer: ptr(int64(-9223372036854775806))})
	assert.NoError(t, err)

	_, err = attribute.ParseRule(attribute.Integer,
		json.RawMessage(`{"min":9007199254740995,"max":9007199254740993,"step":1}`))
	assert.Equal(t, "validation_rule min must not be greater than max.",
		errcode.Message(err))
}

func TestDefinitionLegend(t *testing.T) {
	rule := json.RawMessage(`{"min":1,"max":3,"step":1}`)

	tests := []struct {
		msg    string
		dt     attribute.DataType
		legend string
		ok     bool
		text   string
	}{
		{"exact size", attribute.Rating, `["low","mid","high"]`, true, ""},
		{"one short", attribute.Rating, `["low","high"]`, false,
			"legend must have exactly 3 entries."},
		{"one long", attribute.Rating, `["a","b","c","d"]`, false,
			"legend must have exactly 3 entries."},
		{"not strings", attribute.Rating, `["a",2,"c"]`, false,
			"legend must be an array of strings."},
		{"object", attribute.Rating, `{"a":1}`, false,
			"legend must be an array of strings."},
		{"integer legend", attribute.Integer, `["a","b","c"]`, false,
			"legend is only allowed for data type RATING."},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			def := attribute.Definition{
				Name:           "x",
				DataType:       v.dt,
				ValidationRule: rule,
				Legend:         json.RawMessage(v.legend),
			}
			res, err := def.Validate()
			if v.ok {
				require.NoError(t, err)
				assert.Equal(t, []string{"low", "mid", "high"}, res.Legend)
				return
			}
			assert.Equal(t, errcode.AttributeLegendError, code(t, err))
			assert.Equal(t, v.text, errcode.Message(err))
		})
	}
}

func TestValidateName(t *testing.T) {
	name, err := attribute.ValidateName("  Fruit size ")
	require.NoError(t, err)
	assert.Equal(t, "Fruit size", name)

	_, err = attribute.ValidateName("   ")
	assert.Equal(t, errcode.RequiredFieldError, code(t, err))

	_, err = attribute.ValidateName(strings.Repeat("x", 46))
	assert.Equal(t, errcode.FieldLengthError, code(t, err))
}

func TestCheckDataTypeChange(t *testing.T) {
	assert.NoError(t,
		attribute.CheckDataTypeChange(attribute.Integer, attribute.Float, false))
	assert.NoError(t,
		attribute.CheckDataTypeChange(attribute.Integer, attribute.Integer, true))

	err := attribute.CheckDataTypeChange(attribute.Integer, attribute.Float, true)
	assert.Equal(t, errcode.AttributeDataTypeLockedError, code(t, err))
	assert.Equal(t,
		"The data type can not be changed because values exist for this attribute.",
		errcode.Message(err))
}
