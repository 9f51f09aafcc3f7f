package attribute

import (
	"bytes"
	"encoding/json"
	"math"
)

// Rule is the min/max/step validation rule of numeric attributes.
// INTEGER and RATING rules keep exact int64 bounds, FLOAT rules float64
// bounds.
type Rule struct {
	Integral bool

	Min  float64
	Max  float64
	Step float64

	IntMin  int64
	IntMax  int64
	IntStep int64
}

// AllowsInt checks range and step with integer arithmetic.
func (r Rule) AllowsInt(v int64) bool {
	if !r.Integral {
		return r.AllowsFloat(float64(v))
	}
	if v < r.IntMin || v > r.IntMax || r.IntStep <= 0 {
		return false
	}
	// v >= IntMin, so the difference fits into uint64
	diff := uint64(v) - uint64(r.IntMin)
	return diff%uint64(r.IntStep) == 0
}

// AllowsFloat checks the range only.
func (r Rule) AllowsFloat(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Size returns the number of values a rating rule allows.
func (r Rule) Size() int {
	return int(r.IntMax-r.IntMin) + 1
}

// isNull is true for missing or JSON null input.
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// jsonNumber accepts JSON number literals only, quoted numbers are rejected.
func jsonNumber(raw json.RawMessage) (json.Number, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

// ParseRule parses and checks a validation rule for the data type.
// Data types without rules only accept null.
func ParseRule(dt DataType, raw json.RawMessage) (*Rule, error) {
	if !dt.HasRule() {
		if isNull(raw) {
			return nil, nil
		}
		return nil, RuleNotAllowedError(dt)
	}
	if isNull(raw) {
		return nil, RuleRequiredError(dt)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, RuleRequiredError(dt)
	}
	if len(fields) != 3 {
		return nil, RuleRequiredError(dt)
	}

	var nums [3]json.Number
	for i, k := range []string{"min", "max", "step"} {
		f, ok := fields[k]
		if !ok {
			return nil, RuleRequiredError(dt)
		}
		n, ok := jsonNumber(f)
		if !ok {
			return nil, RuleRequiredError(dt)
		}
		nums[i] = n
	}

	if dt.IntegralRule() {
		return parseIntRule(dt, nums)
	}
	return parseFloatRule(dt, nums)
}

func parseIntRule(dt DataType, nums [3]json.Number) (*Rule, error) {
	var ints [3]int64
	for i, n := range nums {
		v, ok := exactInt(n)
		if !ok {
			return nil, RuleRequiredError(dt)
		}
		ints[i] = v
	}

	res := &Rule{
		Integral: true,
		IntMin:   ints[0],
		IntMax:   ints[1],
		IntStep:  ints[2],
		Min:      float64(ints[0]),
		Max:      float64(ints[1]),
		Step:     float64(ints[2]),
	}
	if res.IntMin > res.IntMax {
		return nil, RuleMinMaxError()
	}
	if res.IntStep <= 0 {
		return nil, RuleStepError()
	}
	if dt == Rating && (res.IntMin < 0 || res.IntMax > 9 || res.IntStep != 1) {
		return nil, RatingRuleError()
	}
	return res, nil
}

func parseFloatRule(dt DataType, nums [3]json.Number) (*Rule, error) {
	var fs [3]float64
	for i, n := range nums {
		v, err := n.Float64()
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, RuleRequiredError(dt)
		}
		fs[i] = v
	}

	res := &Rule{Min: fs[0], Max: fs[1], Step: fs[2]}
	if res.Min > res.Max {
		return nil, RuleMinMaxError()
	}
	if res.Step <= 0 {
		return nil, RuleStepError()
	}
	return res, nil
}

// exactInt parses an integral JSON number without going through float64.
// Literals like 5.0 are accepted when they are exact within float64.
func exactInt(n json.Number) (int64, bool) {
	if v, err := n.Int64(); err == nil {
		return v, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
