package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is the raw content of one simulator input: a number for
// number/slider fields, text for select fields. The tag is explicit so
// the evaluator's binding step has a checked contract instead of relying
// on implicit coercion.
type Value struct {
	num    float64
	text   string
	isText bool
}

func NumberValue(f float64) Value { return Value{num: f} }
func TextValue(s string) Value    { return Value{text: s, isText: true} }

func (v Value) IsText() bool { return v.isText }

// Number returns the numeric content. ok is false for text values.
func (v Value) Number() (float64, bool) {
	if v.isText {
		return 0, false
	}
	return v.num, true
}

// Text returns the textual content. ok is false for numeric values.
func (v Value) Text() (string, bool) {
	if !v.isText {
		return "", false
	}
	return v.text, true
}

// Operand is the numeric reading of a value when it is bound as a
// formula variable. Text values are parsed as a number when possible and
// otherwise count as 0, the same default applied to missing values.
func (v Value) Operand() float64 {
	if !v.isText {
		return v.num
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil {
		return 0
	}
	return f
}

// Display renders the value for UI and export output.
func (v Value) Display() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// MarshalJSON encodes numeric values as JSON numbers and text values as
// JSON strings, matching what a browser form submits.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
		return nil
	case string:
		*v = TextValue(t)
		return nil
	case bool:
		// Checkboxes are not a field kind; treat them as 1/0 rather than failing.
		if t {
			*v = NumberValue(1)
		} else {
			*v = NumberValue(0)
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", raw)
	}
}

// ValueFromAny converts a decoded JSON/YAML scalar into a Value.
func ValueFromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case float64:
		return NumberValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case string:
		return TextValue(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
