package msgfmt

import (
	"encoding/json"
	"math"
	"strconv"

	"fortio.org/safecast"
)

// ValueKind identifies which variant a Value holds
type ValueKind int

// Value kinds
const (
	KindNumber ValueKind = iota
	KindString
)

// Value kind names
const (
	ValueKindNameNumber  = "number"
	ValueKindNameString  = "string"
	ValueKindNameUnknown = "unknown"
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return ValueKindNameNumber
	case KindString:
		return ValueKindNameString
	default:
		return ValueKindNameUnknown
	}
}

// Value is an argument's underlying data: a 64-bit signed number or a string.
// The zero Value is the number 0.
type Value struct {
	kind   ValueKind
	number int64
	str    string
}

// NumberValue wraps n
func NumberValue(n int64) Value {
	return Value{kind: KindNumber, number: n}
}

// StringValue wraps s
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind returns the variant held by v
func (v Value) Kind() ValueKind {
	return v.kind
}

// Number returns the number and true when v holds a number
func (v Value) Number() (int64, bool) {
	return v.number, v.kind == KindNumber
}

// Str returns the string and true when v holds a string
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// String returns the display form written by a simple substitution
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	return strconv.FormatInt(v.number, 10)
}

// ValueOf converts a Go value into a Value.
// Signed and unsigned integers are widened to int64; values outside the int64
// range are rejected. Floats and json.Number are accepted only when integral.
func ValueOf(value any) (Value, error) {
	return convertValue("", value)
}

func convertValue(name string, value any) (Value, error) {
	switch v := value.(type) {
	case Value:
		return v, nil
	case string:
		return StringValue(v), nil
	case int:
		return NumberValue(int64(v)), nil
	case int8:
		return NumberValue(int64(v)), nil
	case int16:
		return NumberValue(int64(v)), nil
	case int32:
		return NumberValue(int64(v)), nil
	case int64:
		return NumberValue(v), nil
	case uint:
		return widenUnsigned(name, v)
	case uint8:
		return NumberValue(int64(v)), nil
	case uint16:
		return NumberValue(int64(v)), nil
	case uint32:
		return NumberValue(int64(v)), nil
	case uint64:
		return widenUnsigned(name, v)
	case float32:
		return convertFloat(name, float64(v))
	case float64:
		return convertFloat(name, v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return NumberValue(n), nil
		}
		// "2.0" and "1e3" are integral but rejected by Int64
		f, err := v.Float64()
		if err != nil {
			return Value{}, NewArgumentConversionError(name, value, ErrMsgNonIntegralNumber)
		}
		return convertFloat(name, f)
	default:
		return Value{}, NewArgumentConversionError(name, value, ErrMsgUnsupportedType)
	}
}

func widenUnsigned[T uint | uint64](name string, v T) (Value, error) {
	n, err := safecast.Conv[int64](v)
	if err != nil {
		return Value{}, NewArgumentConversionError(name, v, ErrMsgIntegerOverflow)
	}
	return NumberValue(n), nil
}

func convertFloat(name string, f float64) (Value, error) {
	if math.Trunc(f) != f {
		return Value{}, NewArgumentConversionError(name, f, ErrMsgNonIntegralNumber)
	}
	n, err := safecast.Convert[int64](f)
	if err != nil {
		return Value{}, NewArgumentConversionError(name, f, ErrMsgIntegerOverflow)
	}
	return NumberValue(n), nil
}
