package msgfmt

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Variants(t *testing.T) {
	n := NumberValue(-42)
	num, ok := n.Number()
	assert.True(t, ok)
	assert.Equal(t, int64(-42), num)
	_, ok = n.Str()
	assert.False(t, ok)
	assert.Equal(t, KindNumber, n.Kind())
	assert.Equal(t, "-42", n.String())

	s := StringValue("Berlin")
	str, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "Berlin", str)
	_, ok = s.Number()
	assert.False(t, ok)
	assert.Equal(t, KindString, s.Kind())
	assert.Equal(t, "Berlin", s.String())
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, ValueKindNameNumber, KindNumber.String())
	assert.Equal(t, ValueKindNameString, KindString.String())
	assert.Equal(t, ValueKindNameUnknown, ValueKind(7).String())
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{name: "int", input: 5, expected: NumberValue(5)},
		{name: "int8", input: int8(-8), expected: NumberValue(-8)},
		{name: "int16", input: int16(16), expected: NumberValue(16)},
		{name: "int32", input: int32(-32), expected: NumberValue(-32)},
		{name: "int64 max", input: int64(math.MaxInt64), expected: NumberValue(math.MaxInt64)},
		{name: "uint", input: uint(7), expected: NumberValue(7)},
		{name: "uint8", input: uint8(255), expected: NumberValue(255)},
		{name: "uint16", input: uint16(65535), expected: NumberValue(65535)},
		{name: "uint32", input: uint32(math.MaxUint32), expected: NumberValue(math.MaxUint32)},
		{name: "uint64 in range", input: uint64(math.MaxInt64), expected: NumberValue(math.MaxInt64)},
		{name: "integral float", input: 3.0, expected: NumberValue(3)},
		{name: "float32", input: float32(2), expected: NumberValue(2)},
		{name: "json number", input: json.Number("12"), expected: NumberValue(12)},
		{name: "integral json number with fraction digits", input: json.Number("2.0"), expected: NumberValue(2)},
		{name: "json number in exponent form", input: json.Number("1e3"), expected: NumberValue(1000)},
		{name: "string", input: "text", expected: StringValue("text")},
		{name: "value passthrough", input: StringValue("v"), expected: StringValue("v")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueOf(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestValueOf_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		reason string
	}{
		{name: "uint64 overflow", input: uint64(math.MaxUint64), reason: ErrMsgIntegerOverflow},
		{name: "fractional float", input: 1.5, reason: ErrMsgNonIntegralNumber},
		{name: "huge float", input: 1e300, reason: ErrMsgIntegerOverflow},
		{name: "fractional json number", input: json.Number("1.5"), reason: ErrMsgNonIntegralNumber},
		{name: "json number beyond int64", input: json.Number("1e19"), reason: ErrMsgIntegerOverflow},
		{name: "malformed json number", input: json.Number("abc"), reason: ErrMsgNonIntegralNumber},
		{name: "bool", input: true, reason: ErrMsgUnsupportedType},
		{name: "nil", input: nil, reason: ErrMsgUnsupportedType},
		{name: "slice", input: []int{1}, reason: ErrMsgUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValueOf(tt.input)
			require.Error(t, err)
			assert.True(t, IsArgumentConversion(err))
			assert.Contains(t, err.Error(), ErrMsgArgumentConversion)
			assert.Equal(t, tt.reason, errorMetadata(t, err, MetaKeyReason))
		})
	}
}
