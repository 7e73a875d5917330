package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	addr, err := New("123 Street St")
	require.NoError(t, err)

	assert.Equal(t, "123", addr.StreetNumber)
	assert.Equal(t, "Street St", addr.StreetName)
	assert.Equal(t, "St", addr.StreetType())
	assert.Equal(t, "123 Street St", addr.String())
}

func TestNew_CollapsesWhitespace(t *testing.T) {
	addr, err := New("  1468   valencia  st ")
	require.NoError(t, err)
	assert.Equal(t, "1468 valencia st", addr.String())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen bool
	}{
		{name: "too short", input: "123 Short", wantLen: true},
		{name: "too long", input: "1 a b c d e f g h i st", wantLen: true},
		{name: "empty", input: "", wantLen: true},
		{name: "letters in number", input: "12d Street St"},
		{name: "no number", input: "Valencia Street Mission"},
		{name: "short without number", input: "Valencia Street"},
		{name: "negative number", input: "-12 Street St"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			require.Error(t, err)

			var category *AddressError
			assert.True(t, errors.As(err, &category), "every structural failure is an AddressError")
			assert.Equal(t, tt.input, category.Input)

			var lengthErr *AddressLengthError
			var numberErr *NonIntegerStreetNumberError
			if tt.wantLen {
				assert.True(t, errors.As(err, &lengthErr))
				assert.False(t, errors.As(err, &numberErr))
			} else {
				assert.True(t, errors.As(err, &numberErr))
				assert.False(t, errors.As(err, &lengthErr))
			}
		})
	}
}

func TestNew_TokenBounds(t *testing.T) {
	addr, err := New("1 a b c d e f g h st")
	require.NoError(t, err, "ten tokens is the upper bound")
	assert.Equal(t, "a b c d e f g h st", addr.StreetName)

	_, err = New("1 a b c d e f g h i st")
	var lengthErr *AddressLengthError
	require.True(t, errors.As(err, &lengthErr))
	assert.Equal(t, 11, lengthErr.Tokens)
	assert.True(t, lengthErr.TooLong())
	assert.NotContains(t, err.Error(), "a b c", "long input is not echoed back")

	_, err = New("123 Short")
	require.True(t, errors.As(err, &lengthErr))
	assert.False(t, lengthErr.TooLong())
}

func TestAddress_WithStreetNumber(t *testing.T) {
	addr, err := New("1468 19th st")
	require.NoError(t, err)

	moved := addr.WithStreetNumber(1466)

	assert.Equal(t, "1466 19th st", moved.String())
	assert.Equal(t, "1468 19th st", addr.String(), "original is not mutated")
}

func TestAddress_Number(t *testing.T) {
	addr := Address{StreetNumber: "0042", StreetName: "main st"}
	n, err := addr.Number()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestIsPlausible(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123 Example St", true},
		{"123 Example", false},
		{"abc Example St", false},
		{"123 Example St San Francisco", true},
		{"1 a b c d e f g h i st", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlausible(tt.input))
		})
	}
}
