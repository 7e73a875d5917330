package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type abbrevMap map[string]string

func (m abbrevMap) Abbreviate(streetType string) (string, bool) {
	short, ok := m[streetType]
	return short, ok
}

var testAbbreviations = abbrevMap{
	"street":    "st",
	"avenue":    "ave",
	"boulevard": "blvd",
	"way":       "way",
}

func TestStripCityStateZip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "city after comma", input: "123 Example St, San Francisco", want: "123 Example St"},
		{name: "city without comma", input: "123 Example St San Francisco", want: "123 Example St"},
		{name: "no city", input: "123 Example St", want: "123 Example St"},
		{name: "stray comma", input: "123 Example, St", want: "123 Example St"},
		{name: "city state and zip", input: "123 Example St, San Francisco, CA 94110", want: "123 Example St"},
		{name: "lower case city", input: "272 capp street san francisco", want: "272 capp street"},
		{name: "city without comma then state", input: "272 Capp St San Francisco CA 94110", want: "272 Capp St"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCityStateZip(tt.input, DefaultCity))
		})
	}
}

func TestStripCityStateZip_CommaAndNoCommaAgree(t *testing.T) {
	withComma := StripCityStateZip("123 Example St, San Francisco", DefaultCity)
	withoutComma := StripCityStateZip("123 Example St San Francisco", DefaultCity)

	assert.Equal(t, withComma, withoutComma)
	assert.Equal(t, "123 Example St", withComma)
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		exceptions []rune
		want       string
	}{
		{name: "trailing period", input: "123 Example St.", want: "123 Example St"},
		{name: "clean input unchanged", input: "123 Example St", want: "123 Example St"},
		{name: "hyphen exempt", input: "123 Example-Example St.", exceptions: []rune{'-'}, want: "123 Example-Example St"},
		{name: "hyphen removed without exemption", input: "123 Example-Example St", want: "123 ExampleExample St"},
		{name: "symbols", input: "#12 $Main+ St!", want: "12 Main St"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPunctuation(tt.input, tt.exceptions...))
		})
	}
}

func TestPadNumericStreetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9th st", "09th st"},
		{"2nd st", "02nd st"},
		{"09th st", "09th st"},
		{"19th st", "19th st"},
		{"valencia st", "valencia st"},
		{"0th st", "0th st"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, PadNumericStreetName(tt.input))
		})
	}
}

func TestPadNumericStreetName_Idempotent(t *testing.T) {
	for _, name := range []string{"1st st", "3rd ave", "9th st", "10th ave", "25th ave", "valencia st"} {
		once := PadNumericStreetName(name)
		assert.Equal(t, once, PadNumericStreetName(once), name)
	}
}

func TestAbbreviateStreetType(t *testing.T) {
	tests := []struct {
		name  string
		input Address
		want  string
	}{
		{name: "street", input: Address{"123", "Example Street"}, want: "123 Example st"},
		{name: "avenue", input: Address{"123", "example avenue"}, want: "123 example ave"},
		{name: "already abbreviated", input: Address{"123", "example st"}, want: "123 example st"},
		{name: "identity abbreviation", input: Address{"900", "brotherhood way"}, want: "900 brotherhood way"},
		{name: "unknown type", input: Address{"123", "example xyz"}, want: "123 example xyz"},
		{name: "type word inside name", input: Address{"1", "street avenue"}, want: "1 street ave"},
		{name: "partial word", input: Address{"1", "main streets"}, want: "1 main streets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbbreviateStreetType(tt.input, testAbbreviations).String())
		})
	}
}

func TestAbbreviateStreetType_NilAbbreviator(t *testing.T) {
	addr := Address{"123", "example street"}
	assert.Equal(t, addr, AbbreviateStreetType(addr, nil))
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(testAbbreviations)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "full address", input: "123. Example-Example Street, San Francisco, CA 94110", want: "123 example-example st"},
		{name: "comma city", input: "1468 Valencia Street, San Francisco", want: "1468 valencia st"},
		{name: "no comma city", input: "272 Capp Street San Francisco", want: "272 capp st"},
		{name: "city state zip", input: "272 Capp St, San Francisco, CA 94110", want: "272 capp st"},
		{name: "ordinal street", input: "1204 9th Street", want: "1204 09th st"},
		{name: "accents", input: "1468 Valéncia St", want: "1468 valencia st"},
		{name: "extra whitespace", input: "  1468    Valencia   St  ", want: "1468 valencia st"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := n.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestNormalizer_WithCity(t *testing.T) {
	n := NewNormalizer(testAbbreviations, WithCity("Oakland"))

	addr, err := n.Normalize("100 Grand Avenue Oakland CA")
	require.NoError(t, err)
	assert.Equal(t, "100 grand ave", addr.String())

	n = NewNormalizer(testAbbreviations, WithCity(""))
	addr, err = n.Normalize("272 Capp Street San Francisco")
	require.NoError(t, err)
	assert.Equal(t, "272 capp st", addr.String())
}

func TestNormalizer_Errors(t *testing.T) {
	n := NewNormalizer(testAbbreviations)

	t.Run("too short after cleaning", func(t *testing.T) {
		_, err := n.Normalize("123 Valencia, San Francisco")
		var lengthErr *AddressLengthError
		assert.True(t, errors.As(err, &lengthErr))
	})

	// Every input without a leading integer fails as a street number error,
	// never as some other kind.
	for _, input := range []string{
		"Valencia Street San Francisco",
		"12d Street St",
		"one two three",
		"#abc Main St",
		"1o1 Main Street, San Francisco",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := n.Normalize(input)
			var numberErr *NonIntegerStreetNumberError
			assert.True(t, errors.As(err, &numberErr), "got %v", err)
		})
	}
}
