package address

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCity is the city marker stripped from user input.
const DefaultCity = "San Francisco"

// Abbreviator maps a long-form street type ("street") to its abbreviation ("st").
type Abbreviator interface {
	Abbreviate(streetType string) (string, bool)
}

// Normalizer turns free-form user input into a canonical Address.
type Normalizer struct {
	abbreviations Abbreviator
	city          *regexp.Regexp
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCity sets the city name stripped from input. Matching is case-insensitive.
// An empty city keeps the default.
func WithCity(city string) Option {
	return func(n *Normalizer) {
		if strings.TrimSpace(city) != "" {
			n.city = cityPattern(city)
		}
	}
}

// NewNormalizer creates a normalizer using abbreviations for street types.
func NewNormalizer(abbreviations Abbreviator, opts ...Option) *Normalizer {
	n := &Normalizer{
		abbreviations: abbreviations,
		city:          cityPattern(DefaultCity),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize lower-cases raw, strips city/state/zip and punctuation, validates
// the shape, zero-pads ordinal street names and abbreviates the street type.
func (n *Normalizer) Normalize(raw string) (Address, error) {
	s := strings.ToLower(foldAccents(raw))
	s = stripCity(s, n.city)
	s = StripPunctuation(s, '-')
	s = strings.Join(strings.Fields(s), " ")

	addr, err := New(s)
	if err != nil {
		return Address{}, err
	}
	addr.StreetName = PadNumericStreetName(addr.StreetName)
	return AbbreviateStreetType(addr, n.abbreviations), nil
}

// StripCityStateZip removes a trailing ", city, state zip" suffix from input.
//
// When input has a comma and the text before the first comma is a plausible
// address on its own, that text is returned verbatim. Otherwise commas are
// dropped and input is cut at the first case-insensitive occurrence of city.
// Input without the city is returned unchanged (minus commas).
func StripCityStateZip(input, city string) string {
	return stripCity(input, cityPattern(city))
}

func stripCity(input string, city *regexp.Regexp) string {
	if before, _, ok := strings.Cut(input, ","); ok && IsPlausible(before) {
		return before
	}
	input = strings.ReplaceAll(input, ",", "")
	if loc := city.FindStringIndex(input); loc != nil {
		return strings.TrimSpace(input[:loc[0]])
	}
	return input
}

func cityPattern(city string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(city))
}

// StripPunctuation removes punctuation and symbol characters from s, keeping
// any rune listed in exceptions.
func StripPunctuation(s string, exceptions ...rune) string {
	return strings.Map(func(r rune) rune {
		if (unicode.IsPunct(r) || unicode.IsSymbol(r)) && !slices.Contains(exceptions, r) {
			return -1
		}
		return r
	}, s)
}

// PadNumericStreetName zero-pads a single digit ordinal street, "9th st" -> "09th st".
// The street data stores ordinal streets with two digits.
func PadNumericStreetName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	digits := 0
	for digits < len(first) && first[digits] >= '0' && first[digits] <= '9' {
		digits++
	}
	if digits == 1 && first[0] != '0' {
		return "0" + name
	}
	return name
}

// AbbreviateStreetType replaces the trailing street type of addr with its
// abbreviation. Only the last token is considered; "street" inside a longer
// name is never touched.
func AbbreviateStreetType(addr Address, abbreviations Abbreviator) Address {
	if abbreviations == nil {
		return addr
	}
	typ := addr.StreetType()
	short, ok := abbreviations.Abbreviate(strings.ToLower(typ))
	if !ok || short == typ {
		return addr
	}
	return addr.WithStreetName(strings.TrimSuffix(addr.StreetName, typ) + short)
}

// foldAccents drops combining marks so "valéncia" compares equal to "valencia".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
