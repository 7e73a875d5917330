package address

import (
	"strconv"
	"strings"
)

// minTokens is the shortest usable address: {number} {name} {type}.
const minTokens = 3

// MaxTokens is the longest address accepted.
const MaxTokens = 10

// Address is a street address split into its street number and street name.
// The street name carries the street type as its last token.
type Address struct {
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
}

// New builds an Address from an already cleaned string such as "1468 valencia st".
func New(s string) (Address, error) {
	fields := strings.Fields(s)
	// The number is checked first so a short input with a word in front
	// ("valencia street") reports the missing number rather than its length.
	if len(fields) > 0 && !isStreetNumber(fields[0]) {
		return Address{}, &NonIntegerStreetNumberError{AddressError: AddressError{Input: s}, Token: fields[0]}
	}
	if len(fields) < minTokens || len(fields) > MaxTokens {
		return Address{}, &AddressLengthError{AddressError: AddressError{Input: s}, Tokens: len(fields)}
	}
	return Address{
		StreetNumber: fields[0],
		StreetName:   strings.Join(fields[1:], " "),
	}, nil
}

// String returns the canonical "{number} {name}" form used as the lookup key.
func (a Address) String() string {
	return a.StreetNumber + " " + a.StreetName
}

// StreetType returns the trailing token of the street name, e.g. "st".
func (a Address) StreetType() string {
	i := strings.LastIndexByte(a.StreetName, ' ')
	return a.StreetName[i+1:]
}

// Number returns the street number as an integer.
func (a Address) Number() (int, error) {
	return strconv.Atoi(a.StreetNumber)
}

// WithStreetName returns a copy of a with the street name replaced.
func (a Address) WithStreetName(name string) Address {
	a.StreetName = name
	return a
}

// WithStreetNumber returns a copy of a with the street number replaced.
func (a Address) WithStreetNumber(n int) Address {
	a.StreetNumber = strconv.Itoa(n)
	return a
}

// IsPlausible reports whether s looks like a street address: three to
// MaxTokens whitespace separated tokens with a numeric first token.
func IsPlausible(s string) bool {
	fields := strings.Fields(s)
	return len(fields) >= minTokens && len(fields) <= MaxTokens && isStreetNumber(fields[0])
}

func isStreetNumber(tok string) bool {
	_, err := strconv.ParseUint(tok, 10, 64)
	return err == nil
}
