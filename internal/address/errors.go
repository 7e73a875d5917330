package address

import "fmt"

// AddressError is the category shared by every structural address failure.
// Match it with errors.As against *AddressError, or against one of the
// concrete kinds below.
type AddressError struct {
	Input string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q", e.Input)
}

// AddressLengthError reports an address with fewer than three or more than
// MaxTokens tokens.
type AddressLengthError struct {
	AddressError
	Tokens int
}

// TooLong reports whether the address had more than MaxTokens tokens.
func (e *AddressLengthError) TooLong() bool {
	return e.Tokens > MaxTokens
}

func (e *AddressLengthError) Error() string {
	if e.TooLong() {
		return fmt.Sprintf("address has %d parts, at most %d allowed", e.Tokens, MaxTokens)
	}
	return fmt.Sprintf("address %q has %d parts, need a number, street name and street type", e.Input, e.Tokens)
}

// As lets errors.As match a length error as its *AddressError category.
func (e *AddressLengthError) As(target any) bool {
	if t, ok := target.(**AddressError); ok {
		*t = &e.AddressError
		return true
	}
	return false
}

// NonIntegerStreetNumberError reports an address whose first token is not a number.
type NonIntegerStreetNumberError struct {
	AddressError
	Token string
}

func (e *NonIntegerStreetNumberError) Error() string {
	return fmt.Sprintf("address %q: street number %q is not an integer", e.Input, e.Token)
}

// As lets errors.As match a street number error as its *AddressError category.
func (e *NonIntegerStreetNumberError) As(target any) bool {
	if t, ok := target.(**AddressError); ok {
		*t = &e.AddressError
		return true
	}
	return false
}
