package service

import (
	"errors"
	"fmt"
	"strings"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/matcher"
	"sf-tree-identifier/internal/nearby"
	"sf-tree-identifier/internal/streets"
)

// MaxQueryLength caps the address text in bytes. Street matching scores the
// input against every known street, so its cost grows with the input.
const MaxQueryLength = 256

var (
	// ErrEmptyQuery is returned when the address text is blank.
	ErrEmptyQuery = errors.New("service: address cannot be empty")
	// ErrQueryTooLong is returned when the address text exceeds MaxQueryLength.
	ErrQueryTooLong = errors.New("service: address is too long")
)

// cleanQuery trims raw and rejects blank or oversized input.
func cleanQuery(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", ErrEmptyQuery
	case len(raw) > MaxQueryLength:
		return "", ErrQueryTooLong
	}
	return raw, nil
}

// Kind names a class of failure that callers present differently.
type Kind string

const (
	KindInvalidAddress Kind = "invalid_address"
	KindUnknownStreet  Kind = "unknown_street"
	KindNoTrees        Kind = "no_trees"
	KindConfiguration  Kind = "configuration"
	KindInternal       Kind = "internal"
)

// Failure is an error reduced to what a user should see.
type Failure struct {
	Kind    Kind
	Message string
}

func (f Failure) Error() string {
	return f.Message
}

// Classify maps err to its failure kind and a user-facing message.
// Anything unrecognised is internal and gets a generic message.
func Classify(err error) Failure {
	var (
		nonInteger *address.NonIntegerStreetNumberError
		length     *address.AddressLengthError
		noMatch    *matcher.NoCloseMatchError
		noTree     *nearby.NoTreeFoundError
		missing    *streets.ConfigurationMissingError
	)

	switch {
	case errors.Is(err, ErrEmptyQuery):
		return Failure{Kind: KindInvalidAddress, Message: "enter a street address, e.g. \"1468 Valencia St\""}
	case errors.Is(err, ErrQueryTooLong):
		return Failure{Kind: KindInvalidAddress, Message: fmt.Sprintf("invalid address: use at most %d characters", MaxQueryLength)}
	case errors.As(err, &nonInteger):
		return Failure{Kind: KindInvalidAddress, Message: fmt.Sprintf("invalid address: %q is not a street number", nonInteger.Token)}
	case errors.As(err, &length) && length.TooLong():
		return Failure{Kind: KindInvalidAddress, Message: fmt.Sprintf("invalid address: use at most %d words", address.MaxTokens)}
	case errors.As(err, &length):
		return Failure{Kind: KindInvalidAddress, Message: "invalid address: give a street number, street name and street type"}
	case errors.As(err, &noMatch):
		return Failure{Kind: KindUnknownStreet, Message: fmt.Sprintf("street %q not found", noMatch.Input)}
	case errors.As(err, &noTree):
		return Failure{Kind: KindNoTrees, Message: fmt.Sprintf("no trees found at or near %s", noTree.Address)}
	case errors.As(err, &missing):
		return Failure{Kind: KindConfiguration, Message: "street reference data is not available"}
	default:
		return Failure{Kind: KindInternal, Message: "internal error"}
	}
}
