// Package resolver turns raw user text into a validated, lookup-ready address.
package resolver

import (
	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/matcher"
)

// Resolver normalizes input and snaps its street name onto the vocabulary.
// It holds only read-only reference data and is safe for concurrent use.
type Resolver struct {
	normalizer *address.Normalizer
	vocabulary matcher.Vocabulary
	minScore   int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMinScore overrides matcher.DefaultMinScore.
func WithMinScore(score int) Option {
	return func(r *Resolver) {
		r.minScore = score
	}
}

func New(normalizer *address.Normalizer, vocabulary matcher.Vocabulary, opts ...Option) *Resolver {
	r := &Resolver{
		normalizer: normalizer,
		vocabulary: vocabulary,
		minScore:   matcher.DefaultMinScore,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveForQuery normalizes raw and matches its street name against the
// vocabulary. The returned address keeps the original street number.
//
// Errors are returned as produced: *address.AddressLengthError,
// *address.NonIntegerStreetNumberError or *matcher.NoCloseMatchError.
func (r *Resolver) ResolveForQuery(raw string) (address.Address, error) {
	addr, err := r.normalizer.Normalize(raw)
	if err != nil {
		return address.Address{}, err
	}

	street, err := matcher.MatchClosestStreet(addr.StreetName, r.vocabulary, r.minScore)
	if err != nil {
		return address.Address{}, err
	}
	return addr.WithStreetName(street), nil
}
