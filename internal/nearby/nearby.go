// Package nearby looks up the species recorded at an address and, when there
// are none, at neighbouring street numbers on the same street.
//
// House numbers on one side of a street usually step by two, so a tree
// planted in front of 1468 may be recorded at 1466 or 1470. A search runs
// through four states:
//
//	Exact     -> Found      the address itself has trees
//	Exact     -> Probing    it has none; neighbours are tried
//	Probing   -> Found      at least one neighbour has trees
//	Probing   -> Exhausted  none do; the caller gets *NoTreeFoundError
package nearby

import (
	"context"
	"fmt"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultOffsets are applied to the original street number in order: the
// neighbour below, then the one two doors above.
var DefaultOffsets = []int{-2, 4}

// State is the position of a search in its state machine.
type State int

const (
	Exact State = iota
	Probing
	Found
	Exhausted
)

func (s State) String() string {
	switch s {
	case Exact:
		return "exact"
	case Probing:
		return "probing"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Index returns the species keys recorded at an address. An address without
// trees yields an empty slice and no error.
type Index interface {
	SpeciesKeys(ctx context.Context, streetName, streetNumber string) ([]models.SpeciesKey, error)
}

// NoTreeFoundError reports that neither the address nor its neighbours have
// any recorded trees.
type NoTreeFoundError struct {
	Address address.Address
}

func (e *NoTreeFoundError) Error() string {
	return fmt.Sprintf("no trees found at or near %s", e.Address)
}

// Hit is a non-empty lookup.
type Hit struct {
	Address address.Address
	Keys    []models.SpeciesKey
}

// Result is the terminal outcome of a search. Hits are in lookup order.
type Result struct {
	State State
	Hits  []Hit
	// Probed is true when the original address was empty and neighbours were tried.
	Probed bool
	// Probes counts neighbour lookups actually sent to the index.
	Probes int
}

// Keys returns the species keys of every hit, in order.
func (r Result) Keys() []models.SpeciesKey {
	var keys []models.SpeciesKey
	for _, h := range r.Hits {
		keys = append(keys, h.Keys...)
	}
	return keys
}

// Searcher runs nearby searches against an index.
type Searcher struct {
	index   Index
	offsets []int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithOffsets replaces DefaultOffsets.
func WithOffsets(offsets ...int) Option {
	return func(s *Searcher) {
		s.offsets = append([]int(nil), offsets...)
	}
}

// WithoutProbing restricts searches to the exact address.
func WithoutProbing() Option {
	return func(s *Searcher) {
		s.offsets = nil
	}
}

func NewSearcher(index Index, opts ...Option) *Searcher {
	s := &Searcher{
		index:   index,
		offsets: DefaultOffsets,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search looks up addr and, if it has no trees, each neighbour in offset
// order. Every non-empty neighbour is kept. Index errors are returned as soon
// as they occur.
func (s *Searcher) Search(ctx context.Context, addr address.Address) (Result, error) {
	keys, err := s.index.SpeciesKeys(ctx, addr.StreetName, addr.StreetNumber)
	if err != nil {
		return Result{State: Exact}, fmt.Errorf("nearby: lookup %s: %w", addr, err)
	}
	if len(keys) > 0 {
		return Result{State: Found, Hits: []Hit{{Address: addr, Keys: keys}}}, nil
	}

	res := Result{State: Probing}
	// A number too large for int has no neighbours worth probing.
	if number, err := addr.Number(); err == nil && len(s.offsets) > 0 {
		res.Probed = true
		log.Debug().Str("address", addr.String()).Ints("offsets", s.offsets).Msg("no trees at address, looking nearby")

		for _, offset := range s.offsets {
			n := number + offset
			if n <= 0 {
				continue
			}
			probe := addr.WithStreetNumber(n)
			keys, err := s.index.SpeciesKeys(ctx, probe.StreetName, probe.StreetNumber)
			res.Probes++
			if err != nil {
				return res, fmt.Errorf("nearby: lookup %s: %w", probe, err)
			}
			if len(keys) > 0 {
				res.Hits = append(res.Hits, Hit{Address: probe, Keys: keys})
			}
		}
	}

	if len(res.Hits) == 0 {
		res.State = Exhausted
		return res, &NoTreeFoundError{Address: addr}
	}
	res.State = Found
	return res, nil
}
