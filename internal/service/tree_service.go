package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/models"
	"sf-tree-identifier/internal/nearby"
	"sf-tree-identifier/internal/observability"
	"sf-tree-identifier/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// AddressResolver turns raw text into a canonical address.
type AddressResolver interface {
	ResolveForQuery(raw string) (address.Address, error)
}

// TreeSearcher finds species keys at or near an address.
type TreeSearcher interface {
	Search(ctx context.Context, addr address.Address) (nearby.Result, error)
}

// SpeciesCatalog looks up species details by key.
type SpeciesCatalog interface {
	Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error)
}

// TreeService answers "which trees stand at this address".
type TreeService struct {
	resolver AddressResolver
	searcher TreeSearcher
	catalog  SpeciesCatalog
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

// TreeOption configures a TreeService.
type TreeOption func(*TreeService)

// WithClock sets the clock used for report timestamps and durations.
func WithClock(c clockwork.Clock) TreeOption {
	return func(s *TreeService) { s.clock = c }
}

// WithMetrics enables lookup metrics.
func WithMetrics(m *observability.Metrics) TreeOption {
	return func(s *TreeService) { s.metrics = m }
}

// NewTreeService creates a new tree service
func NewTreeService(resolver AddressResolver, searcher TreeSearcher, catalog SpeciesCatalog, opts ...TreeOption) *TreeService {
	s := &TreeService{
		resolver: resolver,
		searcher: searcher,
		catalog:  catalog,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindTrees resolves raw to an address and reports the species recorded at
// it, or at its neighbours when it has none.
func (s *TreeService) FindTrees(ctx context.Context, raw string) (report *models.TreeReport, err error) {
	start := s.clock.Now()
	defer func() { s.observe(start, err) }()

	raw, err = cleanQuery(raw)
	if err != nil {
		return nil, err
	}

	addr, err := s.resolver.ResolveForQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve %q: %w", raw, err)
	}

	res, err := s.searcher.Search(ctx, addr)
	s.observeProbes(res)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search trees: %w", err)
	}

	groups, err := s.group(ctx, res.Hits)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		// Every key pointed at a missing species.
		return nil, fmt.Errorf("service: no catalogued species: %w", &nearby.NoTreeFoundError{Address: addr})
	}

	report = &models.TreeReport{
		Query:      raw,
		Resolved:   addr.String(),
		Nearby:     res.Probed,
		Groups:     groups,
		LookedUpAt: s.clock.Now().UTC(),
	}
	for _, g := range groups {
		report.TotalTrees += g.Total()
	}

	log.Debug().
		Str("query", raw).
		Str("resolved", report.Resolved).
		Bool("nearby", report.Nearby).
		Int("keys", len(res.Keys())).
		Int("trees", report.TotalTrees).
		Msg("trees found")

	return report, nil
}

// group counts the trees of each species per hit address. Groups keep hit
// order; trees within a group are sorted by qSpecies, then URL path.
func (s *TreeService) group(ctx context.Context, hits []nearby.Hit) ([]models.TreeGroup, error) {
	var groups []models.TreeGroup
	for _, hit := range hits {
		counts := make(map[models.SpeciesKey]int, len(hit.Keys))
		var order []models.SpeciesKey
		for _, key := range hit.Keys {
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}

		var trees []models.TreeCount
		for _, key := range order {
			species, err := s.catalog.Species(ctx, key)
			if errors.Is(err, repository.ErrSpeciesNotFound) {
				log.Warn().Int64("species_key", int64(key)).Str("address", hit.Address.String()).Msg("species missing from catalog, skipping")
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("service: failed to look up species %d: %w", key, err)
			}
			trees = append(trees, models.TreeCount{Species: *species, Count: counts[key]})
		}
		if len(trees) == 0 {
			continue
		}

		slices.SortStableFunc(trees, func(a, b models.TreeCount) int {
			if c := cmp.Compare(a.Species.QSpecies(), b.Species.QSpecies()); c != 0 {
				return c
			}
			return cmp.Compare(a.Species.URLPath, b.Species.URLPath)
		})
		groups = append(groups, models.TreeGroup{Address: hit.Address.String(), Trees: trees})
	}
	return groups, nil
}

func (s *TreeService) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "found"
	if err != nil {
		outcome = string(Classify(err).Kind)
	}
	s.metrics.Lookups.WithLabelValues(outcome).Inc()
	s.metrics.LookupDuration.Observe(s.clock.Since(start).Seconds())
}

func (s *TreeService) observeProbes(res nearby.Result) {
	if s.metrics == nil || !res.Probed {
		return
	}
	hits := len(res.Hits)
	s.metrics.NearbyProbes.WithLabelValues("hit").Add(float64(hits))
	s.metrics.NearbyProbes.WithLabelValues("empty").Add(float64(res.Probes - hits))
}
