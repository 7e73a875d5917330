// Package app assembles the lookup pipeline from configuration. It is shared
// by the API server and the command line tool.
package app

import (
	"context"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/config"
	"sf-tree-identifier/internal/nearby"
	"sf-tree-identifier/internal/observability"
	"sf-tree-identifier/internal/repository"
	"sf-tree-identifier/internal/resolver"
	"sf-tree-identifier/internal/service"
	"sf-tree-identifier/internal/streets"

	"github.com/rs/zerolog/log"
)

// App holds the services built from one configuration.
type App struct {
	Trees     *service.TreeService
	Addresses *service.AddressService
	Store     repository.Store
}

// Option adjusts how an App is built.
type Option func(*options)

type options struct {
	metrics     *observability.Metrics
	treeOptions []service.TreeOption
	noNearby    bool
}

// WithMetrics records lookup and cache metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTreeOptions passes extra options to the tree service.
func WithTreeOptions(opts ...service.TreeOption) Option {
	return func(o *options) { o.treeOptions = append(o.treeOptions, opts...) }
}

// WithoutNearby disables neighbour probing regardless of configuration.
func WithoutNearby() Option {
	return func(o *options) { o.noNearby = true }
}

// NewResolver loads the street reference data and builds a resolver. A
// missing file is returned as *streets.ConfigurationMissingError.
func NewResolver(cfg config.Config) (*resolver.Resolver, error) {
	vocab, err := streets.LoadVocabulary(cfg.StreetNamesPath)
	if err != nil {
		return nil, err
	}
	abbr, err := streets.LoadAbbreviations(cfg.StreetTypesPath)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("street_names", vocab.Len()).
		Int("street_types", abbr.Len()).
		Msg("street reference data loaded")

	normalizer := address.NewNormalizer(abbr, address.WithCity(cfg.CityName))
	return resolver.New(normalizer, vocab, resolver.WithMinScore(cfg.MinMatchScore)), nil
}

// New loads reference data, opens the store and wires the services.
// Close releases the store.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return nil, err
	}

	var searchOpts []nearby.Option
	if !cfg.CheckNearby || o.noNearby {
		searchOpts = append(searchOpts, nearby.WithoutProbing())
	}
	catalog := repository.NewCachedCatalog(store, cfg.SpeciesCacheSize, o.metrics)

	treeOpts := o.treeOptions
	if o.metrics != nil {
		treeOpts = append(treeOpts, service.WithMetrics(o.metrics))
	}

	return &App{
		Trees:     service.NewTreeService(r, nearby.NewSearcher(store, searchOpts...), catalog, treeOpts...),
		Addresses: service.NewAddressService(r),
		Store:     store,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
