// Package repository stores the street tree index and the species catalog.
//
// Two backends share one schema: PostgreSQL through pgx for the API
// deployment, and SQLite for a single-file database shipped with the CLI.
package repository

import (
	"context"
	"errors"
	"fmt"

	"sf-tree-identifier/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrSpeciesNotFound is returned by Species when the key has no catalog row.
var ErrSpeciesNotFound = errors.New("repository: species not found")

// Store is the full storage surface: lookups for queries plus the loaders
// used by the importer.
type Store interface {
	SpeciesKeys(ctx context.Context, streetName, streetNumber string) ([]models.SpeciesKey, error)
	Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error)
	Migrate(ctx context.Context) error
	LoadSpecies(ctx context.Context, species []models.Species) (int64, error)
	LoadTrees(ctx context.Context, trees []models.TreeRecord) (int64, error)
	CountTrees(ctx context.Context) (int64, error)
	Close() error
}

// Open connects to the backend named by driver.
func Open(ctx context.Context, driver, source string) (Store, error) {
	switch driver {
	case DriverPostgres:
		return OpenPostgres(ctx, source)
	case DriverSQLite:
		return NewSQLiteRepository(source)
	default:
		return nil, fmt.Errorf("repository: unknown driver %q", driver)
	}
}
