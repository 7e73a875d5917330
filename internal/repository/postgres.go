package repository

import (
	"context"
	"errors"

	"sf-tree-identifier/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// DB is the subset of pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresRepository implements Store for PostgreSQL
type PostgresRepository struct {
	db      DB
	closeFn func()
}

// NewPostgresRepository creates a repository on an existing connection pool.
// The caller keeps ownership of db.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres connects a new pool to connString and verifies it with a ping.
func OpenPostgres(ctx context.Context, connString string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresRepository{db: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS species (
	species_key BIGINT PRIMARY KEY,
	q_species   TEXT NOT NULL,
	url_path    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tree_addresses (
	id            BIGSERIAL PRIMARY KEY,
	street_name   TEXT NOT NULL,
	street_number TEXT NOT NULL,
	species_key   BIGINT NOT NULL REFERENCES species(species_key)
);

CREATE INDEX IF NOT EXISTS tree_addresses_street_idx ON tree_addresses (street_name, street_number);
`

// Migrate creates the tables if they do not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// SpeciesKeys returns the species key of every tree recorded at the address,
// one per tree, in load order.
func (r *PostgresRepository) SpeciesKeys(ctx context.Context, streetName, streetNumber string) ([]models.SpeciesKey, error) {
	sql := `
		SELECT species_key
		FROM tree_addresses
		WHERE street_name = $1 AND street_number = $2
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql, streetName, streetNumber)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query species keys")
	}
	defer rows.Close()

	keys := []models.SpeciesKey{}
	for rows.Next() {
		var key int64
		if err := rows.Scan(&key); err != nil {
			return nil, eris.Wrap(err, "postgres: scan species key")
		}
		keys = append(keys, models.SpeciesKey(key))
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate species keys")
	}

	return keys, nil
}

// Species returns the catalog entry for key, or ErrSpeciesNotFound.
func (r *PostgresRepository) Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error) {
	sql := `
		SELECT q_species, url_path
		FROM species
		WHERE species_key = $1
	`

	var (
		qSpecies string
		urlPath  int
	)
	err := r.db.QueryRow(ctx, sql, int64(key)).Scan(&qSpecies, &urlPath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpeciesNotFound
		}
		return nil, eris.Wrapf(err, "postgres: query species %d", key)
	}

	return newSpecies(key, qSpecies, urlPath), nil
}

// LoadSpecies bulk inserts the catalog with COPY.
func (r *PostgresRepository) LoadSpecies(ctx context.Context, species []models.Species) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"species"},
		[]string{"species_key", "q_species", "url_path"},
		pgx.CopyFromSlice(len(species), func(i int) ([]any, error) {
			s := species[i]
			return []any{int64(s.Key), s.QSpecies(), s.URLPath}, nil
		}),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: copy species")
	}
	return n, nil
}

// LoadTrees bulk inserts the address index with COPY.
func (r *PostgresRepository) LoadTrees(ctx context.Context, trees []models.TreeRecord) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"tree_addresses"},
		[]string{"street_name", "street_number", "species_key"},
		pgx.CopyFromSlice(len(trees), func(i int) ([]any, error) {
			t := trees[i]
			return []any{t.StreetName, t.StreetNumber, int64(t.SpeciesKey)}, nil
		}),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: copy trees")
	}
	return n, nil
}

// CountTrees returns the number of rows in the address index.
func (r *PostgresRepository) CountTrees(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tree_addresses").Scan(&n); err != nil {
		return 0, eris.Wrap(err, "postgres: count trees")
	}
	return n, nil
}

// Close releases the pool if the repository opened it.
func (r *PostgresRepository) Close() error {
	if r.closeFn != nil {
		r.closeFn()
	}
	return nil
}

func newSpecies(key models.SpeciesKey, qSpecies string, urlPath int) *models.Species {
	scientific, common := models.SplitQSpecies(qSpecies)
	return &models.Species{
		Key:            key,
		ScientificName: scientific,
		CommonName:     common,
		URLPath:        urlPath,
	}
}
