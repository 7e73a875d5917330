package repository

import (
	"context"
	"database/sql"
	"errors"

	"sf-tree-identifier/internal/models"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteRepository implements Store using modernc.org/sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens a SQLite database at dsn and configures WAL mode.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteRepository{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS species (
	species_key INTEGER PRIMARY KEY,
	q_species   TEXT NOT NULL,
	url_path    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tree_addresses (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	street_name   TEXT NOT NULL,
	street_number TEXT NOT NULL,
	species_key   INTEGER NOT NULL REFERENCES species(species_key)
);

CREATE INDEX IF NOT EXISTS idx_tree_addresses_street ON tree_addresses(street_name, street_number);
`

func (s *SQLiteRepository) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteRepository) Close() error {
	return s.db.Close()
}

func (s *SQLiteRepository) SpeciesKeys(ctx context.Context, streetName, streetNumber string) ([]models.SpeciesKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT species_key FROM tree_addresses WHERE street_name = ? AND street_number = ? ORDER BY id`,
		streetName, streetNumber,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query species keys")
	}
	defer rows.Close() //nolint:errcheck

	keys := []models.SpeciesKey{}
	for rows.Next() {
		var key int64
		if err := rows.Scan(&key); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan species key")
		}
		keys = append(keys, models.SpeciesKey(key))
	}
	return keys, eris.Wrap(rows.Err(), "sqlite: iterate species keys")
}

func (s *SQLiteRepository) Species(ctx context.Context, key models.SpeciesKey) (*models.Species, error) {
	var (
		qSpecies string
		urlPath  int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT q_species, url_path FROM species WHERE species_key = ?`, int64(key),
	).Scan(&qSpecies, &urlPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpeciesNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query species %d", key)
	}
	return newSpecies(key, qSpecies, urlPath), nil
}

func (s *SQLiteRepository) LoadSpecies(ctx context.Context, species []models.Species) (int64, error) {
	return s.insertAll(ctx, "species",
		`INSERT INTO species (species_key, q_species, url_path) VALUES (?, ?, ?)`,
		len(species), func(i int) []any {
			sp := species[i]
			return []any{int64(sp.Key), sp.QSpecies(), sp.URLPath}
		})
}

func (s *SQLiteRepository) LoadTrees(ctx context.Context, trees []models.TreeRecord) (int64, error) {
	return s.insertAll(ctx, "trees",
		`INSERT INTO tree_addresses (street_name, street_number, species_key) VALUES (?, ?, ?)`,
		len(trees), func(i int) []any {
			t := trees[i]
			return []any{t.StreetName, t.StreetNumber, int64(t.SpeciesKey)}
		})
}

func (s *SQLiteRepository) CountTrees(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tree_addresses`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count trees")
}

// insertAll runs one prepared insert per row inside a single transaction.
func (s *SQLiteRepository) insertAll(ctx context.Context, what, query string, n int, row func(int) []any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: begin load %s", what)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: prepare load %s", what)
	}
	defer stmt.Close() //nolint:errcheck

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert %s row %d", what, i)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrapf(err, "sqlite: commit load %s", what)
	}
	return int64(n), nil
}
