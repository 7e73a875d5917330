package main

import (
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strings"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/models"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// TreeRow is the subset of the SF Street Tree List the importer reads.
type TreeRow struct {
	TreeID    string `csv:"TreeID"`
	QSpecies  string `csv:"qSpecies"`
	QAddress  string `csv:"qAddress"`
	QSiteInfo string `csv:"qSiteInfo"`
}

// SpeciesRow maps a qSpecies value to its SelecTree id.
type SpeciesRow struct {
	QSpecies string `csv:"qSpecies"`
	URLPath  int    `csv:"urlPath,omitempty"`
}

// Trees planted anywhere else (private lots, stairways, potential sites)
// are not visible from the street and are left out of the index.
var acceptableSiteInfo = map[string]bool{
	"Front Yard :":                      true,
	"Front Yard : Cutout":               true,
	"Front Yard : Pot":                  true,
	"Front Yard : Yard":                 true,
	"Hanging basket : Cutout":           true,
	"Hanging basket : Yard":             true,
	"Median :":                          true,
	"Median : Cutout":                   true,
	"Median : Hanging Pot":              true,
	"Median : Yard":                     true,
	"Sidewalk: Curb side :":             true,
	"Sidewalk: Curb side : Cutout":      true,
	"Sidewalk: Curb side : Hanging Pot": true,
	"Sidewalk: Curb side : Pot":         true,
	"Sidewalk: Curb side : Yard":        true,
	"Sidewalk: Property side :":         true,
	"Sidewalk: Property side : Cutout":  true,
	"Sidewalk: Property side : Pot":     true,
	"Sidewalk: Property side : Yard":    true,
}

var nonSpecies = map[string]bool{
	"::":                               true,
	":: To Be Determine":               true,
	":: Tree":                          true,
	"Tree(s) ::":                       true,
	"Potential Site :: Potential Site": true,
	"Private shrub :: Private Shrub":   true,
	"Shrub :: Shrub":                   true,
}

var (
	revisedPattern      = regexp.MustCompile(`(?i)\(?revised\)?`)
	streetNumberPattern = regexp.MustCompile(`^[0-9]+`)
)

// Normalizer canonicalizes a cleaned "number name type" address.
type Normalizer interface {
	Normalize(raw string) (address.Address, error)
}

// ParseOptions controls which rows of the tree list are kept.
type ParseOptions struct {
	AnySite bool
}

// Stats counts what happened to the rows of the tree list.
type Stats struct {
	Rows       int
	Kept       int
	NoAddress  int
	Site       int
	NonSpecies int
	Stairway   int
	Invalid    int
}

// Skipped is the number of rows left out of the index.
func (s Stats) Skipped() int {
	return s.Rows - s.Kept
}

// Dataset is the parsed tree list ready to load.
type Dataset struct {
	Species []models.Species
	Trees   []models.TreeRecord
}

// StreetNames returns the distinct street names of the trees in first-seen
// order. This is the vocabulary queries are matched against.
func (d *Dataset) StreetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range d.Trees {
		if seen[t.StreetName] {
			continue
		}
		seen[t.StreetName] = true
		names = append(names, t.StreetName)
	}
	return names
}

// ParseTreeList reads the tree list from r, drops rows that are not street
// trees, normalizes every address and assigns species keys in order of
// first appearance starting at 1.
func ParseTreeList(r io.Reader, n Normalizer, opts ParseOptions) (*Dataset, Stats, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, Stats{}, eris.Wrap(err, "parse: failed to read tree list header")
	}

	var (
		stats Stats
		ds    Dataset
		keys  = map[string]models.SpeciesKey{}
	)
	for {
		var row TreeRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stats, eris.Wrapf(err, "parse: failed to decode tree list line %d", stats.Rows+2)
		}
		stats.Rows++

		rec, ok := cleanRow(row, n, opts, &stats)
		if !ok {
			continue
		}

		q := canonicalQSpecies(row.QSpecies)
		key, seen := keys[q]
		if !seen {
			key = models.SpeciesKey(len(keys) + 1)
			keys[q] = key
			scientific, common := models.SplitQSpecies(q)
			ds.Species = append(ds.Species, models.Species{Key: key, ScientificName: scientific, CommonName: common})
		}
		rec.SpeciesKey = key
		ds.Trees = append(ds.Trees, rec)
		stats.Kept++
	}
	return &ds, stats, nil
}

func cleanRow(row TreeRow, n Normalizer, opts ParseOptions, stats *Stats) (models.TreeRecord, bool) {
	addr := strings.TrimSpace(row.QAddress)
	switch {
	case addr == "":
		stats.NoAddress++
		return models.TreeRecord{}, false
	case !opts.AnySite && !acceptableSiteInfo[strings.TrimSpace(row.QSiteInfo)]:
		stats.Site++
		return models.TreeRecord{}, false
	case nonSpecies[strings.TrimSpace(row.QSpecies)]:
		stats.NonSpecies++
		return models.TreeRecord{}, false
	case strings.Contains(strings.ToUpper(addr), "STAIRWAY"):
		stats.Stairway++
		return models.TreeRecord{}, false
	}

	cleaned, ok := CleanAddress(addr)
	if !ok {
		stats.Invalid++
		return models.TreeRecord{}, false
	}
	a, err := n.Normalize(cleaned)
	if err != nil {
		stats.Invalid++
		return models.TreeRecord{}, false
	}
	return models.TreeRecord{StreetName: a.StreetName, StreetNumber: a.StreetNumber}, true
}

// CleanAddress drops "(revised)" markers and keeps only the leading digits
// of the street number, so "100X Valencia St (revised)" becomes
// "100 Valencia St".
func CleanAddress(raw string) (string, bool) {
	s := strings.Join(strings.Fields(revisedPattern.ReplaceAllString(raw, "")), " ")
	number, name, ok := strings.Cut(s, " ")
	if !ok {
		return "", false
	}
	digits := streetNumberPattern.FindString(number)
	if digits == "" {
		return "", false
	}
	return digits + " " + name, true
}

// canonicalQSpecies rewrites q with single spaces around the separator so the
// tree list and the species list agree on keys.
func canonicalQSpecies(q string) string {
	scientific, common := models.SplitQSpecies(q)
	return models.Species{ScientificName: scientific, CommonName: common}.QSpecies()
}

// ParseSpeciesURLs reads a qSpecies,urlPath mapping.
func ParseSpeciesURLs(r io.Reader) (map[string]int, error) {
	var rows []SpeciesRow
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "parse: failed to read species list")
	}
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrap(err, "parse: failed to decode species list")
	}

	urls := make(map[string]int, len(rows))
	for _, row := range rows {
		urls[canonicalQSpecies(row.QSpecies)] = row.URLPath
	}
	return urls, nil
}

// AttachURLs sets each species' SelecTree id from urls and returns the
// qSpecies values that have no mapping.
func AttachURLs(species []models.Species, urls map[string]int) []string {
	var unmapped []string
	for i := range species {
		q := species[i].QSpecies()
		path, ok := urls[q]
		if !ok {
			unmapped = append(unmapped, q)
			continue
		}
		species[i].URLPath = path
	}
	return unmapped
}
