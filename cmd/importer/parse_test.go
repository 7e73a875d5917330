package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/models"
	"sf-tree-identifier/internal/streets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *address.Normalizer {
	return address.NewNormalizer(streets.NewAbbreviations(map[string]string{
		"street": "st",
		"avenue": "ave",
	}))
}

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseTreeList(t *testing.T) {
	ds, stats, err := ParseTreeList(openFixture(t, "street_tree_list.csv"), testNormalizer(), ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Rows:       9,
		Kept:       4,
		NoAddress:  1,
		Site:       1,
		NonSpecies: 1,
		Stairway:   1,
		Invalid:    1,
	}, stats)
	assert.Equal(t, 5, stats.Skipped())

	assert.Equal(t, []models.Species{
		{Key: 1, ScientificName: "Prunus serrulata", CommonName: "Flowering Cherry"},
		{Key: 2, ScientificName: "Lophostemon confertus", CommonName: "Brisbane Box"},
		{Key: 3, ScientificName: "Arbutus 'Marina'", CommonName: "Hybrid Strawberry Tree"},
	}, ds.Species)

	assert.Equal(t, []models.TreeRecord{
		{StreetName: "valencia st", StreetNumber: "1468", SpeciesKey: 1},
		{StreetName: "19th st", StreetNumber: "100", SpeciesKey: 2},
		{StreetName: "valencia st", StreetNumber: "1468", SpeciesKey: 1},
		{StreetName: "capp st", StreetNumber: "272", SpeciesKey: 3},
	}, ds.Trees)

	assert.Equal(t, []string{"valencia st", "19th st", "capp st"}, ds.StreetNames())
}

func TestParseTreeList_AnySite(t *testing.T) {
	_, stats, err := ParseTreeList(openFixture(t, "street_tree_list.csv"), testNormalizer(), ParseOptions{AnySite: true})
	require.NoError(t, err)

	assert.Zero(t, stats.Site)
	assert.Equal(t, 5, stats.Kept)
}

func TestParseTreeList_BadHeader(t *testing.T) {
	_, _, err := ParseTreeList(strings.NewReader(""), testNormalizer(), ParseOptions{})
	assert.Error(t, err)
}

func TestParseTreeList_RaggedRow(t *testing.T) {
	in := "TreeID,qSpecies,qAddress,qSiteInfo\n1,Prunus serrulata :: Flowering Cherry\n"
	_, _, err := ParseTreeList(strings.NewReader(in), testNormalizer(), ParseOptions{})
	assert.Error(t, err)
}

func TestCleanAddress(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain", input: "1468 Valencia St", want: "1468 Valencia St", wantOK: true},
		{name: "suffix on number", input: "100X 19th St", want: "100 19th St", wantOK: true},
		{name: "revised in parentheses", input: "1468 VALENCIA ST (revised)", want: "1468 VALENCIA ST", wantOK: true},
		{name: "revised bare", input: "272 revised Capp St", want: "272 Capp St", wantOK: true},
		{name: "no number", input: "X Capp St", wantOK: false},
		{name: "single token", input: "1468", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanAddress(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpeciesURLs(t *testing.T) {
	urls, err := ParseSpeciesURLs(openFixture(t, "mapped_species.csv"))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"Prunus serrulata :: Flowering Cherry":  1234,
		"Lophostemon confertus :: Brisbane Box": 55,
	}, urls)
}

func TestAttachURLs(t *testing.T) {
	species := []models.Species{
		{Key: 1, ScientificName: "Prunus serrulata", CommonName: "Flowering Cherry"},
		{Key: 2, ScientificName: "Platanus x hispanica"},
	}

	unmapped := AttachURLs(species, map[string]int{"Prunus serrulata :: Flowering Cherry": 1234})

	assert.Equal(t, []string{"Platanus x hispanica"}, unmapped)
	assert.Equal(t, 1234, species[0].URLPath)
	assert.Zero(t, species[1].URLPath)
}
