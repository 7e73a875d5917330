package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitQSpecies(t *testing.T) {
	tests := []struct {
		in         string
		scientific string
		common     string
	}{
		{in: "Prunus serrulata :: Flowering Cherry", scientific: "Prunus serrulata", common: "Flowering Cherry"},
		{in: "Tree(s) ::", scientific: "Tree(s)", common: ""},
		{in: "Platanus x hispanica", scientific: "Platanus x hispanica", common: ""},
		{in: "  Arbutus 'Marina'::Hybrid Strawberry Tree ", scientific: "Arbutus 'Marina'", common: "Hybrid Strawberry Tree"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			scientific, common := SplitQSpecies(tt.in)
			assert.Equal(t, tt.scientific, scientific)
			assert.Equal(t, tt.common, common)
		})
	}
}

func TestSpecies_QSpecies(t *testing.T) {
	assert.Equal(t, "Prunus serrulata :: Flowering Cherry",
		Species{ScientificName: "Prunus serrulata", CommonName: "Flowering Cherry"}.QSpecies())
	assert.Equal(t, "Platanus x hispanica", Species{ScientificName: "Platanus x hispanica"}.QSpecies())
}

func TestTreeGroup_Total(t *testing.T) {
	g := TreeGroup{Trees: []TreeCount{{Count: 2}, {Count: 1}}}
	assert.Equal(t, 3, g.Total())
	assert.Equal(t, 0, TreeGroup{}.Total())
}
