package models

import "strings"

// SpeciesKey identifies a row of the species catalog.
type SpeciesKey int64

// Species is a catalog entry. URLPath is the SelecTree tree-detail id; 0 means
// there is no detail page.
type Species struct {
	Key            SpeciesKey `json:"key"`
	ScientificName string     `json:"scientific_name"`
	CommonName     string     `json:"common_name"`
	URLPath        int        `json:"url_path"`
}

// qSpeciesSeparator separates the scientific and common names in the
// street tree list, e.g. "Prunus serrulata :: Flowering Cherry".
const qSpeciesSeparator = "::"

// SplitQSpecies splits a stored qSpecies value into its scientific and
// common names. The common name is empty when the value has no separator.
func SplitQSpecies(q string) (scientific, common string) {
	scientific, common, _ = strings.Cut(q, qSpeciesSeparator)
	return strings.TrimSpace(scientific), strings.TrimSpace(common)
}

// QSpecies joins the names back into the stored form.
func (s Species) QSpecies() string {
	if s.CommonName == "" {
		return s.ScientificName
	}
	return s.ScientificName + " " + qSpeciesSeparator + " " + s.CommonName
}

// TreeRecord is one row of the address index: a tree of the given species
// standing at StreetNumber StreetName.
type TreeRecord struct {
	StreetName   string
	StreetNumber string
	SpeciesKey   SpeciesKey
}
