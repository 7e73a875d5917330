// Package format renders tree reports as plain text for the terminal.
package format

import (
	"fmt"
	"strings"

	"sf-tree-identifier/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SelecTreeURL is the tree detail page for a SelecTree id.
const SelecTreeURL = "https://selectree.calpoly.edu/tree-detail/%d"

// Messages returns one message per address followed by one per species.
//
//	Trees at 1466 19th St:
//	Flowering Cherry (Prunus Serrulata): 2
//	https://selectree.calpoly.edu/tree-detail/1234
func Messages(report *models.TreeReport) []string {
	title := cases.Title(language.English)

	var out []string
	for _, g := range report.Groups {
		noun := "Tree"
		if g.Total() > 1 {
			noun = "Trees"
		}
		out = append(out, fmt.Sprintf("%s at %s:", noun, title.String(g.Address)))
		for _, tc := range g.Trees {
			out = append(out, Tree(tc))
		}
	}
	return out
}

// Tree renders a species line, its count when above one, and its SelecTree
// link when the id is known.
func Tree(tc models.TreeCount) string {
	title := cases.Title(language.English)

	var b strings.Builder
	if tc.Species.CommonName != "" {
		fmt.Fprintf(&b, "%s (%s)", title.String(tc.Species.CommonName), title.String(tc.Species.ScientificName))
	} else {
		b.WriteString(title.String(tc.Species.ScientificName))
	}
	if tc.Count > 1 {
		fmt.Fprintf(&b, ": %d", tc.Count)
	}
	if tc.Species.URLPath != 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, SelecTreeURL, tc.Species.URLPath)
	}
	return b.String()
}

// Summary is a one-line description of the report.
func Summary(report *models.TreeReport) string {
	where := "at " + report.Resolved
	if report.Nearby {
		where = "near " + report.Resolved
	}
	noun := "trees"
	if report.TotalTrees == 1 {
		noun = "tree"
	}
	return fmt.Sprintf("%d %s found %s", report.TotalTrees, noun, where)
}
