package models

import "time"

// TreeReport is the answer to a tree lookup.
type TreeReport struct {
	Query      string      `json:"query"`
	Resolved   string      `json:"resolved"`
	Nearby     bool        `json:"nearby"`
	Groups     []TreeGroup `json:"groups"`
	TotalTrees int         `json:"total_trees"`
	LookedUpAt time.Time   `json:"looked_up_at"`
}

// TreeGroup lists the species found at one address.
type TreeGroup struct {
	Address string      `json:"address"`
	Trees   []TreeCount `json:"trees"`
}

// TreeCount is a species and how many trees of it stand at an address.
type TreeCount struct {
	Species Species `json:"species"`
	Count   int     `json:"count"`
}

// Total returns the number of trees in the group.
func (g TreeGroup) Total() int {
	n := 0
	for _, t := range g.Trees {
		n += t.Count
	}
	return n
}
