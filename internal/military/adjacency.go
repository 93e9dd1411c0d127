// Package military implements movement, combat, attrition, and force-limit
// calculation. See design doc Section 4.5.
package military

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// AdjacencyKind distinguishes the terrain relationship an edge represents.
type AdjacencyKind uint8

const (
	AdjacencyLand       AdjacencyKind = iota // land-land
	AdjacencySea                             // sea-sea
	AdjacencyCoastal                         // land-sea, traversable by embarked armies
)

// AdjEdge is one directed adjacency between two provinces.
type AdjEdge struct {
	To   ids.ProvinceID
	Kind AdjacencyKind
	Cost fixedpoint.Fixed // base days to cross, before terrain/leader modifiers
}

// Adjacency is the static province adjacency graph built at load time.
type Adjacency struct {
	Edges map[ids.ProvinceID][]AdjEdge
}

// NewAdjacency returns an empty adjacency graph.
func NewAdjacency() *Adjacency {
	return &Adjacency{Edges: make(map[ids.ProvinceID][]AdjEdge)}
}

// AddEdge registers a directed edge; callers add both directions for
// symmetric adjacency.
func (a *Adjacency) AddEdge(from ids.ProvinceID, e AdjEdge) {
	a.Edges[from] = append(a.Edges[from], e)
}

// IsAdjacent reports whether to is directly reachable from.
func (a *Adjacency) IsAdjacent(from, to ids.ProvinceID) bool {
	for _, e := range a.Edges[from] {
		if e.To == to {
			return true
		}
	}
	return false
}

// Cost returns the base movement cost from -> to, or BaseMoveCost if the
// edge isn't found (the movement tick assumes a validated path, per spec;
// this is a defensive fallback for paths seeded before the adjacency graph
// was available).
func (a *Adjacency) Cost(from, to ids.ProvinceID) fixedpoint.Fixed {
	for _, e := range a.Edges[from] {
		if e.To == to {
			return e.Cost
		}
	}
	return fixedpoint.FromInt(BaseMoveCost)
}

// ValidatePath reports whether each hop in path is a valid adjacency step of
// the given kind set (e.g. internal/engine's landPathKinds allows
// Land+Coastal).
func (a *Adjacency) ValidatePath(start ids.ProvinceID, path []ids.ProvinceID, allowed map[AdjacencyKind]bool) bool {
	cur := start
	for _, next := range path {
		found := false
		for _, e := range a.Edges[cur] {
			if e.To == next && allowed[e.Kind] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
		cur = next
	}
	return true
}
