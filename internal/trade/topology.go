// Package trade models the static trade-node network: a DAG whose nodes
// aggregate local production value and forward the remainder downstream in
// topological order. See design doc Section 4.4.
package trade

import (
	"fmt"
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// Edge is a directed steering edge to a downstream node with a static
// weight (the default share of forwarded value routed along this edge).
type Edge struct {
	Target ids.TradeNodeID
	Weight fixedpoint.Fixed
}

// Topology is the static network, built once at load time.
type Topology struct {
	Order    []ids.TradeNodeID            // topological order, sources first
	EndNodes map[ids.TradeNodeID]bool     // nodes with no outgoing edges
	Edges    map[ids.TradeNodeID][]Edge   // node -> downstream edges
}

// NewTopology builds a Topology from a node->downstream-edges map, computing
// the topological order and end-node set. Returns an error if the graph
// contains a cycle.
func NewTopology(edges map[ids.TradeNodeID][]Edge, allNodes []ids.TradeNodeID) (*Topology, error) {
	order, err := topoSort(allNodes, edges)
	if err != nil {
		return nil, err
	}
	ends := make(map[ids.TradeNodeID]bool)
	for _, n := range allNodes {
		if len(edges[n]) == 0 {
			ends[n] = true
		}
	}
	return &Topology{Order: order, EndNodes: ends, Edges: edges}, nil
}

// topoSort performs a deterministic Kahn's-algorithm topological sort: nodes
// are processed in ascending id order whenever more than one is ready, so
// the result is stable across runs given the same input graph.
func topoSort(nodes []ids.TradeNodeID, edges map[ids.TradeNodeID][]Edge) ([]ids.TradeNodeID, error) {
	indegree := make(map[ids.TradeNodeID]int, len(nodes))
	for _, n := range nodes {
		indegree[n] = 0
	}
	for _, es := range edges {
		for _, e := range es {
			indegree[e.Target]++
		}
	}

	ready := make([]ids.TradeNodeID, 0, len(nodes))
	for _, n := range nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sortNodeIDs(ready)

	order := make([]ids.TradeNodeID, 0, len(nodes))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		var newlyReady []ids.TradeNodeID
		for _, e := range edges[n] {
			indegree[e.Target]--
			if indegree[e.Target] == 0 {
				newlyReady = append(newlyReady, e.Target)
			}
		}
		sortNodeIDs(newlyReady)
		ready = append(ready, newlyReady...)
		sortNodeIDs(ready)
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("trade topology: cycle detected (%d of %d nodes ordered)", len(order), len(nodes))
	}
	return order, nil
}

func sortNodeIDs(s []ids.TradeNodeID) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

// ValidateTopologicalOrder reports whether order is a valid topological
// ordering of edges: every edge must go from an earlier position to a later
// one.
func ValidateTopologicalOrder(order []ids.TradeNodeID, edges map[ids.TradeNodeID][]Edge) bool {
	pos := make(map[ids.TradeNodeID]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for n, es := range edges {
		np, ok := pos[n]
		if !ok {
			return false
		}
		for _, e := range es {
			tp, ok := pos[e.Target]
			if !ok || tp <= np {
				return false
			}
		}
	}
	return true
}
