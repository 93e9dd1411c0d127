package trade

import (
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// MerchantAction is what a merchant stationed in a node is doing.
type MerchantAction uint8

const (
	ActionCollect MerchantAction = iota
	ActionSteer
)

// Merchant is a country-owned agent stationed in a trade node.
type Merchant struct {
	Owner  ids.Tag
	Action MerchantAction
	// SteerTarget is only meaningful when Action == ActionSteer.
	SteerTarget ids.TradeNodeID
}

// NodeState is the per-tick mutable state of a single trade node.
type NodeState struct {
	LocalValue    fixedpoint.Fixed
	IncomingValue fixedpoint.Fixed
	TotalValue    fixedpoint.Fixed
	TotalPower    fixedpoint.Fixed
	CountryPower  map[ids.Tag]fixedpoint.Fixed
	Merchants     []Merchant
}

// NewNodeState returns a zeroed node state ready for a fresh tick.
func NewNodeState() *NodeState {
	return &NodeState{CountryPower: make(map[ids.Tag]fixedpoint.Fixed)}
}

// ResetValue zeroes the value fields for a fresh monthly pass; merchants and
// cached power are left untouched (power is recomputed in the power phase).
func (n *NodeState) ResetValue() {
	n.LocalValue = fixedpoint.Zero
	n.IncomingValue = fixedpoint.Zero
	n.TotalValue = fixedpoint.Zero
}

// ResetPower clears accumulated country power ahead of the power phase.
func (n *NodeState) ResetPower() {
	n.CountryPower = make(map[ids.Tag]fixedpoint.Fixed)
	n.TotalPower = fixedpoint.Zero
}

// SortedCountries returns the countries with nonzero power in this node,
// sorted lexicographically, for deterministic iteration.
func (n *NodeState) SortedCountries() []ids.Tag {
	tags := make([]ids.Tag, 0, len(n.CountryPower))
	for t := range n.CountryPower {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Network bundles the static topology with the live per-node state and the
// province -> node mapping, as carried on WorldState.
type Network struct {
	Topology   *Topology
	Nodes      map[ids.TradeNodeID]*NodeState
	ProvinceOf map[ids.ProvinceID]ids.TradeNodeID
}

// NewNetwork builds an empty, node-state-initialized network from a
// topology.
func NewNetwork(topo *Topology) *Network {
	nodes := make(map[ids.TradeNodeID]*NodeState, len(topo.Order))
	for _, n := range topo.Order {
		nodes[n] = NewNodeState()
	}
	return &Network{Topology: topo, Nodes: nodes, ProvinceOf: make(map[ids.ProvinceID]ids.TradeNodeID)}
}

// SortedNodeIDs returns every node id in the network, sorted ascending.
func (net *Network) SortedNodeIDs() []ids.TradeNodeID {
	out := make([]ids.TradeNodeID, 0, len(net.Nodes))
	for id := range net.Nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
