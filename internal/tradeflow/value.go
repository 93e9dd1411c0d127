package tradeflow

import (
	"github.com/talonreach/dominion/internal/economy"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/trade"
	"github.com/talonreach/dominion/internal/worldstate"
)

// SteeringBoostFraction is the per-merchant fractional weight boost a Steer
// merchant adds toward its target edge, before the per-edge cap.
const SteeringBoostFraction = 0.2

// MaxSteeringBoost caps the total steering boost on a single edge, expressed
// as a fraction of the node's total static edge weight.
const MaxSteeringBoost = 1.0

// Fixed forms of the constants above, computed once at init rather than per
// merchant per tick.
var (
	steeringBoostFraction = fixedpoint.FromFloat64(SteeringBoostFraction)
	maxSteeringBoost      = fixedpoint.FromFloat64(MaxSteeringBoost)
)

// RunValue is trade Phase V: resets node value, seeds local value from
// production, then walks the topology in order, splitting each node's total
// value into a retained share (via nodePower, read-only) and a forwarded
// share distributed to downstream neighbors by static weight plus capped
// steering boosts.
func RunValue(w *worldstate.WorldState) {
	net := w.TradeNetwork
	if net == nil {
		return
	}
	provincesByNode := buildProvincesByNode(w)

	for _, nid := range net.SortedNodeIDs() {
		net.Nodes[nid].ResetValue()
	}

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		nid, ok := net.ProvinceOf[pid]
		if !ok || !p.HasTradeGood {
			continue
		}
		basePrice := w.BaseGoodsPrices[p.TradeGood]
		value := economy.ProvinceLocalValue(p, w.Modifiers, basePrice)
		net.Nodes[nid].LocalValue = net.Nodes[nid].LocalValue.Add(value)
	}

	for _, nid := range net.Topology.Order {
		node := net.Nodes[nid]
		node.TotalValue = node.LocalValue.Add(node.IncomingValue)

		power, total := nodePower(nid, w, provincesByNode)
		retained := retainedFraction(nid, power, total, w)
		forwarded := node.TotalValue.Mul(fixedpoint.One.Sub(retained))
		distributeForwarded(net, nid, forwarded)
	}
}

// retainedFraction sums the power shares of every collector at the node,
// clamped to [0, 1]. It is the complement of what gets forwarded downstream.
func retainedFraction(nodeID ids.TradeNodeID, power map[ids.Tag]fixedpoint.Fixed, total fixedpoint.Fixed, w *worldstate.WorldState) fixedpoint.Fixed {
	if !total.IsPositive() {
		return fixedpoint.Zero
	}
	collectors := collectorsAt(nodeID, w)
	sum := fixedpoint.Zero
	for tag := range collectors {
		sum = sum.Add(power[tag].Div(total))
	}
	return sum.Clamp(fixedpoint.Zero, fixedpoint.One)
}

// distributeForwarded splits amount among nodeID's downstream edges by
// static weight, boosted by any Steer merchants stationed at the node
// (capped per edge, then renormalized so the total routed still equals
// amount). End nodes (no outgoing edges) have nowhere to forward to; the
// unclaimed remainder simply isn't collected by anyone downstream.
func distributeForwarded(net *trade.Network, nodeID ids.TradeNodeID, amount fixedpoint.Fixed) {
	edges := net.Topology.Edges[nodeID]
	if len(edges) == 0 {
		return
	}

	weights := make(map[ids.TradeNodeID]fixedpoint.Fixed, len(edges))
	staticTotal := fixedpoint.Zero
	for _, e := range edges {
		weights[e.Target] = e.Weight
		staticTotal = staticTotal.Add(e.Weight)
	}

	boost := make(map[ids.TradeNodeID]fixedpoint.Fixed)
	for _, m := range net.Nodes[nodeID].Merchants {
		if m.Action != trade.ActionSteer {
			continue
		}
		if _, ok := weights[m.SteerTarget]; !ok {
			continue
		}
		boost[m.SteerTarget] = boost[m.SteerTarget].Add(steeringBoostFraction)
	}

	maxBoost := maxSteeringBoost
	for _, e := range edges {
		b, ok := boost[e.Target]
		if !ok {
			continue
		}
		weights[e.Target] = weights[e.Target].Add(staticTotal.Mul(b.Min(maxBoost)))
	}

	boostedTotal := fixedpoint.Zero
	for _, e := range edges {
		boostedTotal = boostedTotal.Add(weights[e.Target])
	}
	if !boostedTotal.IsPositive() {
		return
	}

	for _, e := range edges {
		share := weights[e.Target].Div(boostedTotal)
		net.Nodes[e.Target].IncomingValue = net.Nodes[e.Target].IncomingValue.Add(amount.Mul(share))
	}
}
