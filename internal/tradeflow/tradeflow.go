// Package tradeflow implements the three-phase monthly trade pipeline: value,
// power, income. See design doc Section 4.4 and DESIGN.md's "value-before-
// power ordering" note for how the literal V→P→C call order is reconciled
// with Phase V's dependency on per-country power shares.
package tradeflow

import (
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/trade"
	"github.com/talonreach/dominion/internal/worldstate"
)

// DevPowerMultiplier converts a province's development into trade power.
const DevPowerMultiplier = 0.2

// MerchantPowerBonus is the flat trade power a stationed merchant adds.
const MerchantPowerBonus = 2

// NonHomeCollectionPenalty halves a collecting merchant's accumulated node
// power when the node is not that country's home node.
const NonHomeCollectionPenalty = 0.5

// Fixed forms of the constants above, computed once at init rather than per
// province/merchant per tick.
var (
	devPowerMultiplier       = fixedpoint.FromFloat64(DevPowerMultiplier)
	nonHomeCollectionPenalty = fixedpoint.FromFloat64(NonHomeCollectionPenalty)
)

func buildProvincesByNode(w *worldstate.WorldState) map[ids.TradeNodeID][]ids.ProvinceID {
	out := make(map[ids.TradeNodeID][]ids.ProvinceID)
	for _, pid := range w.SortedProvinceIDs() {
		nid, ok := w.TradeNetwork.ProvinceOf[pid]
		if !ok {
			continue
		}
		out[nid] = append(out[nid], pid)
	}
	return out
}

// nodePower computes the per-country and total trade power at a node: dev
// power plus center-of-trade bonus per owned province, plus merchant
// presence bonuses, with the non-home collection penalty applied to the
// full accumulated power of the offending country.
func nodePower(nodeID ids.TradeNodeID, w *worldstate.WorldState, provincesByNode map[ids.TradeNodeID][]ids.ProvinceID) (map[ids.Tag]fixedpoint.Fixed, fixedpoint.Fixed) {
	power := make(map[ids.Tag]fixedpoint.Fixed)
	for _, pid := range provincesByNode[nodeID] {
		p := w.Provinces[pid]
		if !p.HasOwner() {
			continue
		}
		devPower := p.Development().Mul(devPowerMultiplier).Add(p.CenterOfTradeBonus())
		power[p.Owner] = power[p.Owner].Add(devPower)
	}

	node := w.TradeNetwork.Nodes[nodeID]
	for _, m := range node.Merchants {
		power[m.Owner] = power[m.Owner].Add(fixedpoint.FromInt(MerchantPowerBonus))
		if m.Action == trade.ActionCollect && !isHomeNode(w, m.Owner, nodeID) {
			power[m.Owner] = power[m.Owner].Mul(nonHomeCollectionPenalty)
		}
	}

	total := fixedpoint.Zero
	for _, tag := range sortedPowerTags(power) {
		total = total.Add(power[tag])
	}
	return power, total
}

func isHomeNode(w *worldstate.WorldState, tag ids.Tag, nodeID ids.TradeNodeID) bool {
	c, ok := w.Countries[tag]
	return ok && c.Trade.HasHomeNode && c.Trade.HomeNode == nodeID
}

func sortedPowerTags(m map[ids.Tag]fixedpoint.Fixed) []ids.Tag {
	out := make([]ids.Tag, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// collectorsAt returns the set of countries that collect (rather than
// forward) value at this node: countries whose home node is nodeID, and
// countries with a Collect merchant stationed here.
func collectorsAt(nodeID ids.TradeNodeID, w *worldstate.WorldState) map[ids.Tag]bool {
	out := make(map[ids.Tag]bool)
	for _, tag := range w.SortedCountryTags() {
		if isHomeNode(w, tag, nodeID) {
			out[tag] = false
		}
	}
	node := w.TradeNetwork.Nodes[nodeID]
	for _, m := range node.Merchants {
		if m.Action == trade.ActionCollect {
			out[m.Owner] = true
		}
	}
	return out
}
