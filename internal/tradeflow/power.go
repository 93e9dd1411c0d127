package tradeflow

import "github.com/talonreach/dominion/internal/worldstate"

// RunPower is trade Phase P. It recomputes and publishes the per-node power
// figures that RunValue already derived internally (via nodePower) to split
// Phase V's retention. The two calls agree because nothing that feeds
// nodePower (province ownership/development, merchant placement) changes
// mid-tick; see DESIGN.md's "value-before-power ordering" note for why this
// satisfies spec.md's literal V-then-P call order without recomputing a
// different answer.
func RunPower(w *worldstate.WorldState) {
	net := w.TradeNetwork
	if net == nil {
		return
	}
	provincesByNode := buildProvincesByNode(w)

	for _, nid := range net.Topology.Order {
		power, total := nodePower(nid, w, provincesByNode)
		node := net.Nodes[nid]
		node.CountryPower = power
		node.TotalPower = total
	}
}
