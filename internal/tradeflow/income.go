package tradeflow

import (
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// MerchantCollectionBonus is the yearly-income multiplier bonus when a
// country's collection at a node is backed by a stationed Collect merchant.
const MerchantCollectionBonus = 0.1

// merchantCollectionBonus is the Fixed form, computed once at init.
var merchantCollectionBonus = fixedpoint.FromFloat64(MerchantCollectionBonus)

// RunIncome is trade Phase C: for every (country, node) collection point with
// positive power share and node value, credit monthly trade income to the
// country's treasury and ledger.
func RunIncome(w *worldstate.WorldState) {
	net := w.TradeNetwork
	if net == nil {
		return
	}

	for _, tag := range w.SortedCountryTags() {
		w.Countries[tag].Income.Trade = fixedpoint.Zero
	}

	for _, nid := range net.Topology.Order {
		node := net.Nodes[nid]
		if !node.TotalValue.IsPositive() || !node.TotalPower.IsPositive() {
			continue
		}
		collectors := collectorsAt(nid, w)
		for _, tag := range sortedCollectorTags(collectors) {
			power := node.CountryPower[tag]
			if !power.IsPositive() {
				continue
			}
			powerShare := power.Div(node.TotalPower)
			bonus := fixedpoint.Zero
			if collectors[tag] {
				bonus = merchantCollectionBonus
			}
			tradeEffMult := w.Modifiers.EffectiveMultiplicative(modifiers.StatTradeEfficiency, modifiers.ScopeCountry, tag)
			yearly := node.TotalValue.Mul(powerShare).Mul(fixedpoint.One.Add(bonus)).Mul(tradeEffMult)
			monthly := yearly.Div(fixedpoint.FromInt(12))

			c := w.Countries[tag]
			c.Income.Trade = c.Income.Trade.Add(monthly)
			c.Treasury = c.Treasury.Add(monthly)
		}
	}
}

func sortedCollectorTags(m map[ids.Tag]bool) []ids.Tag {
	out := make([]ids.Tag, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
