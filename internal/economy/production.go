package economy

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// GoodsProductionRate is the fraction of base_production converted into
// sellable goods each month, before the autonomy discount.
const GoodsProductionRate = 0.2

// goodsProductionRate is the Fixed form, computed once at init rather than
// per province per tick.
var goodsProductionRate = fixedpoint.FromFloat64(GoodsProductionRate)

// ProvinceLocalValue returns a province's monthly trade value: the same
// figure is credited as production income to its owner and fed into its
// trade node's local_value during the trade-value phase (spec §4.3/§4.4 share
// one formula; see internal/tradeflow for the node-side consumer).
func ProvinceLocalValue(p *worldstate.ProvinceState, reg *modifiers.Registry, basePrice fixedpoint.Fixed) fixedpoint.Fixed {
	if !p.HasTradeGood || !p.HasOwner() {
		return fixedpoint.Zero
	}
	autonomyFactor := fixedpoint.One.Sub(p.EffectiveAutonomy())
	goodsProduced := p.BaseProduction.Mul(goodsProductionRate).Mul(autonomyFactor)
	effectivePrice := reg.EffectivePrice(p.TradeGood, basePrice)
	return goodsProduced.Mul(effectivePrice)
}

// RunProduction credits each owned, trade-good-bearing province's local value
// to its owner's production income and treasury. It does not touch the trade
// network; internal/tradeflow's value phase calls ProvinceLocalValue itself
// to seed node state from the same underlying figures.
func RunProduction(w *worldstate.WorldState) {
	totals := make(map[ids.Tag]fixedpoint.Fixed)

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if !p.HasOwner() || !p.HasTradeGood {
			continue
		}
		basePrice := w.BaseGoodsPrices[p.TradeGood]
		value := ProvinceLocalValue(p, w.Modifiers, basePrice)
		totals[p.Owner] = totals[p.Owner].Add(value)
	}

	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		total := totals[tag]
		c.Income.Production = total
		c.Treasury = c.Treasury.Add(total)
	}
}
