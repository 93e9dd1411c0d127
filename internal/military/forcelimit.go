package military

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// BaseLandForceLimit and BaseNavalForceLimit are the flat per-country limits
// before province contributions.
const (
	BaseLandForceLimit  = 6
	BaseNavalForceLimit = 12
)

// ProvinceForceLimitRate converts a province's development into force limit
// contribution (0.1 per point of development).
const ProvinceForceLimitRate = 0.1

// TradeGoodForceLimitBonus is the flat per-trade-good-province bonus to the
// relevant force limit track.
const TradeGoodForceLimitBonus = 0.5

// provinceForceLimitRate, tradeGoodForceLimitBonus are the Fixed forms of the
// above, computed once at init rather than per province per tick.
var (
	provinceForceLimitRate   = fixedpoint.FromFloat64(ProvinceForceLimitRate)
	tradeGoodForceLimitBonus = fixedpoint.FromFloat64(TradeGoodForceLimitBonus)
)

// GoodsConfig names which goods grant force-limit bonuses, since goods are
// identified by id rather than name inside the core (see DESIGN.md).
type GoodsConfig struct {
	LandBonusGoods  map[ids.GoodID]bool // e.g. grain
	NavalBonusGoods map[ids.GoodID]bool // e.g. naval_supplies
}

// ForceLimits holds the computed land/naval force limit for one country.
type ForceLimits struct {
	Land  fixedpoint.Fixed
	Naval fixedpoint.Fixed
}

// ComputeForceLimits returns the land/naval force limit for every country,
// keyed by tag: base + Σ over owned provinces of (development × 0.1 +
// trade-good bonus) × (1 − effective_autonomy), plus country-scope modifiers.
func ComputeForceLimits(w *worldstate.WorldState, goods GoodsConfig) map[ids.Tag]ForceLimits {
	out := make(map[ids.Tag]ForceLimits, len(w.Countries))
	for _, tag := range w.SortedCountryTags() {
		out[tag] = ForceLimits{
			Land:  fixedpoint.FromInt(BaseLandForceLimit),
			Naval: fixedpoint.FromInt(BaseNavalForceLimit),
		}
	}

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if !p.HasOwner() {
			continue
		}
		autonomyFactor := fixedpoint.One.Sub(p.EffectiveAutonomy())
		base := p.Development().Mul(provinceForceLimitRate)

		landBonus, navalBonus := fixedpoint.Zero, fixedpoint.Zero
		if p.HasTradeGood && goods.LandBonusGoods[p.TradeGood] {
			landBonus = tradeGoodForceLimitBonus
		}
		if p.HasTradeGood && goods.NavalBonusGoods[p.TradeGood] {
			navalBonus = tradeGoodForceLimitBonus
		}

		fl := out[p.Owner]
		fl.Land = fl.Land.Add(base.Add(landBonus).Mul(autonomyFactor))
		fl.Naval = fl.Naval.Add(base.Add(navalBonus).Mul(autonomyFactor))
		out[p.Owner] = fl
	}

	for _, tag := range w.SortedCountryTags() {
		fl := out[tag]
		fl.Land = fl.Land.Add(w.Modifiers.EffectiveAdditive(modifiers.StatForceLimitLand, modifiers.ScopeCountry, tag))
		fl.Naval = fl.Naval.Add(w.Modifiers.EffectiveAdditive(modifiers.StatForceLimitNaval, modifiers.ScopeCountry, tag))
		out[tag] = fl
	}

	return out
}
