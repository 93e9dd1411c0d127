package economy

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// RunTaxation credits each country with the taxation income of its owned
// provinces: base_tax × (1 − effective_autonomy) × (1 + country tax modifier).
// The per-country total replaces income.Taxation and is added to treasury.
func RunTaxation(w *worldstate.WorldState) {
	totals := make(map[ids.Tag]fixedpoint.Fixed, len(w.Countries))

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if !p.HasOwner() {
			continue
		}
		autonomyFactor := fixedpoint.One.Sub(p.EffectiveAutonomy())
		taxMod := w.Modifiers.EffectiveMultiplicative(modifiers.StatTax, modifiers.ScopeCountry, p.Owner)
		effectiveTax := p.BaseTax.Mul(autonomyFactor).Mul(taxMod)
		totals[p.Owner] = totals[p.Owner].Add(effectiveTax)
	}

	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		total := totals[tag]
		c.Income.Taxation = total
		c.Treasury = c.Treasury.Add(total)
	}
}
