package economy

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/worldstate"
)

// PrestigeDecayPerYear is the fraction of the distance to zero that prestige
// closes every Jan 1, win or lose. Not named numerically anywhere in
// spec.md or original_source (no stability.rs/prestige.rs ships in the
// distillation's source); ported from the historically-documented EU4
// baseline of roughly 1% of the gap to zero decaying monthly, applied here as
// a single yearly step since spec.md only lists "stability/prestige drift"
// as a yearly phase item. See design doc's Open Question decision.
const PrestigeDecayPerYear = 0.12

// prestigeDecayPerYear is the Fixed form, computed once at init.
var prestigeDecayPerYear = fixedpoint.FromFloat64(PrestigeDecayPerYear)

// RunYearlyDrift decays every country's prestige a fraction of the way back
// toward zero. Stability has no natural drift in the source material and is
// left untouched; it only changes via explicit DevelopProvince-adjacent
// mechanics out of this package's scope.
func RunYearlyDrift(w *worldstate.WorldState) {
	decay := prestigeDecayPerYear
	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		if c.Prestige.IsZero() {
			continue
		}
		delta := c.Prestige.Mul(decay)
		c.Prestige = c.Prestige.Sub(delta)
		slog.Debug("prestige drift", "country", tag, "prestige", c.Prestige)
	}
}
