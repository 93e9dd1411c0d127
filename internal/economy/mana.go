// Package economy implements the monthly income cycle: mana generation,
// taxation, production, maintenance expenses, and yearly tribute. See design
// doc Sections 4.3 and 4.8.
package economy

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/worldstate"
)

// BaseManaGain is the flat monthly monarch-power gain before ruler stat and
// advisor contributions.
const BaseManaGain = 3

// RunMana advances every country's three monarch-power pools by one month:
// base + ruler stat + matching advisor skill sum, capped at ManaCap.
func RunMana(w *worldstate.WorldState) {
	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]

		admGain := fixedpoint.FromInt(BaseManaGain + int64(c.RulerAdm) + int64(c.AdvisorSkillSum(worldstate.AdvisorAdministrative)))
		dipGain := fixedpoint.FromInt(BaseManaGain + int64(c.RulerDip) + int64(c.AdvisorSkillSum(worldstate.AdvisorDiplomatic)))
		milGain := fixedpoint.FromInt(BaseManaGain + int64(c.RulerMil) + int64(c.AdvisorSkillSum(worldstate.AdvisorMilitary)))

		c.AdmMana = c.AdmMana.Add(admGain).Min(c.ManaCap)
		c.DipMana = c.DipMana.Add(dipGain).Min(c.ManaCap)
		c.MilMana = c.MilMana.Add(milGain).Min(c.ManaCap)

		slog.Debug("mana tick", "country", tag, "adm", admGain, "dip", dipGain, "mil", milGain)
	}
}
