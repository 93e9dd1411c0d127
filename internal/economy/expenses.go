package economy

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// RegimentMaintenanceBase is the monthly upkeep per regiment before unit-type
// and land-maintenance modifiers.
const RegimentMaintenanceBase = 0.2

// ShipMaintenanceBase is the monthly upkeep charged once per fleet before
// modifiers. Fleets carry no list of ships, so the charge does not grow with
// the number of ships in a fleet.
const ShipMaintenanceBase = 0.2

// FortMaintenanceBase is the monthly upkeep per fort level before modifiers.
const FortMaintenanceBase = 0.5

// regimentMaintenanceBase, shipMaintenanceBase, fortMaintenanceBase are the
// Fixed forms of the above, computed once at init rather than per regiment
// per tick.
var (
	regimentMaintenanceBase = fixedpoint.FromFloat64(RegimentMaintenanceBase)
	shipMaintenanceBase     = fixedpoint.FromFloat64(ShipMaintenanceBase)
	fortMaintenanceBase     = fixedpoint.FromFloat64(FortMaintenanceBase)
)

// AdvisorSalaryCoefficient is the quadratic-in-skill advisor salary formula's
// leading coefficient (5 × skill²), grounded on original_source's mana.rs
// advisor-cost convention.
const AdvisorSalaryCoefficient = 5

// RunExpenses debits every country's treasury for army, navy, fort, and
// advisor upkeep, writing each component to its ledger field plus the total
// to income.Expenses.
func RunExpenses(w *worldstate.WorldState) {
	armyUpkeep := make(map[string]fixedpoint.Fixed)
	navyUpkeep := make(map[string]fixedpoint.Fixed)
	fortUpkeep := make(map[string]fixedpoint.Fixed)
	advisorUpkeep := make(map[string]fixedpoint.Fixed)

	for _, id := range w.SortedArmyIDs() {
		a := w.Armies[id]
		landMod := w.Modifiers.EffectiveMultiplicative(modifiers.StatLandMaintenance, modifiers.ScopeCountry, a.Owner)
		cost := fixedpoint.Zero
		for _, r := range a.Regiments {
			typeMod := fixedpoint.One.Add(r.Type.MaintenanceCostMod())
			cost = cost.Add(regimentMaintenanceBase.Mul(typeMod))
		}
		armyUpkeep[string(a.Owner)] = armyUpkeep[string(a.Owner)].Add(cost.Mul(landMod))
	}

	for _, id := range w.SortedFleetIDs() {
		f := w.Fleets[id]
		navyMod := w.Modifiers.EffectiveMultiplicative(modifiers.StatNavalMaintenance, modifiers.ScopeCountry, f.Owner)
		cost := shipMaintenanceBase
		navyUpkeep[string(f.Owner)] = navyUpkeep[string(f.Owner)].Add(cost.Mul(navyMod))
	}

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if !p.HasOwner() || p.FortLevel == 0 || p.IsMothballed {
			continue
		}
		fortMod := w.Modifiers.EffectiveMultiplicative(modifiers.StatFortMaintenance, modifiers.ScopeCountry, p.Owner)
		cost := fixedpoint.FromInt(int64(p.FortLevel)).Mul(fortMaintenanceBase).Mul(fortMod)
		fortUpkeep[string(p.Owner)] = fortUpkeep[string(p.Owner)].Add(cost)
	}

	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		salary := fixedpoint.Zero
		for _, adv := range c.Advisors {
			skill := fixedpoint.FromInt(int64(adv.Skill))
			salary = salary.Add(skill.Mul(skill).Mul(fixedpoint.FromInt(AdvisorSalaryCoefficient)))
		}
		advisorUpkeep[string(tag)] = salary
	}

	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		key := string(tag)
		army := armyUpkeep[key]
		navy := navyUpkeep[key]
		fort := fortUpkeep[key]
		advisors := advisorUpkeep[key]
		total := army.Add(navy).Add(fort).Add(advisors).Add(c.Income.StateMaintenance).Add(c.Income.CorruptionExpenses)

		c.Income.ArmyMaintenance = army
		c.Income.NavyMaintenance = navy
		c.Income.FortMaintenance = fort
		c.Income.AdvisorMaintenance = advisors
		c.Income.Expenses = total
		c.Treasury = c.Treasury.Sub(total)
	}
}
