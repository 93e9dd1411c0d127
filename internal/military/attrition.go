package military

import (
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// SupplyPerDevelopment is the regiment count a province can sustain per point
// of total development (k = 1 regiment/dev by default).
const SupplyPerDevelopment = 1.0

// BaseAttritionRate is the monthly loss percentage applied regardless of
// supply overflow.
const BaseAttritionRate = 0.01

// OverLimitMultiplier scales the overflow ratio into additional monthly loss.
const OverLimitMultiplier = 0.05

// HostileAttritionBonus is added when the province's controller is at war
// with the army's owner.
const HostileAttritionBonus = 0.01

// WinterAttritionBonus is added during December, January, February.
const WinterAttritionBonus = 0.02

// Fixed forms of the rate constants above, computed once at init rather than
// per province per tick.
var (
	supplyPerDevelopment  = fixedpoint.FromFloat64(SupplyPerDevelopment)
	baseAttritionRate     = fixedpoint.FromFloat64(BaseAttritionRate)
	overLimitMultiplier   = fixedpoint.FromFloat64(OverLimitMultiplier)
	hostileAttritionBonus = fixedpoint.FromFloat64(HostileAttritionBonus)
	winterAttritionBonus  = fixedpoint.FromFloat64(WinterAttritionBonus)
)

// RunAttrition applies monthly supply attrition to every non-embarked,
// non-in-battle army, scaled by how far the province's regiment count
// exceeds its development-derived supply limit, plus hostile-territory and
// winter penalties.
func RunAttrition(w *worldstate.WorldState) {
	regimentsByProvince := make(map[ids.ProvinceID][]ids.ArmyID)
	for _, id := range w.SortedArmyIDs() {
		a := w.Armies[id]
		if a.EmbarkedOn != nil || a.InBattle != nil {
			continue
		}
		regimentsByProvince[a.Location] = append(regimentsByProvince[a.Location], id)
	}

	winter := w.Date.Month == 12 || w.Date.Month == 1 || w.Date.Month == 2

	locs := make([]ids.ProvinceID, 0, len(regimentsByProvince))
	for loc := range regimentsByProvince {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })

	for _, loc := range locs {
		p := w.Provinces[loc]
		armyIDs := regimentsByProvince[loc]

		regimentCount := 0
		for _, id := range armyIDs {
			regimentCount += len(w.Armies[id].Regiments)
		}

		supplyLimit := p.Development().Mul(supplyPerDevelopment)
		overflowRatio := fixedpoint.Zero
		if supplyLimit.IsPositive() && fixedpoint.FromInt(int64(regimentCount)).GreaterThan(supplyLimit) {
			overflowRatio = fixedpoint.FromInt(int64(regimentCount)).Sub(supplyLimit).Div(supplyLimit)
		}

		rate := baseAttritionRate.Add(overflowRatio.Mul(overLimitMultiplier))
		if winter {
			rate = rate.Add(winterAttritionBonus)
		}

		controller := p.Controller
		if controller == "" {
			controller = p.Owner
		}

		for _, id := range armyIDs {
			a := w.Armies[id]
			hostile := controller != "" && w.Diplomacy.AreAtWar(controller, a.Owner)
			armyRate := rate
			if hostile {
				armyRate = armyRate.Add(hostileAttritionBonus)
			}
			keep := fixedpoint.One.Sub(armyRate)
			for i := range a.Regiments {
				a.Regiments[i].Strength = a.Regiments[i].Strength.Mul(keep)
			}
		}
	}

	w.DeleteEmptyArmies()
}
