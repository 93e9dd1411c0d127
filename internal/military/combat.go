package military

import (
	"log/slog"
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// CasualtyRatePerPowerShare is the daily casualty fraction applied to a side
// scaled by the opponent's share of total combat power.
const CasualtyRatePerPowerShare = 0.01

// casualtyRatePerPowerShare is the Fixed form, computed once at init.
var casualtyRatePerPowerShare = fixedpoint.FromFloat64(CasualtyRatePerPowerShare)

// RunCombat resolves one day of combat for every pair of mutually-at-war
// armies sharing a province: both sides take casualties proportional to the
// opponent's power share, zero-strength regiments are pruned, and empty
// armies are deleted.
func RunCombat(w *worldstate.WorldState) {
	battles := groupArmiesByProvinceAndOwner(w)
	engaged := make(map[ids.ArmyID]bool)

	for _, loc := range sortedLocations(battles) {
		sides := battles[loc]
		owners := sortedOwners(sides)
		for i := 0; i < len(owners); i++ {
			for j := i + 1; j < len(owners); j++ {
				a, b := owners[i], owners[j]
				if !w.Diplomacy.AreAtWar(a, b) {
					continue
				}
				resolveBattle(w, a, sides[a], b, sides[b])
				for _, id := range sides[a] {
					engaged[id] = true
				}
				for _, id := range sides[b] {
					engaged[id] = true
				}
			}
		}
	}

	battleTag := uint64(1)
	for _, id := range w.SortedArmyIDs() {
		a := w.Armies[id]
		if engaged[id] {
			a.InBattle = &battleTag
		} else {
			a.InBattle = nil
		}
	}

	w.DeleteEmptyArmies()
}

func groupArmiesByProvinceAndOwner(w *worldstate.WorldState) map[ids.ProvinceID]map[ids.Tag][]ids.ArmyID {
	out := make(map[ids.ProvinceID]map[ids.Tag][]ids.ArmyID)
	for _, id := range w.SortedArmyIDs() {
		a := w.Armies[id]
		if a.EmbarkedOn != nil {
			continue
		}
		if out[a.Location] == nil {
			out[a.Location] = make(map[ids.Tag][]ids.ArmyID)
		}
		out[a.Location][a.Owner] = append(out[a.Location][a.Owner], id)
	}
	return out
}

func sortedLocations(m map[ids.ProvinceID]map[ids.Tag][]ids.ArmyID) []ids.ProvinceID {
	out := make([]ids.ProvinceID, 0, len(m))
	for loc := range m {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedOwners(m map[ids.Tag][]ids.ArmyID) []ids.Tag {
	out := make([]ids.Tag, 0, len(m))
	for tag := range m {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func resolveBattle(w *worldstate.WorldState, ownerA ids.Tag, armiesA []ids.ArmyID, ownerB ids.Tag, armiesB []ids.ArmyID) {
	powerA, powerB := sidePower(w, armiesA), sidePower(w, armiesB)
	total := powerA.Add(powerB)
	if !total.IsPositive() {
		return
	}

	rateA := casualtyRatePerPowerShare.Mul(powerB.Div(total))
	rateB := casualtyRatePerPowerShare.Mul(powerA.Div(total))

	applyCasualties(w, armiesA, rateA)
	applyCasualties(w, armiesB, rateB)

	slog.Info("combat resolved", "sideA", ownerA, "sideB", ownerB, "rateA", rateA, "rateB", rateB)
}

func sidePower(w *worldstate.WorldState, armyIDs []ids.ArmyID) fixedpoint.Fixed {
	total := fixedpoint.Zero
	for _, id := range armyIDs {
		if a := w.Armies[id]; a != nil {
			total = total.Add(a.CombatPower())
		}
	}
	return total
}

func applyCasualties(w *worldstate.WorldState, armyIDs []ids.ArmyID, rate fixedpoint.Fixed) {
	keep := fixedpoint.One.Sub(rate)
	for _, id := range armyIDs {
		a := w.Armies[id]
		if a == nil {
			continue
		}
		for i := range a.Regiments {
			a.Regiments[i].Strength = a.Regiments[i].Strength.Mul(keep)
		}
	}
}
