package military

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func TestRunCombatAppliesCasualtiesToBothSides(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()
	w.Countries["DAN"] = worldstate.NewCountryState()
	w.Diplomacy.Wars[1] = &worldstate.War{ID: 1, Attackers: []ids.Tag{"SWE"}, Defenders: []ids.Tag{"DAN"}}

	w.Armies[1] = &worldstate.Army{ID: 1, Owner: "SWE", Location: 1,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}}}
	w.Armies[2] = &worldstate.Army{ID: 2, Owner: "DAN", Location: 1,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}}}

	RunCombat(w)

	swe := w.Armies[1]
	dan := w.Armies[2]
	if !swe.Regiments[0].Strength.LessThan(fixedpoint.FromInt(1000)) {
		t.Fatalf("expected SWE regiment to take casualties, got %v", swe.Regiments[0].Strength)
	}
	if !dan.Regiments[0].Strength.LessThan(fixedpoint.FromInt(1000)) {
		t.Fatalf("expected DAN regiment to take casualties, got %v", dan.Regiments[0].Strength)
	}
	if swe.InBattle == nil || dan.InBattle == nil {
		t.Fatalf("expected both armies flagged in-battle")
	}
}

func TestRunCombatSkipsNonBelligerents(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()
	w.Countries["DAN"] = worldstate.NewCountryState()

	w.Armies[1] = &worldstate.Army{ID: 1, Owner: "SWE", Location: 1,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}}}
	w.Armies[2] = &worldstate.Army{ID: 2, Owner: "DAN", Location: 1,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}}}

	RunCombat(w)

	if w.Armies[1].Regiments[0].Strength != fixedpoint.FromInt(1000) {
		t.Fatalf("expected no casualties without a war, got %v", w.Armies[1].Regiments[0].Strength)
	}
}
