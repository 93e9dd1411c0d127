package diplomacy

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func TestDecayAggressiveExpansion(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["ATK"] = worldstate.NewCountryState()
	w.Countries["VIC"] = worldstate.NewCountryState()
	w.Countries["VIC"].AggressiveExpansion["ATK"] = fixedpoint.FromInt(100)

	decayAggressiveExpansion(w)

	want := fixedpoint.FromInt(100).Sub(fixedpoint.FromFloat64(AEDecayPerMonth))
	if got := w.Countries["VIC"].AggressiveExpansion["ATK"]; got != want {
		t.Fatalf("expected decayed AE %v, got %v", want, got)
	}
}

func TestDecayAggressiveExpansionRemovesZeroEntries(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["VIC"] = worldstate.NewCountryState()
	w.Countries["VIC"].AggressiveExpansion["ATK"] = fixedpoint.FromFloat64(0.1)

	decayAggressiveExpansion(w)

	if _, ok := w.Countries["VIC"].AggressiveExpansion["ATK"]; ok {
		t.Fatalf("expected AE entry removed once it decays to zero")
	}
}

func fourAngryVictims(w *worldstate.WorldState) {
	for _, tag := range []ids.Tag{"VIC1", "VIC2", "VIC3", "VIC4"} {
		w.Countries[tag] = worldstate.NewCountryState()
		w.Countries[tag].AggressiveExpansion["ATK"] = fixedpoint.FromInt(60)
	}
}

func TestCoalitionFormation(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["ATK"] = worldstate.NewCountryState()
	fourAngryVictims(w)

	checkCoalitionFormation(w)

	coalition, ok := w.Diplomacy.Coalitions["ATK"]
	if !ok {
		t.Fatalf("expected coalition to form against ATK")
	}
	if len(coalition.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(coalition.Members))
	}
}

func TestCoalitionRequiresMinimumMembers(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["ATK"] = worldstate.NewCountryState()
	for _, tag := range []ids.Tag{"VIC1", "VIC2", "VIC3"} {
		w.Countries[tag] = worldstate.NewCountryState()
		w.Countries[tag].AggressiveExpansion["ATK"] = fixedpoint.FromInt(60)
	}

	checkCoalitionFormation(w)

	if _, ok := w.Diplomacy.Coalitions["ATK"]; ok {
		t.Fatalf("expected no coalition with only 3 angry countries")
	}
}

func TestCoalitionDissolutionOnAEDrop(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["ATK"] = worldstate.NewCountryState()
	fourAngryVictims(w)

	checkCoalitionFormation(w)
	if _, ok := w.Diplomacy.Coalitions["ATK"]; !ok {
		t.Fatalf("expected coalition to form first")
	}

	w.Countries["VIC4"].AggressiveExpansion["ATK"] = fixedpoint.FromInt(40)
	updateExistingCoalitions(w)

	if _, ok := w.Diplomacy.Coalitions["ATK"]; ok {
		t.Fatalf("expected coalition dissolved once membership drops below minimum")
	}
}

func TestRunCoalitionTickFullCycle(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["ATK"] = worldstate.NewCountryState()
	fourAngryVictims(w)

	RunCoalitionTick(w)

	if _, ok := w.Diplomacy.Coalitions["ATK"]; !ok {
		t.Fatalf("expected coalition formed in a single tick")
	}
}
