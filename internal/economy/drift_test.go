package economy

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/worldstate"
)

func TestRunYearlyDriftDecaysTowardZero(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()
	w.Countries["SWE"].Prestige = fixedpoint.FromInt(100)

	RunYearlyDrift(w)

	got := w.Countries["SWE"].Prestige
	if !got.LessThan(fixedpoint.FromInt(100)) {
		t.Fatalf("expected prestige to decay below 100, got %v", got)
	}
	if got.LessThan(fixedpoint.FromInt(80)) {
		t.Fatalf("expected a partial decay, not a collapse, got %v", got)
	}
}

func TestRunYearlyDriftHandlesNegativePrestige(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()
	w.Countries["SWE"].Prestige = fixedpoint.FromInt(-50)

	RunYearlyDrift(w)

	got := w.Countries["SWE"].Prestige
	if !got.GreaterThan(fixedpoint.FromInt(-50)) {
		t.Fatalf("expected negative prestige to drift up toward zero, got %v", got)
	}
}

func TestRunYearlyDriftSkipsZeroPrestige(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()

	RunYearlyDrift(w)

	if !w.Countries["SWE"].Prestige.IsZero() {
		t.Fatalf("expected prestige to remain zero")
	}
}
