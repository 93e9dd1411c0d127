package worldstate

import (
	"testing"

	"github.com/talonreach/dominion/internal/fixedpoint"
)

func TestRegimentBasePower(t *testing.T) {
	cases := []struct {
		t    RegimentType
		want fixedpoint.Fixed
	}{
		{Infantry, fixedpoint.FromFloat64(1.0)},
		{Cavalry, fixedpoint.FromFloat64(1.5)},
		{Artillery, fixedpoint.FromFloat64(1.2)},
	}
	for _, c := range cases {
		if got := c.t.BasePower(); got != c.want {
			t.Fatalf("type %d: expected %v, got %v", c.t, c.want, got)
		}
	}
}

func TestArmyTotalStrength(t *testing.T) {
	a := &Army{Regiments: []Regiment{
		{Type: Infantry, Strength: fixedpoint.FromInt(800)},
		{Type: Cavalry, Strength: fixedpoint.FromInt(400)},
	}}
	if got := a.TotalStrength(); got != fixedpoint.FromInt(1200) {
		t.Fatalf("expected total strength 1200, got %v", got)
	}
}

func TestArmyCombatPower(t *testing.T) {
	a := &Army{Regiments: []Regiment{
		{Type: Infantry, Strength: fixedpoint.FromInt(1000)}, // 1.0 * 1000/1000 = 1.0
		{Type: Cavalry, Strength: fixedpoint.FromInt(1000)},  // 1.5 * 1000/1000 = 1.5
	}}
	want := fixedpoint.FromFloat64(2.5)
	if got := a.CombatPower(); got != want {
		t.Fatalf("expected combat power %v, got %v", want, got)
	}
}

func TestArmyPruneEmptyRegiments(t *testing.T) {
	a := &Army{Regiments: []Regiment{
		{Type: Infantry, Strength: fixedpoint.FromInt(500)},
		{Type: Cavalry, Strength: fixedpoint.Zero},
		{Type: Artillery, Strength: fixedpoint.FromInt(200)},
	}}
	a.PruneEmptyRegiments()
	if len(a.Regiments) != 2 {
		t.Fatalf("expected 2 surviving regiments, got %d", len(a.Regiments))
	}
	for _, r := range a.Regiments {
		if r.Strength.IsZero() {
			t.Fatalf("expected no zero-strength regiments to survive")
		}
	}
}
