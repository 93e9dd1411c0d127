package military

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func TestRunAttritionOnlyBaseLossUnderSupplyLimit(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	p := worldstate.NewProvinceState()
	p.Owner = "SWE"
	p.BaseTax = fixedpoint.FromInt(10)
	p.BaseProduction = fixedpoint.FromInt(10)
	p.BaseManpower = fixedpoint.FromInt(10)
	w.Provinces[1] = p
	w.Countries["SWE"] = worldstate.NewCountryState()

	w.Armies[1] = &worldstate.Army{
		ID: 1, Owner: "SWE", Location: 1,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}},
	}

	RunAttrition(w)

	got := w.Armies[1].Regiments[0].Strength
	want := fixedpoint.FromInt(1000).Mul(fixedpoint.One.Sub(fixedpoint.FromFloat64(BaseAttritionRate)))
	if got != want {
		t.Fatalf("expected base attrition only, want %v got %v", want, got)
	}
}

func TestRunAttritionOverflowIncreasesLoss(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	p := worldstate.NewProvinceState()
	p.Owner = "SWE"
	// Development() == 0 so supplyLimit is 0 and overflowRatio stays zero
	// (guarded); give it a tiny positive development instead.
	p.BaseTax = fixedpoint.FromFloat64(0.1)
	p.BaseProduction = fixedpoint.FromFloat64(0.1)
	p.BaseManpower = fixedpoint.FromFloat64(0.1)
	w.Provinces[1] = p
	w.Countries["SWE"] = worldstate.NewCountryState()

	w.Armies[1] = &worldstate.Army{
		ID: 1, Owner: "SWE", Location: 1,
		Regiments: []worldstate.Regiment{
			{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)},
			{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)},
		},
	}

	RunAttrition(w)

	noOverflow := fixedpoint.FromInt(1000).Mul(fixedpoint.One.Sub(fixedpoint.FromFloat64(BaseAttritionRate)))
	got := w.Armies[1].Regiments[0].Strength
	if !got.LessThan(noOverflow) {
		t.Fatalf("expected overflow attrition to exceed base rate, got %v want less than %v", got, noOverflow)
	}
}

func TestRunAttritionSkipsEmbarkedAndInBattle(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()

	fid := ids.FleetID(1)
	w.Fleets[fid] = &worldstate.Fleet{ID: fid, Owner: "SWE", Location: 1}
	w.Armies[1] = &worldstate.Army{
		ID: 1, Owner: "SWE", Location: 1, EmbarkedOn: &fid,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}},
	}

	battleTag := uint64(1)
	w.Armies[2] = &worldstate.Army{
		ID: 2, Owner: "SWE", Location: 1, InBattle: &battleTag,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}},
	}

	RunAttrition(w)

	if w.Armies[1].Regiments[0].Strength != fixedpoint.FromInt(1000) {
		t.Fatalf("expected embarked army untouched, got %v", w.Armies[1].Regiments[0].Strength)
	}
	if w.Armies[2].Regiments[0].Strength != fixedpoint.FromInt(1000) {
		t.Fatalf("expected in-battle army untouched, got %v", w.Armies[2].Regiments[0].Strength)
	}
}
