package military

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func TestComputeForceLimitsBaseOnly(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()

	fl := ComputeForceLimits(w, GoodsConfig{})

	swe := fl[ids.Tag("SWE")]
	if swe.Land != fixedpoint.FromInt(BaseLandForceLimit) {
		t.Fatalf("expected base land limit %d, got %v", BaseLandForceLimit, swe.Land)
	}
	if swe.Naval != fixedpoint.FromInt(BaseNavalForceLimit) {
		t.Fatalf("expected base naval limit %d, got %v", BaseNavalForceLimit, swe.Naval)
	}
}

func TestComputeForceLimitsProvinceDevelopmentAndGoods(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()

	p := worldstate.NewProvinceState()
	p.Owner = "SWE"
	p.Cores["SWE"] = true
	p.BaseTax = fixedpoint.FromInt(10)
	p.BaseProduction = fixedpoint.FromInt(10)
	p.BaseManpower = fixedpoint.FromInt(10) // development 30
	p.HasTradeGood = true
	p.TradeGood = ids.GoodID(1)
	w.Provinces[1] = p

	goods := GoodsConfig{LandBonusGoods: map[ids.GoodID]bool{1: true}}
	fl := ComputeForceLimits(w, goods)

	swe := fl[ids.Tag("SWE")]
	// base 6 + (30*0.1 + 0.5 land bonus) * (1 - 0) = 6 + 3.5 = 9.5
	wantLand := fixedpoint.FromInt(BaseLandForceLimit).Add(fixedpoint.FromFloat64(3.5))
	if swe.Land != wantLand {
		t.Fatalf("expected land limit %v, got %v", wantLand, swe.Land)
	}
	// naval gets no goods bonus: base 12 + 30*0.1 = 15
	wantNaval := fixedpoint.FromInt(BaseNavalForceLimit).Add(fixedpoint.FromInt(3))
	if swe.Naval != wantNaval {
		t.Fatalf("expected naval limit %v, got %v", wantNaval, swe.Naval)
	}
}

func TestComputeForceLimitsUncoredAutonomyDampens(t *testing.T) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()

	p := worldstate.NewProvinceState()
	p.Owner = "SWE" // no core, so EffectiveAutonomy floors to 0.75
	p.BaseTax = fixedpoint.FromInt(10)
	p.BaseProduction = fixedpoint.FromInt(10)
	p.BaseManpower = fixedpoint.FromInt(10)
	w.Provinces[1] = p

	fl := ComputeForceLimits(w, GoodsConfig{})

	swe := fl[ids.Tag("SWE")]
	// base 6 + (30*0.1) * (1 - 0.75) = 6 + 0.75 = 6.75
	want := fixedpoint.FromInt(BaseLandForceLimit).Add(fixedpoint.FromFloat64(0.75))
	if swe.Land != want {
		t.Fatalf("expected dampened land limit %v, got %v", want, swe.Land)
	}
}
