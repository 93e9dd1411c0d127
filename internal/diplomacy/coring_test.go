package diplomacy

import (
	"errors"
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/worldstate"
)

func newCoringWorld() (*worldstate.WorldState, *worldstate.ProvinceState) {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["FRA"] = worldstate.NewCountryState()
	p := worldstate.NewProvinceState()
	p.Owner = "FRA"
	p.BaseTax = fixedpoint.FromInt(5)
	p.BaseProduction = fixedpoint.FromInt(5)
	p.BaseManpower = fixedpoint.FromInt(5)
	w.Provinces[1] = p
	return w, p
}

func TestCoringCost(t *testing.T) {
	w, p := newCoringWorld()
	got := CoringCost(w, "FRA", p)
	if got != fixedpoint.FromInt(150) {
		t.Fatalf("expected cost 150 (15 dev * 10 ADM), got %v", got)
	}
}

func TestStartCoringSuccess(t *testing.T) {
	w, _ := newCoringWorld()
	w.Countries["FRA"].AdmMana = fixedpoint.FromInt(1000)

	if err := StartCoring(w, "FRA", 1); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	p := w.Provinces[1]
	if p.Coring == nil {
		t.Fatalf("expected coring progress to be set")
	}
	if p.Coring.RequiredMonths != BaseCoringMonths {
		t.Fatalf("expected required months %d, got %d", BaseCoringMonths, p.Coring.RequiredMonths)
	}
	if w.Countries["FRA"].AdmMana != fixedpoint.FromInt(850) {
		t.Fatalf("expected ADM debited to 850, got %v", w.Countries["FRA"].AdmMana)
	}
}

func TestStartCoringInsufficientMana(t *testing.T) {
	w, _ := newCoringWorld()
	w.Countries["FRA"].AdmMana = fixedpoint.FromInt(1)

	err := StartCoring(w, "FRA", 1)
	if !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("expected ErrInsufficientMana, got %v", err)
	}
}

func TestStartCoringAlreadyCored(t *testing.T) {
	w, p := newCoringWorld()
	p.Cores["FRA"] = true
	w.Countries["FRA"].AdmMana = fixedpoint.FromInt(1000)

	err := StartCoring(w, "FRA", 1)
	if !errors.Is(err, ErrAlreadyCored) {
		t.Fatalf("expected ErrAlreadyCored, got %v", err)
	}
}

func TestTickCoringCompletion(t *testing.T) {
	w, p := newCoringWorld()
	p.Coring = &worldstate.CoringProgress{Country: "FRA", StartDate: w.Date, ProgressMonths: 35, RequiredMonths: 36}

	TickCoring(w)

	if !p.Cores["FRA"] {
		t.Fatalf("expected FRA to gain a core")
	}
	if p.Coring != nil {
		t.Fatalf("expected coring progress cleared")
	}
}

func TestTickCoringCancelledOnOwnerChange(t *testing.T) {
	w, p := newCoringWorld()
	w.Countries["ENG"] = worldstate.NewCountryState()
	p.Coring = &worldstate.CoringProgress{Country: "FRA", StartDate: w.Date, ProgressMonths: 10, RequiredMonths: 36}
	p.Owner = "ENG"

	TickCoring(w)

	if p.Coring != nil {
		t.Fatalf("expected coring cancelled on owner change")
	}
	if p.Cores["FRA"] {
		t.Fatalf("expected no core granted after cancellation")
	}
}

func TestRecalculateOverextension(t *testing.T) {
	w, _ := newCoringWorld()
	w.Provinces[1].Cores["FRA"] = true // cored, excluded

	p2 := worldstate.NewProvinceState()
	p2.Owner = "FRA"
	p2.BaseTax = fixedpoint.FromInt(5)
	p2.BaseProduction = fixedpoint.FromInt(5)
	p2.BaseManpower = fixedpoint.FromInt(5)
	w.Provinces[2] = p2 // uncored, counted

	RecalculateOverextension(w)

	if w.Countries["FRA"].Overextension != fixedpoint.FromInt(15) {
		t.Fatalf("expected overextension 15, got %v", w.Countries["FRA"].Overextension)
	}
}
