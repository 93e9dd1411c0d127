package military

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func newBesiegedWorld(fortLevel int) *worldstate.WorldState {
	w := worldstate.New(calendar.GameStart, 1)
	w.Diplomacy.Wars[1] = &worldstate.War{ID: 1, Attackers: []ids.Tag{"SWE"}, Defenders: []ids.Tag{"DAN"}}

	p := worldstate.NewProvinceState()
	p.Owner = "DAN"
	p.FortLevel = fortLevel
	w.Provinces[10] = p

	w.Armies[1] = &worldstate.Army{
		ID: 1, Owner: "SWE", Location: 10,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(1000)}},
	}
	return w
}

func TestRunSiegeAccumulatesProgress(t *testing.T) {
	w := newBesiegedWorld(0)

	RunSiege(w)

	p := w.Provinces[10]
	if p.Siege == nil {
		t.Fatalf("expected siege to start")
	}
	if p.Siege.ProgressDays != 1 {
		t.Fatalf("expected 1 day of progress, got %d", p.Siege.ProgressDays)
	}
	if p.Siege.RequiredDays != BaseSiegeDays {
		t.Fatalf("expected required days %d, got %d", BaseSiegeDays, p.Siege.RequiredDays)
	}
}

func TestRunSiegeCompletesAndTransfersOwnership(t *testing.T) {
	w := newBesiegedWorld(0)
	p := w.Provinces[10]

	for i := 0; i < BaseSiegeDays; i++ {
		RunSiege(w)
	}

	if p.Owner != "SWE" {
		t.Fatalf("expected ownership transferred to besieger, got %q", p.Owner)
	}
	if p.Siege != nil {
		t.Fatalf("expected siege cleared after completion")
	}
}

func TestRunSiegeResetsWhenDefenderArrives(t *testing.T) {
	w := newBesiegedWorld(0)
	RunSiege(w)
	if w.Provinces[10].Siege == nil {
		t.Fatalf("expected siege to start")
	}

	w.Armies[2] = &worldstate.Army{
		ID: 2, Owner: "DAN", Location: 10,
		Regiments: []worldstate.Regiment{{Type: worldstate.Infantry, Strength: fixedpoint.FromInt(500)}},
	}

	RunSiege(w)

	if w.Provinces[10].Siege != nil {
		t.Fatalf("expected siege cleared once a defending army contests the ground")
	}
}

func TestRunSiegeHigherFortLevelTakesLonger(t *testing.T) {
	w := newBesiegedWorld(3)

	RunSiege(w)

	want := BaseSiegeDays + 3*SiegeDaysPerFortLevel
	if got := w.Provinces[10].Siege.RequiredDays; got != want {
		t.Fatalf("expected required days %d, got %d", want, got)
	}
}
