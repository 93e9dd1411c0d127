package verify

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/worldstate"
)

func replayWorld() *worldstate.WorldState {
	w := worldstate.New(calendar.GameStart, 1)
	w.Countries["SWE"] = worldstate.NewCountryState()
	p := worldstate.NewProvinceState()
	p.Owner = "SWE"
	p.Cores["SWE"] = true
	w.Provinces[1] = p
	return w
}

func TestClassifyTolerances(t *testing.T) {
	cases := []struct {
		predicted, recorded float64
		want                Verdict
	}{
		{100, 100, VerdictPass},
		{103, 100, VerdictPass},
		{108, 100, VerdictClose},
		{120, 100, VerdictFail},
		{0, 0, VerdictPass},
	}
	for _, c := range cases {
		if got := classify(c.predicted, c.recorded); got != c.want {
			t.Errorf("classify(%v, %v) = %v, want %v", c.predicted, c.recorded, got, c.want)
		}
	}
}

func TestReplayAdvancesToTargetDateAndDiffsMetrics(t *testing.T) {
	start := replayWorld()
	target := &ExtractedState{
		Meta: ExtractedMeta{Date: calendar.Date{Year: 1445, Month: 11, Day: 15}},
		Countries: map[string]ExtractedCountry{
			"SWE": {Treasury: 0, Manpower: 0},
		},
		Provinces: map[int]ExtractedProvince{
			1: {BaseTax: 0},
		},
	}

	report, err := Replay(start, target, nil, config.DefaultSimConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.EndDate != target.Meta.Date {
		t.Fatalf("expected replay to land exactly on target date, got %v want %v", report.EndDate, target.Meta.Date)
	}
	if len(report.Diffs) == 0 {
		t.Fatalf("expected diffs to be produced")
	}
	pass, close, fail := report.Summary()
	if pass+close+fail != len(report.Diffs) {
		t.Fatalf("summary counts %d/%d/%d do not add up to %d diffs", pass, close, fail, len(report.Diffs))
	}
}

func TestReplayRejectsTargetBeforeStart(t *testing.T) {
	start := replayWorld()
	target := &ExtractedState{Meta: ExtractedMeta{Date: calendar.Date{Year: 1400, Month: 1, Day: 1}}}

	if _, err := Replay(start, target, nil, config.DefaultSimConfig()); err == nil {
		t.Fatalf("expected an error when target date precedes start date")
	}
}
