package dataload

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
)

func TestGenerateDemoProducesLandProvincesAndAdjacency(t *testing.T) {
	cfg := DemoConfig{Radius: 6, Seed: 1444, SeaLevel: 0.30, MountainLvl: 0.75, NumCountries: 3}
	res := GenerateDemo(cfg, calendar.GameStart, 42)

	if len(res.World.Provinces) == 0 {
		t.Fatalf("expected at least one land province")
	}

	hasEdge := false
	for from, edges := range res.Adj.Edges {
		for _, e := range edges {
			hasEdge = true
			if !res.Adj.IsAdjacent(from, e.To) {
				t.Fatalf("adjacency graph inconsistent: %v -> %v not reported adjacent", from, e.To)
			}
		}
	}
	if !hasEdge {
		t.Fatalf("expected at least one adjacency edge among generated provinces")
	}
}

func TestGenerateDemoSeedsRequestedCountryCount(t *testing.T) {
	cfg := DemoConfig{Radius: 8, Seed: 1444, SeaLevel: 0.30, MountainLvl: 0.75, NumCountries: 5}
	res := GenerateDemo(cfg, calendar.GameStart, 42)

	if len(res.World.Countries) != 5 {
		t.Fatalf("expected 5 countries, got %d", len(res.World.Countries))
	}
	for tag, c := range res.World.Countries {
		if c.Treasury.IsZero() {
			t.Fatalf("expected seeded country %s to start with nonzero treasury", tag)
		}
	}
}

func TestGenerateDemoCapsCountriesAtAvailableLand(t *testing.T) {
	cfg := DemoConfig{Radius: 1, Seed: 1444, SeaLevel: 0.0, MountainLvl: 0.99, NumCountries: 1000}
	res := GenerateDemo(cfg, calendar.GameStart, 42)

	if len(res.World.Countries) > len(res.World.Provinces) {
		t.Fatalf("expected country count to be capped at land province count: %d countries, %d provinces",
			len(res.World.Countries), len(res.World.Provinces))
	}
}

func TestDemoTagIsStableThreeLetterCode(t *testing.T) {
	tag := demoTag(0)
	if len(tag) != 3 {
		t.Fatalf("expected a three-letter tag, got %q", tag)
	}
	if tag != demoTag(0) {
		t.Fatalf("expected demoTag to be deterministic")
	}
	if demoTag(0) == demoTag(1) {
		t.Fatalf("expected distinct indices to produce distinct tags")
	}
}
