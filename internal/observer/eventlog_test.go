package observer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []Event {
	t.Helper()
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("bad json line %q: %v", line, err)
		}
		events = append(events, e)
	}
	return events
}

func TestEventLogObserverFirstTickEmitsNothing(t *testing.T) {
	var buf bytes.Buffer
	o := NewEventLogObserver(&buf)
	w := worldstate.New(calendar.GameStart, 1)
	w.Provinces[1] = worldstate.NewProvinceState()
	w.Provinces[1].Owner = "SWE"

	if err := o.Notify(Snapshot{State: w, Tick: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no events on the first observed tick, got %q", buf.String())
	}
}

func TestEventLogObserverDetectsOwnershipChange(t *testing.T) {
	var buf bytes.Buffer
	o := NewEventLogObserver(&buf)
	w := worldstate.New(calendar.GameStart, 1)
	w.Provinces[1] = worldstate.NewProvinceState()
	w.Provinces[1].Owner = "SWE"

	if err := o.Notify(Snapshot{State: w, Tick: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Provinces[1].Owner = "DAN"
	if err := o.Notify(Snapshot{State: w, Tick: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := decodeLines(t, &buf)
	if len(events) != 1 || events[0].Kind != EventOwnershipChange {
		t.Fatalf("expected one ownership_change event, got %+v", events)
	}
	if events[0].From != "SWE" || events[0].To != "DAN" {
		t.Fatalf("expected SWE->DAN transfer, got %+v", events[0])
	}
}

func TestEventLogObserverDetectsWarLifecycle(t *testing.T) {
	var buf bytes.Buffer
	o := NewEventLogObserver(&buf)
	w := worldstate.New(calendar.GameStart, 1)

	if err := o.Notify(Snapshot{State: w, Tick: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Diplomacy.Wars[1] = &worldstate.War{ID: 1, Attackers: []ids.Tag{"SWE"}, Defenders: []ids.Tag{"DAN"}}
	if err := o.Notify(Snapshot{State: w, Tick: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delete(w.Diplomacy.Wars, 1)
	if err := o.Notify(Snapshot{State: w, Tick: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := decodeLines(t, &buf)
	if len(events) != 2 {
		t.Fatalf("expected 2 events (declared, peace), got %+v", events)
	}
	if events[0].Kind != EventWarDeclared || events[1].Kind != EventPeace {
		t.Fatalf("expected [war_declared, peace], got %+v", events)
	}
}

func TestEventLogObserverSiegeCompleteDistinctFromPlainTransfer(t *testing.T) {
	var buf bytes.Buffer
	o := NewEventLogObserver(&buf)
	w := worldstate.New(calendar.GameStart, 1)
	w.Provinces[1] = worldstate.NewProvinceState()
	w.Provinces[1].Owner = "DAN"
	w.Provinces[1].Siege = &worldstate.SiegeProgress{Besieger: "SWE", ProgressDays: 19, RequiredDays: 20}

	if err := o.Notify(Snapshot{State: w, Tick: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Provinces[1].Owner = "SWE"
	w.Provinces[1].Siege = nil
	if err := o.Notify(Snapshot{State: w, Tick: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := decodeLines(t, &buf)
	if len(events) != 1 || events[0].Kind != EventSiegeComplete {
		t.Fatalf("expected siege_complete event, got %+v", events)
	}
}
