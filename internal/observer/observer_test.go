package observer

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/worldstate"
)

type countingObserver struct {
	name      string
	frequency uint32
	calls     int
	lastTick  uint64
}

func (c *countingObserver) Name() string      { return c.name }
func (c *countingObserver) Frequency() uint32 { return c.frequency }
func (c *countingObserver) NeedsInputs() bool { return false }
func (c *countingObserver) Notify(snap Snapshot) error {
	c.calls++
	c.lastTick = snap.Tick
	return nil
}

func TestRegistryDispatchesInRegistrationOrder(t *testing.T) {
	var order []string
	a := &orderObserver{tag: "a", order: &order}
	b := &orderObserver{tag: "b", order: &order}
	r := NewRegistry()
	r.Register(a)
	r.Register(b)

	w := worldstate.New(calendar.GameStart, 1)
	if err := r.Dispatch(Snapshot{State: w, Tick: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected dispatch order [a b], got %v", order)
	}
}

type orderObserver struct {
	tag   string
	order *[]string
}

func (o *orderObserver) Name() string      { return o.tag }
func (o *orderObserver) Frequency() uint32 { return 1 }
func (o *orderObserver) NeedsInputs() bool { return false }
func (o *orderObserver) Notify(Snapshot) error {
	*o.order = append(*o.order, o.tag)
	return nil
}

func TestRegistryFrequencyGating(t *testing.T) {
	c := &countingObserver{name: "every-third", frequency: 3}
	r := NewRegistry()
	r.Register(c)

	w := worldstate.New(calendar.GameStart, 1)
	for tick := uint64(1); tick <= 6; tick++ {
		if err := r.Dispatch(Snapshot{State: w, Tick: tick}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if c.calls != 2 {
		t.Fatalf("expected 2 calls (ticks 3 and 6), got %d", c.calls)
	}
	if c.lastTick != 6 {
		t.Fatalf("expected last tick 6, got %d", c.lastTick)
	}
}

func TestRegistryNeedsInputsAggregates(t *testing.T) {
	r := NewRegistry()
	r.Register(&countingObserver{name: "passive", frequency: 1})
	if r.NeedsInputs() {
		t.Fatalf("expected no inputs needed with only passive observers")
	}

	r.Register(&needsInputObserver{})
	if !r.NeedsInputs() {
		t.Fatalf("expected inputs needed once an AI observer is registered")
	}
}

type needsInputObserver struct{}

func (needsInputObserver) Name() string              { return "ai" }
func (needsInputObserver) Frequency() uint32          { return 1 }
func (needsInputObserver) NeedsInputs() bool          { return true }
func (needsInputObserver) Notify(Snapshot) error      { return nil }
