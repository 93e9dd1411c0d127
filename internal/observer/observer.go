// Package observer fans simulation snapshots out to whatever is watching the
// tick loop: training-data recorders, event-log writers, AI agents deciding
// commands for the next tick. See design doc Section 5.12 and spec.md §6.
package observer

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/worldstate"
)

// Snapshot is the immutable view handed to every observer after a tick
// completes. Checksum is nil on ticks where the stepper's checksum frequency
// didn't fire.
type Snapshot struct {
	State    *worldstate.WorldState
	Tick     uint64
	Checksum *uint64
}

// Observer receives a Snapshot after every tick whose Frequency divides the
// tick counter. NeedsInputs marks observers that expect the driver to solicit
// commands from them before the next tick (AI agents); pure recorders return
// false.
type Observer interface {
	Name() string
	Frequency() uint32
	NeedsInputs() bool
	Notify(Snapshot) error
}

// Registry dispatches snapshots to observers in registration order —
// sequential, not concurrent, so one observer's side effects (e.g. a file
// write) are always visible to the next before it runs.
type Registry struct {
	observers []Observer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an observer. Order is significant: it is the dispatch
// order for every future snapshot.
func (r *Registry) Register(o Observer) {
	r.observers = append(r.observers, o)
}

// NeedsInputs reports whether any registered observer wants a chance to
// supply commands before the next tick.
func (r *Registry) NeedsInputs() bool {
	for _, o := range r.observers {
		if o.NeedsInputs() {
			return true
		}
	}
	return false
}

// Dispatch calls every registered observer whose frequency gate matches tick,
// in registration order, stopping and returning the first error encountered.
// A zero Frequency means "every tick".
func (r *Registry) Dispatch(snap Snapshot) error {
	for _, o := range r.observers {
		freq := o.Frequency()
		if freq > 1 && snap.Tick%uint64(freq) != 0 {
			continue
		}
		if err := o.Notify(snap); err != nil {
			slog.Error("observer notify failed", "observer", o.Name(), "tick", snap.Tick, "err", err)
			return err
		}
	}
	return nil
}
