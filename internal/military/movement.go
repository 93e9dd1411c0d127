package military

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// BaseMoveCost is the default days required to cross one edge before
// terrain/leader-maneuver modifiers.
const BaseMoveCost = 10

// BaseSpeed is the daily progress an unmodified army or fleet accrues.
const BaseSpeed = 1

// RunMovement advances every fleet then every army by one day of progress.
// Embarked armies follow their fleet's location with no independent
// progress. When a hop completes, required_progress is reseeded from the
// adjacency graph's cost to the *next* hop — unlike the constant-cost
// shortcut the original took, this computes the real cost of the upcoming
// edge each time a hop completes (REDESIGN FLAG, design doc Section 4.5).
func RunMovement(w *worldstate.WorldState, adj *Adjacency) {
	for _, fid := range w.SortedFleetIDs() {
		f := w.Fleets[fid]
		advance(f.Movement, &f.Location, adj, "fleet", uint64(fid))
	}

	for _, aid := range w.SortedArmyIDs() {
		a := w.Armies[aid]
		if a.EmbarkedOn != nil {
			if f, ok := w.Fleets[*a.EmbarkedOn]; ok {
				a.Location = f.Location
			}
			continue
		}
		advance(a.Movement, &a.Location, adj, "army", uint64(aid))
	}
}

func advance(mv *worldstate.MovementState, location *ids.ProvinceID, adj *Adjacency, kind string, id uint64) {
	if mv == nil || len(mv.Path) == 0 {
		return
	}
	mv.Progress = mv.Progress.Add(fixedpoint.FromInt(BaseSpeed))
	if mv.Progress.LessThan(mv.RequiredProgress) {
		return
	}

	prev := *location
	next := mv.Path[0]
	mv.Path = mv.Path[1:]
	*location = next
	mv.Progress = fixedpoint.Zero

	if len(mv.Path) > 0 {
		mv.RequiredProgress = adj.Cost(next, mv.Path[0])
	}

	slog.Debug("unit moved", "kind", kind, "id", id, "from", prev, "to", next)
}
