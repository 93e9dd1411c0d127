// Package engine provides the tick stepper: command validation/application,
// the strict daily/monthly/yearly phase order, and the deterministic
// checksum. See design doc Section 5.7 and spec.md §4.1.
//
// The teacher's original tick.go drove a real-time, wall-clock Engine loop
// (Run/Stop/step on a time.Ticker). That shape is incompatible with a
// deterministic, replay-verified simulation core — StepWorld below is a pure
// function instead, called once per day by whatever owns the loop
// (cmd/dominion or the verifier). The teacher's tiered-callback idea (one
// dispatch point per cadence) survives as internal/observer's frequency
// gating rather than as a wall-clock scheduler.
package engine

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/diplomacy"
	"github.com/talonreach/dominion/internal/economy"
	"github.com/talonreach/dominion/internal/military"
	"github.com/talonreach/dominion/internal/observer"
	"github.com/talonreach/dominion/internal/tradeflow"
	"github.com/talonreach/dominion/internal/worldstate"
)

// StepWorld advances state by exactly one day and is a pure function of its
// inputs: same state, same inputs, same adjacency, same config always
// produce the same result and the same observer trace. No hidden time
// sources, no unsequenced map iteration, no floating point in the hot path.
func StepWorld(
	state *worldstate.WorldState,
	inputs []Command,
	adj *military.Adjacency,
	cfg config.SimConfig,
	observers *observer.Registry,
) (*worldstate.WorldState, error) {
	rejected := ApplyCommands(state, inputs, adj)
	for _, r := range rejected {
		slog.Debug("input rejected", "command", r.Command.commandName(), "reason", r.Reason)
	}

	state.Date = state.Date.AddDays(1)

	// Daily phases: movement, combat resolution, siege progress.
	military.RunMovement(state, adj)
	military.RunCombat(state)
	military.RunSiege(state)

	if state.Date.IsMonthStart() {
		// Monthly phases: mana, trade (value -> power -> income), taxation &
		// production, expenses, coring, coalitions/AE, attrition,
		// overextension — exactly spec.md §4.1's order.
		economy.RunMana(state)
		tradeflow.RunValue(state)
		tradeflow.RunPower(state)
		tradeflow.RunIncome(state)
		economy.RunTaxation(state)
		economy.RunProduction(state)
		economy.RunExpenses(state)
		diplomacy.TickCoring(state) // progress and completion merged; see design doc
		diplomacy.RunCoalitionTick(state)
		military.RunAttrition(state)
		diplomacy.RecalculateOverextension(state)
	}

	if state.Date.IsYearStart() {
		// Yearly phases: tribute, stability/prestige drift, coring sweep
		// (the sweep is a no-op here since TickCoring already completes
		// claims the month they finish; see design doc).
		economy.RunTribute(state)
		economy.RunYearlyDrift(state)
	}

	tick := uint64(calendar.DaysBetween(calendar.GameStart, state.Date))

	violations := worldstate.CheckInvariants(state)
	if len(violations) > 0 {
		if cfg.StrictInvariants {
			panic(violations[0].String())
		}
		for _, v := range violations {
			slog.Error("invariant violation normalized", "violation", v.String(), "tick", tick)
		}
		worldstate.Normalize(state)
	}

	var checksum *uint64
	if cfg.ChecksumFrequency > 0 && tick%uint64(cfg.ChecksumFrequency) == 0 {
		sum := Checksum(state)
		checksum = &sum
	}

	if observers != nil {
		snap := observer.Snapshot{State: state, Tick: tick, Checksum: checksum}
		if err := observers.Dispatch(snap); err != nil {
			return state, err
		}
	}

	return state, nil
}
