package diplomacy

import (
	"log/slog"
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// CoalitionThreshold is the minimum AE-vs-target for a country to count as a
// potential coalition member.
const CoalitionThreshold = 50.0

// MinCoalitionMembers is the minimum membership count for a coalition to
// form, and the floor below which an existing one dissolves.
const MinCoalitionMembers = 4

// AEDecayPerYear is the yearly aggressive-expansion decay rate.
const AEDecayPerYear = 2.0

// AEDecayPerMonth is AEDecayPerYear spread evenly across twelve months.
const AEDecayPerMonth = AEDecayPerYear / 12.0

// Fixed forms of the constants above, computed once at init rather than per
// country per monthly tick.
var (
	aeDecayPerMonth    = fixedpoint.FromFloat64(AEDecayPerMonth)
	coalitionThreshold = fixedpoint.FromFloat64(CoalitionThreshold)
)

// RunCoalitionTick runs the monthly coalition update: AE decay, new-coalition
// formation checks, then membership pruning of existing coalitions. See
// design doc Section 4.7.
func RunCoalitionTick(w *worldstate.WorldState) {
	decayAggressiveExpansion(w)
	checkCoalitionFormation(w)
	updateExistingCoalitions(w)
}

func decayAggressiveExpansion(w *worldstate.WorldState) {
	decay := aeDecayPerMonth
	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		for target, ae := range c.AggressiveExpansion {
			decayed := ae.Sub(decay).Max(fixedpoint.Zero)
			if decayed.IsZero() {
				delete(c.AggressiveExpansion, target)
			} else {
				c.AggressiveExpansion[target] = decayed
			}
		}
	}
}

// meetsThreshold reports whether tag's AE against target is at or above
// CoalitionThreshold.
func meetsThreshold(w *worldstate.WorldState, tag, target ids.Tag) bool {
	c, ok := w.Countries[tag]
	if !ok {
		return false
	}
	ae, ok := c.AggressiveExpansion[target]
	if !ok {
		return false
	}
	return ae.GreaterOrEqual(coalitionThreshold)
}

func checkCoalitionFormation(w *worldstate.WorldState) {
	for _, target := range w.SortedCountryTags() {
		if _, exists := w.Diplomacy.Coalitions[target]; exists {
			continue
		}

		members := make(map[ids.Tag]bool)
		for _, tag := range w.SortedCountryTags() {
			if tag == target {
				continue
			}
			if meetsThreshold(w, tag, target) {
				members[tag] = true
			}
		}

		if len(members) >= MinCoalitionMembers {
			coalition := &worldstate.Coalition{Target: target, Members: members, FormedDate: w.Date}
			w.Diplomacy.Coalitions[target] = coalition
			slog.Info("coalition formed", "target", target, "members", coalition.SortedMembers())
		}
	}
}

func updateExistingCoalitions(w *worldstate.WorldState) {
	for _, target := range sortedCoalitionTargets(w.Diplomacy.Coalitions) {
		coalition := w.Diplomacy.Coalitions[target]
		for tag := range coalition.Members {
			if !meetsThreshold(w, tag, target) {
				delete(coalition.Members, tag)
			}
		}
		if len(coalition.Members) < MinCoalitionMembers {
			slog.Info("coalition dissolved", "target", target, "remaining", len(coalition.Members))
			delete(w.Diplomacy.Coalitions, target)
		}
	}
}

func sortedCoalitionTargets(m map[ids.Tag]*worldstate.Coalition) []ids.Tag {
	out := make([]ids.Tag, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
