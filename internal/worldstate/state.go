// Package worldstate holds the simulation's top-level data model: the
// world-state container plus every entity type it owns (provinces,
// countries, armies, fleets, diplomacy, trade). See design doc Section 3.
package worldstate

import (
	"sort"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/trade"
)

// GlobalState holds world-wide bookkeeping that doesn't belong to any single
// country or province: institution spawn tracking and the base goods price
// table's associated metadata.
type GlobalState struct {
	SpawnedInstitutions map[ids.InstitutionID]calendar.Date
}

// NewGlobalState returns an empty GlobalState.
func NewGlobalState() *GlobalState {
	return &GlobalState{SpawnedInstitutions: make(map[ids.InstitutionID]calendar.Date)}
}

// WorldState is the single value containing the entire simulated world. It
// is owned exclusively by the tick stepper during a step; between steps it
// may be shared freely via immutable snapshots (see internal/observer).
type WorldState struct {
	Date     calendar.Date
	RNGSeed  uint64
	RNGState uint64

	Provinces map[ids.ProvinceID]*ProvinceState
	Countries map[ids.Tag]*CountryState

	TradeNetwork *trade.Network

	BaseGoodsPrices map[ids.GoodID]fixedpoint.Fixed

	Modifiers *modifiers.Registry

	Diplomacy *DiplomacyState
	Global    *GlobalState

	Armies       map[ids.ArmyID]*Army
	NextArmyID   *ids.Counter
	Fleets       map[ids.FleetID]*Fleet
	NextFleetID  *ids.Counter
	NextWarID    *ids.Counter

	SubjectTypes map[ids.SubjectTypeID]SubjectType
}

// New returns an empty, fully-initialized WorldState ready for population by
// a data loader.
func New(startDate calendar.Date, rngSeed uint64) *WorldState {
	return &WorldState{
		Date:            startDate,
		RNGSeed:         rngSeed,
		RNGState:        rngSeed,
		Provinces:       make(map[ids.ProvinceID]*ProvinceState),
		Countries:       make(map[ids.Tag]*CountryState),
		BaseGoodsPrices: make(map[ids.GoodID]fixedpoint.Fixed),
		Modifiers:       modifiers.NewRegistry(),
		Diplomacy:       NewDiplomacyState(),
		Global:          NewGlobalState(),
		Armies:          make(map[ids.ArmyID]*Army),
		NextArmyID:      ids.NewCounter(),
		Fleets:          make(map[ids.FleetID]*Fleet),
		NextFleetID:     ids.NewCounter(),
		NextWarID:       ids.NewCounter(),
		SubjectTypes:    make(map[ids.SubjectTypeID]SubjectType),
	}
}

// SortedProvinceIDs returns province ids in ascending numeric order — the
// iteration order every subsystem and the checksum must use.
func (w *WorldState) SortedProvinceIDs() []ids.ProvinceID {
	out := make([]ids.ProvinceID, 0, len(w.Provinces))
	for id := range w.Provinces {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedCountryTags returns country tags in lexicographic order.
func (w *WorldState) SortedCountryTags() []ids.Tag {
	out := make([]ids.Tag, 0, len(w.Countries))
	for t := range w.Countries {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedArmyIDs returns army ids in ascending order.
func (w *WorldState) SortedArmyIDs() []ids.ArmyID {
	out := make([]ids.ArmyID, 0, len(w.Armies))
	for id := range w.Armies {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedFleetIDs returns fleet ids in ascending order.
func (w *WorldState) SortedFleetIDs() []ids.FleetID {
	out := make([]ids.FleetID, 0, len(w.Fleets))
	for id := range w.Fleets {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsEliminated reports whether tag owns zero provinces (kept in the map but
// filtered from decision loops).
func (w *WorldState) IsEliminated(tag ids.Tag) bool {
	for _, p := range w.Provinces {
		if p.Owner == tag {
			return false
		}
	}
	return true
}

// ActiveCountryTags returns every country tag that is not eliminated, sorted.
func (w *WorldState) ActiveCountryTags() []ids.Tag {
	var out []ids.Tag
	for _, t := range w.SortedCountryTags() {
		if !w.IsEliminated(t) {
			out = append(out, t)
		}
	}
	return out
}

// DeleteEmptyArmies prunes zero-strength regiments and deletes armies left
// with no regiments — called after any operation that may zero out a unit
// (combat, attrition). Fleets are not touched.
func (w *WorldState) DeleteEmptyArmies() {
	for _, id := range w.SortedArmyIDs() {
		a := w.Armies[id]
		a.PruneEmptyRegiments()
		if len(a.Regiments) == 0 {
			delete(w.Armies, id)
		}
	}
}
