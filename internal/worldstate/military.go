package worldstate

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// RegimentType is a land unit archetype.
type RegimentType uint8

const (
	Infantry RegimentType = iota
	Cavalry
	Artillery
)

// Per-type combat-power multipliers, computed once at init rather than on
// every BasePower call inside the combat-power hot path.
var (
	infantryBasePower  = fixedpoint.FromFloat64(1.0)
	cavalryBasePower   = fixedpoint.FromFloat64(1.5)
	artilleryBasePower = fixedpoint.FromFloat64(1.2)
)

// BasePower returns the per-man combat-power multiplier for the type.
func (t RegimentType) BasePower() fixedpoint.Fixed {
	switch t {
	case Cavalry:
		return cavalryBasePower
	case Artillery:
		return artilleryBasePower
	default:
		return infantryBasePower
	}
}

// MaintenanceCostMod returns the unit-type maintenance cost modifier applied
// on top of RegimentMaintenanceBase (spec §4.3's "unit-type cost mod" term).
// Reuses the same per-type power ratios as BasePower: a type that fights
// harder also costs more to maintain.
func (t RegimentType) MaintenanceCostMod() fixedpoint.Fixed {
	return t.BasePower().Sub(fixedpoint.One)
}

// MaxRegimentStrength is the maximum men per regiment.
const MaxRegimentStrength = 1000

// Regiment is a single land unit.
type Regiment struct {
	Type     RegimentType
	Strength fixedpoint.Fixed // men
	Morale   fixedpoint.Fixed
}

// ShipType is a naval unit archetype.
type ShipType uint8

const (
	HeavyShip ShipType = iota
	LightShip
	GalleyShip
	TransportShip
)

// Ship is a single naval unit.
type Ship struct {
	Type       ShipType
	Hull       fixedpoint.Fixed
	Durability fixedpoint.Fixed
}

// MovementState tracks an in-progress move along a queued path.
type MovementState struct {
	Path             []ids.ProvinceID // remaining hops, head is the next destination
	Progress         fixedpoint.Fixed
	RequiredProgress fixedpoint.Fixed
}

// Army is a land force.
type Army struct {
	ID         ids.ArmyID
	Owner      ids.Tag
	Location   ids.ProvinceID
	Movement   *MovementState
	Regiments  []Regiment
	EmbarkedOn *ids.FleetID
	InBattle   *uint64 // battle id, nil if not engaged
}

// TotalStrength sums the strength of every regiment in the army.
func (a *Army) TotalStrength() fixedpoint.Fixed {
	total := fixedpoint.Zero
	for _, r := range a.Regiments {
		total = total.Add(r.Strength)
	}
	return total
}

// CombatPower sums base_power(type) * strength / 1000 over every regiment.
func (a *Army) CombatPower() fixedpoint.Fixed {
	total := fixedpoint.Zero
	for _, r := range a.Regiments {
		total = total.Add(r.Type.BasePower().Mul(r.Strength).Div(fixedpoint.FromInt(MaxRegimentStrength)))
	}
	return total
}

// PruneEmptyRegiments removes zero-strength regiments in place.
func (a *Army) PruneEmptyRegiments() {
	kept := a.Regiments[:0]
	for _, r := range a.Regiments {
		if r.Strength.IsPositive() {
			kept = append(kept, r)
		}
	}
	a.Regiments = kept
}

// Fleet is a naval force.
type Fleet struct {
	ID                ids.FleetID
	Owner             ids.Tag
	Location          ids.ProvinceID // must be a sea province
	TransportCapacity int
	EmbarkedArmies    []ids.ArmyID
	Movement          *MovementState
	InBattle          *uint64
}
