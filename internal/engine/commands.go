// Package engine implements the tick stepper: command validation and
// application, the strict daily/monthly/yearly phase order, and the
// deterministic checksum. See design doc Section 4.1.
package engine

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/military"
	"github.com/talonreach/dominion/internal/worldstate"
)

// Command is the sum type of player/AI inputs accepted by one tick. Every
// concrete command carries its issuer so the validator can check ownership.
type Command interface {
	Issuer() ids.Tag
	commandName() string
}

// Pass is a no-op command, always valid.
type Pass struct{ By ids.Tag }

func (c Pass) Issuer() ids.Tag      { return c.By }
func (c Pass) commandName() string { return "Pass" }

// Quit signals the issuer wants no further input this session; always valid.
type Quit struct{ By ids.Tag }

func (c Quit) Issuer() ids.Tag      { return c.By }
func (c Quit) commandName() string { return "Quit" }

// Move queues an army's path; adjacency/destination validity is assumed to
// have been checked at command-issue time per spec.md §4.5 (the movement
// tick does not re-validate the path).
type Move struct {
	By          ids.Tag
	ArmyID      ids.ArmyID
	Destination []ids.ProvinceID
}

func (c Move) Issuer() ids.Tag      { return c.By }
func (c Move) commandName() string { return "Move" }

// MoveFleet is Move's naval analogue.
type MoveFleet struct {
	By          ids.Tag
	FleetID     ids.FleetID
	Destination []ids.ProvinceID
}

func (c MoveFleet) Issuer() ids.Tag      { return c.By }
func (c MoveFleet) commandName() string { return "MoveFleet" }

// DeclareWar opens hostilities against Target.
type DeclareWar struct {
	By     ids.Tag
	Target ids.Tag
}

func (c DeclareWar) Issuer() ids.Tag      { return c.By }
func (c DeclareWar) commandName() string { return "DeclareWar" }

// AcceptPeace accepts WarID's pending peace offer.
type AcceptPeace struct {
	By    ids.Tag
	WarID ids.WarID
}

func (c AcceptPeace) Issuer() ids.Tag      { return c.By }
func (c AcceptPeace) commandName() string { return "AcceptPeace" }

// RejectPeace rejects WarID's pending peace offer.
type RejectPeace struct {
	By    ids.Tag
	WarID ids.WarID
}

func (c RejectPeace) Issuer() ids.Tag      { return c.By }
func (c RejectPeace) commandName() string { return "RejectPeace" }

// ManaTrack names one of the three monarch-power pools.
type ManaTrack uint8

const (
	Administrative ManaTrack = iota
	Diplomatic
	Military
)

// BuyTech spends mana to advance one tech track by one level.
type BuyTech struct {
	By    ids.Tag
	Track ManaTrack
}

func (c BuyTech) Issuer() ids.Tag      { return c.By }
func (c BuyTech) commandName() string { return "BuyTech" }

// EmbraceInstitution embraces a spawned institution.
type EmbraceInstitution struct {
	By            ids.Tag
	InstitutionID ids.InstitutionID
}

func (c EmbraceInstitution) Issuer() ids.Tag      { return c.By }
func (c EmbraceInstitution) commandName() string { return "EmbraceInstitution" }

// DevelopType names which base-development track DevelopProvince increases.
type DevelopType uint8

const (
	DevelopTax DevelopType = iota
	DevelopProduction
	DevelopManpower
)

// DevelopProvince spends mana to increase one of a province's base dev
// stats by one point.
type DevelopProvince struct {
	By       ids.Tag
	Province ids.ProvinceID
	Type     DevelopType
}

func (c DevelopProvince) Issuer() ids.Tag      { return c.By }
func (c DevelopProvince) commandName() string { return "DevelopProvince" }

// OfferAlliance forms an alliance with Target as soon as it is applied;
// there is no acceptance step.
type OfferAlliance struct {
	By     ids.Tag
	Target ids.Tag
}

func (c OfferAlliance) Issuer() ids.Tag      { return c.By }
func (c OfferAlliance) commandName() string { return "OfferAlliance" }

// BreakAlliance dissolves an existing alliance with Target.
type BreakAlliance struct {
	By     ids.Tag
	Target ids.Tag
}

func (c BreakAlliance) Issuer() ids.Tag      { return c.By }
func (c BreakAlliance) commandName() string { return "BreakAlliance" }

// SetRival marks Target as a rival.
type SetRival struct {
	By     ids.Tag
	Target ids.Tag
}

func (c SetRival) Issuer() ids.Tag      { return c.By }
func (c SetRival) commandName() string { return "SetRival" }

// RemoveRival removes an existing rivalry with Target.
type RemoveRival struct {
	By     ids.Tag
	Target ids.Tag
}

func (c RemoveRival) Issuer() ids.Tag      { return c.By }
func (c RemoveRival) commandName() string { return "RemoveRival" }

// InvalidCommand is a structured rejection reason; it never aborts the
// tick, only the one command. See design doc Section 7.
type InvalidCommand struct {
	Command Command
	Reason  string
}

// DevelopCostPerPoint is the mana cost to raise a province's development by
// one point, scaled by its current total development (the further along a
// province is, the more each additional point costs).
const DevelopCostPerPoint = 50

// techCost returns the mana cost to advance from currentLevel to the next.
func techCost(currentLevel int) fixedpoint.Fixed {
	return fixedpoint.FromInt(int64(50 + currentLevel*10))
}

// developCost returns the mana cost to add one point of development given
// the province's current total development.
func developCost(totalDev fixedpoint.Fixed) fixedpoint.Fixed {
	return fixedpoint.FromInt(DevelopCostPerPoint).Add(totalDev.Mul(fixedpoint.FromInt(5)))
}

// ApplyCommands validates and applies every command in order, returning the
// ones that were rejected. A rejected command never aborts the tick; it is
// simply dropped with a reason. See design doc Section 4.1 step 1 and
// Section 7 (InvalidCommand).
func ApplyCommands(w *worldstate.WorldState, cmds []Command, adj *military.Adjacency) []InvalidCommand {
	var rejected []InvalidCommand

	reject := func(c Command, reason string) {
		rejected = append(rejected, InvalidCommand{Command: c, Reason: reason})
		slog.Debug("command rejected", "command", c.commandName(), "issuer", c.Issuer(), "reason", reason)
	}

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case Pass, Quit:
			// always valid, nothing to apply

		case Move:
			a, ok := w.Armies[c.ArmyID]
			if !ok {
				reject(c, "army does not exist")
				continue
			}
			if a.Owner != c.By {
				reject(c, "issuer does not own army")
				continue
			}
			if len(c.Destination) == 0 {
				reject(c, "empty destination path")
				continue
			}
			if adj != nil && !adj.ValidatePath(a.Location, c.Destination, landPathKinds) {
				reject(c, "destination unreachable")
				continue
			}
			a.Movement = &worldstate.MovementState{
				Path:             append([]ids.ProvinceID(nil), c.Destination...),
				Progress:         fixedpoint.Zero,
				RequiredProgress: costOrDefault(adj, a.Location, c.Destination[0]),
			}

		case MoveFleet:
			f, ok := w.Fleets[c.FleetID]
			if !ok {
				reject(c, "fleet does not exist")
				continue
			}
			if f.Owner != c.By {
				reject(c, "issuer does not own fleet")
				continue
			}
			if len(c.Destination) == 0 {
				reject(c, "empty destination path")
				continue
			}
			dest := w.Provinces[c.Destination[len(c.Destination)-1]]
			if dest == nil || !dest.IsSea {
				reject(c, "destination is not a sea province")
				continue
			}
			f.Movement = &worldstate.MovementState{
				Path:             append([]ids.ProvinceID(nil), c.Destination...),
				Progress:         fixedpoint.Zero,
				RequiredProgress: costOrDefault(adj, f.Location, c.Destination[0]),
			}

		case DeclareWar:
			if c.By == c.Target {
				reject(c, "cannot declare war on self")
				continue
			}
			if w.Diplomacy.AreAtWar(c.By, c.Target) {
				reject(c, "already at war with target")
				continue
			}
			wid := ids.WarID(w.NextWarID.Next())
			w.Diplomacy.Wars[wid] = &worldstate.War{
				ID:        wid,
				Attackers: []ids.Tag{c.By},
				Defenders: []ids.Tag{c.Target},
				StartDate: w.Date,
			}
			slog.Debug("war declared", "attacker", c.By, "defender", c.Target, "war", wid)

		case AcceptPeace:
			war, ok := w.Diplomacy.Wars[c.WarID]
			if !ok || !war.PendingPeaceOffer || !war.InvolvesCountry(c.By) {
				reject(c, "no pending peace offer for issuer")
				continue
			}
			delete(w.Diplomacy.Wars, c.WarID)
			slog.Debug("peace accepted", "issuer", c.By, "war", c.WarID)

		case RejectPeace:
			war, ok := w.Diplomacy.Wars[c.WarID]
			if !ok || !war.PendingPeaceOffer || !war.InvolvesCountry(c.By) {
				reject(c, "no pending peace offer for issuer")
				continue
			}
			war.PendingPeaceOffer = false

		case BuyTech:
			country, ok := w.Countries[c.By]
			if !ok {
				reject(c, "country does not exist")
				continue
			}
			var level int
			var pool *fixedpoint.Fixed
			switch c.Track {
			case Administrative:
				level, pool = country.AdmTech, &country.AdmMana
			case Diplomatic:
				level, pool = country.DipTech, &country.DipMana
			case Military:
				level, pool = country.MilTech, &country.MilMana
			}
			cost := techCost(level)
			if pool.LessThan(cost) {
				reject(c, "insufficient mana")
				continue
			}
			*pool = pool.Sub(cost)
			switch c.Track {
			case Administrative:
				country.AdmTech++
			case Diplomatic:
				country.DipTech++
			case Military:
				country.MilTech++
			}

		case EmbraceInstitution:
			country, ok := w.Countries[c.By]
			if !ok {
				reject(c, "country does not exist")
				continue
			}
			if _, spawned := w.Global.SpawnedInstitutions[c.InstitutionID]; !spawned {
				reject(c, "institution has not spawned")
				continue
			}
			if country.Institutions[c.InstitutionID] {
				reject(c, "already embraced")
				continue
			}
			country.Institutions[c.InstitutionID] = true

		case DevelopProvince:
			p, ok := w.Provinces[c.Province]
			if !ok {
				reject(c, "province does not exist")
				continue
			}
			if p.Owner != c.By {
				reject(c, "issuer does not own province")
				continue
			}
			country := w.Countries[c.By]
			if country == nil {
				reject(c, "country does not exist")
				continue
			}
			cost := developCost(p.Development())
			var pool *fixedpoint.Fixed
			switch c.Type {
			case DevelopTax:
				pool = &country.AdmMana
			case DevelopProduction:
				pool = &country.DipMana
			case DevelopManpower:
				pool = &country.MilMana
			}
			if pool.LessThan(cost) {
				reject(c, "insufficient mana")
				continue
			}
			*pool = pool.Sub(cost)
			switch c.Type {
			case DevelopTax:
				p.BaseTax = p.BaseTax.Add(fixedpoint.One)
			case DevelopProduction:
				p.BaseProduction = p.BaseProduction.Add(fixedpoint.One)
			case DevelopManpower:
				p.BaseManpower = p.BaseManpower.Add(fixedpoint.One)
			}

		case OfferAlliance:
			if c.By == c.Target {
				reject(c, "cannot ally with self")
				continue
			}
			w.Diplomacy.Relations[worldstate.NewTagPair(c.By, c.Target)] = worldstate.RelationAlliance

		case BreakAlliance:
			pair := worldstate.NewTagPair(c.By, c.Target)
			if w.Diplomacy.Relations[pair] != worldstate.RelationAlliance {
				reject(c, "not currently allied")
				continue
			}
			delete(w.Diplomacy.Relations, pair)

		case SetRival:
			if c.By == c.Target {
				reject(c, "cannot rival self")
				continue
			}
			pair := worldstate.NewTagPair(c.By, c.Target)
			if w.Diplomacy.Relations[pair] == worldstate.RelationAlliance {
				reject(c, "cannot rival an ally")
				continue
			}
			w.Diplomacy.Relations[pair] = worldstate.RelationRival

		case RemoveRival:
			pair := worldstate.NewTagPair(c.By, c.Target)
			if w.Diplomacy.Relations[pair] != worldstate.RelationRival {
				reject(c, "not currently a rival")
				continue
			}
			delete(w.Diplomacy.Relations, pair)

		default:
			reject(c, "unrecognized command")
		}
	}

	return rejected
}

var landPathKinds = map[military.AdjacencyKind]bool{
	military.AdjacencyLand:    true,
	military.AdjacencyCoastal: true,
}

func costOrDefault(adj *military.Adjacency, from ids.ProvinceID, to ids.ProvinceID) fixedpoint.Fixed {
	if adj == nil {
		return fixedpoint.FromInt(military.BaseMoveCost)
	}
	return adj.Cost(from, to)
}
