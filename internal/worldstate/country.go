package worldstate

import (
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// AdvisorType is the monarch-power track an advisor contributes to.
type AdvisorType uint8

const (
	AdvisorAdministrative AdvisorType = iota
	AdvisorDiplomatic
	AdvisorMilitary
)

// Advisor is a hired advisor contributing monthly mana and costing upkeep.
type Advisor struct {
	Name        string
	Skill       int // 1..=5
	Type        AdvisorType
	MonthlyCost fixedpoint.Fixed
}

// IncomeLedger records last month's totals, kept for display and
// verification against recorded save metrics.
type IncomeLedger struct {
	Taxation   fixedpoint.Fixed
	Trade      fixedpoint.Fixed
	Production fixedpoint.Fixed
	Expenses   fixedpoint.Fixed

	ArmyMaintenance     fixedpoint.Fixed
	NavyMaintenance     fixedpoint.Fixed
	FortMaintenance     fixedpoint.Fixed
	AdvisorMaintenance  fixedpoint.Fixed
	StateMaintenance    fixedpoint.Fixed
	CorruptionExpenses  fixedpoint.Fixed
}

// TradeSubState is the country-scope trade bookkeeping: the home node, where
// the country collects automatically. Merchants are kept on the trade nodes,
// not here.
type TradeSubState struct {
	HasHomeNode bool
	HomeNode    ids.TradeNodeID
}

// CountryState is the per-country mutable state. See design doc Section 3.
type CountryState struct {
	Treasury      fixedpoint.Fixed // may be negative
	Manpower      fixedpoint.Fixed // >= 0
	Stability     int8             // -3..=3
	Prestige      fixedpoint.Fixed // -100..=100
	ArmyTradition fixedpoint.Fixed

	AdmMana fixedpoint.Fixed
	DipMana fixedpoint.Fixed
	MilMana fixedpoint.Fixed
	ManaCap fixedpoint.Fixed // default 999; no subsystem changes it

	AdmTech int
	DipTech int
	MilTech int

	RulerAdm int // 0..=6
	RulerDip int
	RulerMil int
	RulerName   string
	Dynasty     string

	GovernmentRank int // 1..=3
	Religion       string
	TechGroup      string

	Institutions map[ids.InstitutionID]bool
	Advisors     []Advisor

	IdeaGroupProgress map[string]int

	Income IncomeLedger

	AggressiveExpansion map[ids.Tag]fixedpoint.Fixed // target tag -> AE

	Trade TradeSubState

	Overextension fixedpoint.Fixed
}

// NewCountryState returns a country with the default 999 mana cap and empty
// collections.
func NewCountryState() *CountryState {
	return &CountryState{
		ManaCap:             fixedpoint.FromInt(999),
		Institutions:        make(map[ids.InstitutionID]bool),
		IdeaGroupProgress:   make(map[string]int),
		AggressiveExpansion: make(map[ids.Tag]fixedpoint.Fixed),
	}
}

// AdvisorSkillSum returns the sum of advisor skills of the given type,
// contributing directly to monthly mana generation for that track.
func (c *CountryState) AdvisorSkillSum(t AdvisorType) int {
	sum := 0
	for _, a := range c.Advisors {
		if a.Type == t {
			sum += a.Skill
		}
	}
	return sum
}
