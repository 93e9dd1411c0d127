package worldstate

import (
	"sort"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// CoringProgress tracks an in-progress permanent-claim conversion.
type CoringProgress struct {
	Country         ids.Tag
	StartDate       calendar.Date
	ProgressMonths  int
	RequiredMonths  int
}

// SiegeProgress tracks an in-progress siege of a fort by a besieging army.
type SiegeProgress struct {
	Besieger      ids.Tag
	ProgressDays  int
	RequiredDays  int
}

// ProvinceState is the per-province mutable state. See design doc Section 3.
type ProvinceState struct {
	Owner      ids.Tag // "" if unowned
	Controller ids.Tag // "" if uncontrolled / same as owner
	Religion   string
	Culture    string

	HasTradeGood bool
	TradeGood    ids.GoodID

	BaseTax        fixedpoint.Fixed
	BaseProduction fixedpoint.Fixed
	BaseManpower   fixedpoint.Fixed

	FortLevel int

	Cores   map[ids.Tag]bool
	Coring  *CoringProgress
	Siege   *SiegeProgress

	Buildings map[ids.BuildingID]bool

	IsSea        bool
	IsMothballed bool

	LocalAutonomy fixedpoint.Fixed // 0..1
	CenterOfTrade uint8            // 0..3
}

// NewProvinceState returns a zero-value province ready for population.
func NewProvinceState() *ProvinceState {
	return &ProvinceState{
		Cores:     make(map[ids.Tag]bool),
		Buildings: make(map[ids.BuildingID]bool),
	}
}

// Development returns base_tax + base_production + base_manpower, the
// canonical development figure used by coring, force limits, and trade
// power alike.
func (p *ProvinceState) Development() fixedpoint.Fixed {
	return p.BaseTax.Add(p.BaseProduction).Add(p.BaseManpower)
}

// HasOwner reports whether the province is currently owned.
func (p *ProvinceState) HasOwner() bool { return p.Owner != "" }

// EffectiveAutonomy returns max(raw_autonomy, 0.75 if uncored else 0).
const UncoredAutonomyFloor = 0.75

// uncoredAutonomyFloor is the Fixed form, computed once at init rather than
// per province per call (EffectiveAutonomy is called from nearly every
// subsystem, every tick).
var uncoredAutonomyFloor = fixedpoint.FromFloat64(UncoredAutonomyFloor)

func (p *ProvinceState) EffectiveAutonomy() fixedpoint.Fixed {
	floor := fixedpoint.Zero
	if p.HasOwner() && !p.Cores[p.Owner] {
		floor = uncoredAutonomyFloor
	}
	return p.LocalAutonomy.Max(floor)
}

// SortedCoreTags returns the province's core-holder tags in lexicographic
// order, for deterministic iteration and checksum stability.
func (p *ProvinceState) SortedCoreTags() []ids.Tag {
	tags := make([]ids.Tag, 0, len(p.Cores))
	for t := range p.Cores {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// CenterOfTradeBonus returns the trade-power bonus for this province's
// center-of-trade level: 0/5/10/25 for level 0/1/2/3.
func (p *ProvinceState) CenterOfTradeBonus() fixedpoint.Fixed {
	switch p.CenterOfTrade {
	case 1:
		return fixedpoint.FromInt(5)
	case 2:
		return fixedpoint.FromInt(10)
	case 3:
		return fixedpoint.FromInt(25)
	default:
		return fixedpoint.Zero
	}
}
