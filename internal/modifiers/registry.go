// Package modifiers implements the layered additive/multiplicative modifier
// registry keyed by scope (global, country, province, good) and by stat.
// Subsystems read effective values through the registry rather than
// hard-coding bonuses, so that events, policies, and ideas can layer
// modifiers without the subsystems knowing about their source.
package modifiers

import (
	"sort"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// Kind distinguishes a flat bonus from a percentage bonus. Percentage
// modifiers are summed and applied as (1 + sum); additive modifiers are
// summed and added directly to the base value.
type Kind uint8

const (
	Additive Kind = iota
	Percentage
)

// Scope names which map a modifier is stored in.
type Scope uint8

const (
	ScopeGlobal Scope = iota
	ScopeCountry
	ScopeProvince
	ScopeGood
)

// Stat names the concern a modifier affects. Each subsystem queries the
// registry for its own stat so that, e.g., a fort-maintenance policy cannot
// silently also move tax income or coring cost.
type Stat string

const (
	StatTax              Stat = "tax_mod"
	StatLandMaintenance  Stat = "land_maintenance_mod"
	StatNavalMaintenance Stat = "naval_maintenance_mod"
	StatFortMaintenance  Stat = "fort_maintenance_mod"
	StatTradeEfficiency  Stat = "trade_eff_mod"
	StatCoreCreation     Stat = "core_creation_mod"
	StatForceLimitLand   Stat = "force_limit_land_mod"
	StatForceLimitNaval  Stat = "force_limit_naval_mod"
	StatGoodPrice        Stat = "good_price_mod"
)

// Modifier is a single named bonus contributed by a source (an idea, a
// policy, an event) against a specific Stat. Source is kept for
// display/debugging; it does not affect the math.
type Modifier struct {
	Source string
	Stat   Stat
	Kind   Kind
	Value  fixedpoint.Fixed
}

// Registry holds every active modifier, partitioned by scope.
type Registry struct {
	Global   []Modifier
	Country  map[ids.Tag][]Modifier
	Province map[ids.ProvinceID][]Modifier
	Good     map[ids.GoodID][]Modifier
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Country:  make(map[ids.Tag][]Modifier),
		Province: make(map[ids.ProvinceID][]Modifier),
		Good:     make(map[ids.GoodID][]Modifier),
	}
}

// AddGlobal registers a modifier that applies everywhere.
func (r *Registry) AddGlobal(m Modifier) { r.Global = append(r.Global, m) }

// AddCountry registers a country-scoped modifier.
func (r *Registry) AddCountry(tag ids.Tag, m Modifier) {
	r.Country[tag] = append(r.Country[tag], m)
}

// AddProvince registers a province-scoped modifier.
func (r *Registry) AddProvince(id ids.ProvinceID, m Modifier) {
	r.Province[id] = append(r.Province[id], m)
}

// AddGood registers a good-scoped modifier (e.g. a price modifier).
func (r *Registry) AddGood(good ids.GoodID, m Modifier) {
	r.Good[good] = append(r.Good[good], m)
}

func sumStat(mods []Modifier, kind Kind, stat Stat) fixedpoint.Fixed {
	total := fixedpoint.Zero
	for _, m := range mods {
		if m.Kind == kind && m.Stat == stat {
			total = total.Add(m.Value)
		}
	}
	return total
}

// scoped returns the scope-specific modifier slice for key (a ids.Tag,
// ids.ProvinceID, or ids.GoodID depending on scope). Global scope ignores
// key and returns the global slice directly.
func (r *Registry) scoped(scope Scope, key any) []Modifier {
	switch scope {
	case ScopeGlobal:
		return r.Global
	case ScopeCountry:
		return r.Country[key.(ids.Tag)]
	case ScopeProvince:
		return r.Province[key.(ids.ProvinceID)]
	case ScopeGood:
		return r.Good[key.(ids.GoodID)]
	default:
		return nil
	}
}

// EffectiveAdditive sums flat modifiers for stat at scope/key. Global
// modifiers do not contribute to a non-global scope's additive total —
// only that scope's own entries do.
func (r *Registry) EffectiveAdditive(stat Stat, scope Scope, key any) fixedpoint.Fixed {
	return sumStat(r.scoped(scope, key), Additive, stat)
}

// EffectiveMultiplicative returns (1 + sum of percentage modifiers for stat)
// at scope/key, always including the global contribution for that stat.
func (r *Registry) EffectiveMultiplicative(stat Stat, scope Scope, key any) fixedpoint.Fixed {
	sum := sumStat(r.Global, Percentage, stat)
	if scope != ScopeGlobal {
		sum = sum.Add(sumStat(r.scoped(scope, key), Percentage, stat))
	}
	return fixedpoint.One.Add(sum)
}

// EffectivePrice returns basePrice plus the sum of additive good-scope price
// modifiers (the price-modifier design in §4.3: effective price = base_price
// + price_modifier(good)).
func (r *Registry) EffectivePrice(good ids.GoodID, basePrice fixedpoint.Fixed) fixedpoint.Fixed {
	return basePrice.Add(r.EffectiveAdditive(StatGoodPrice, ScopeGood, good))
}

// SortedCountryTags returns country keys with at least one modifier, sorted
// lexicographically — used by callers that must iterate deterministically.
func (r *Registry) SortedCountryTags() []ids.Tag {
	tags := make([]ids.Tag, 0, len(r.Country))
	for t := range r.Country {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
