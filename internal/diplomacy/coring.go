// Package diplomacy implements the cross-country subsystems that sit above
// worldstate.DiplomacyState: coring, overextension, coalitions/AE decay. See
// design doc Section 4.6-4.7.
package diplomacy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/modifiers"
	"github.com/talonreach/dominion/internal/worldstate"
)

// CoringCostPerDev is the ADM cost to core one point of province development.
const CoringCostPerDev = 10

// BaseCoringMonths is the base duration of a coring project.
const BaseCoringMonths = 36

var (
	ErrProvinceNotFound  = errors.New("province not found")
	ErrNotOwner          = errors.New("country does not own province")
	ErrAlreadyCored      = errors.New("province already cored by country")
	ErrAlreadyCoring     = errors.New("province already has a coring project")
	ErrCountryNotFound   = errors.New("country not found")
	ErrInsufficientMana  = errors.New("insufficient administrative mana")
)

// CoringCost returns the ADM cost to core p, including the country's
// core-creation modifier.
func CoringCost(w *worldstate.WorldState, tag ids.Tag, p *worldstate.ProvinceState) fixedpoint.Fixed {
	base := p.Development().Mul(fixedpoint.FromInt(CoringCostPerDev))
	mod := w.Modifiers.EffectiveMultiplicative(modifiers.StatCoreCreation, modifiers.ScopeCountry, tag)
	return base.Mul(mod).Max(fixedpoint.One)
}

// CoringDuration returns the number of months a coring project started by tag
// will take, including the core-creation modifier.
func CoringDuration(w *worldstate.WorldState, tag ids.Tag) int {
	mod := w.Modifiers.EffectiveMultiplicative(modifiers.StatCoreCreation, modifiers.ScopeCountry, tag)
	months := fixedpoint.FromInt(BaseCoringMonths).Mul(mod)
	n := int(months.Int())
	if n < 1 {
		n = 1
	}
	return n
}

// StartCoring begins coring province pid on behalf of tag: validates
// ownership/core/coring-state, debits ADM, and writes CoringProgress. See
// design doc Section 4.6.
func StartCoring(w *worldstate.WorldState, tag ids.Tag, pid ids.ProvinceID) error {
	p, ok := w.Provinces[pid]
	if !ok {
		return ErrProvinceNotFound
	}
	if p.Owner != tag {
		return ErrNotOwner
	}
	if p.Cores[tag] {
		return ErrAlreadyCored
	}
	if p.Coring != nil {
		return ErrAlreadyCoring
	}

	country, ok := w.Countries[tag]
	if !ok {
		return ErrCountryNotFound
	}

	cost := CoringCost(w, tag, p)
	if country.AdmMana.LessThan(cost) {
		return fmt.Errorf("%w: need %v, have %v", ErrInsufficientMana, cost, country.AdmMana)
	}

	country.AdmMana = country.AdmMana.Sub(cost)
	p.Coring = &worldstate.CoringProgress{
		Country:        tag,
		StartDate:      w.Date,
		ProgressMonths: 0,
		RequiredMonths: CoringDuration(w, tag),
	}

	slog.Info("coring started", "country", tag, "province", pid, "cost", cost, "months", p.Coring.RequiredMonths)
	return nil
}

// TickCoring advances every in-progress coring project by one month: owner
// changes cancel it (no refund), otherwise progress advances and, once
// progress+1 >= required, the core completes. Called at the monthly phase
// boundary. See design doc Section 4.6.
func TickCoring(w *worldstate.WorldState) {
	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if p.Coring == nil {
			continue
		}
		if p.Owner != p.Coring.Country {
			slog.Info("coring cancelled", "province", pid, "country", p.Coring.Country, "reason", "owner changed")
			p.Coring = nil
			continue
		}
		if p.Coring.ProgressMonths+1 >= p.Coring.RequiredMonths {
			p.Cores[p.Coring.Country] = true
			slog.Info("coring completed", "province", pid, "country", p.Coring.Country)
			p.Coring = nil
			continue
		}
		p.Coring.ProgressMonths++
	}
}

// RecalculateOverextension sets every country's Overextension to the sum of
// development of provinces it owns but has not cored. Called monthly. See
// design doc Section 4.6.
func RecalculateOverextension(w *worldstate.WorldState) {
	totals := make(map[ids.Tag]fixedpoint.Fixed, len(w.Countries))
	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		if !p.HasOwner() || p.Cores[p.Owner] {
			continue
		}
		totals[p.Owner] = totals[p.Owner].Add(p.Development())
	}
	for _, tag := range w.SortedCountryTags() {
		w.Countries[tag].Overextension = totals[tag]
	}
}
