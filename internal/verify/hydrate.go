package verify

import (
	"fmt"

	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// Hydrate takes an ExtractedState and a loaded world template (province
// graph, trade network, modifiers, subject-type table — everything a save
// doesn't carry) and returns a WorldState matching the save's date and
// per-entity values. Template entities the save doesn't mention keep their
// template defaults; save entities the template doesn't know about (ids
// outside the loaded map) are skipped rather than creating new ones, since a
// verifier run must compare against the same province/country universe the
// tick stepper already understands.
func Hydrate(extracted *ExtractedState, template *worldstate.WorldState) (*worldstate.WorldState, error) {
	if extracted == nil || template == nil {
		return nil, fmt.Errorf("hydrate: nil extracted state or template")
	}

	w := template
	w.Date = extracted.Meta.Date

	for tag, ec := range extracted.Countries {
		c, ok := w.Countries[ids.Tag(tag)]
		if !ok {
			continue
		}
		c.Treasury = fixedpoint.FromFloat64(ec.Treasury)
		c.Manpower = fixedpoint.FromFloat64(ec.Manpower)
		c.Stability = int8(ec.Stability)
		c.Prestige = fixedpoint.FromFloat64(ec.Prestige)
		c.AdmMana = fixedpoint.FromFloat64(ec.AdmMana)
		c.DipMana = fixedpoint.FromFloat64(ec.DipMana)
		c.MilMana = fixedpoint.FromFloat64(ec.MilMana)
	}

	for id, ep := range extracted.Provinces {
		p, ok := w.Provinces[ids.ProvinceID(id)]
		if !ok {
			continue
		}
		if ep.Owner != "" {
			p.Owner = ids.Tag(ep.Owner)
		}
		p.BaseTax = fixedpoint.FromFloat64(ep.BaseTax)
		p.BaseProduction = fixedpoint.FromFloat64(ep.BaseProduction)
		p.BaseManpower = fixedpoint.FromFloat64(ep.BaseManpower)
	}

	return w, nil
}
