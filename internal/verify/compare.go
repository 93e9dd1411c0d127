package verify

import (
	"fmt"
	"math"
	"sort"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/config"
	"github.com/talonreach/dominion/internal/engine"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/military"
	"github.com/talonreach/dominion/internal/worldstate"
)

// Verdict classifies how closely a predicted metric matched the save's
// recorded value, per spec.md §6's three-tier tolerance.
type Verdict string

const (
	VerdictPass Verdict = "pass" // relative difference under 5%
	VerdictClose Verdict = "close" // relative difference under 10%
	VerdictFail Verdict = "fail" // relative difference of 10% or more
)

const (
	passTolerance  = 0.05
	closeTolerance = 0.10
)

// MetricDiff is one compared scalar: a country or province field, the
// predicted and recorded values, and the resulting verdict.
type MetricDiff struct {
	Entity    string
	Metric    string
	Predicted float64
	Recorded  float64
	Verdict   Verdict
}

// Report is the outcome of replaying from one save to the date of a later
// save and comparing every overlapping country/province metric.
type Report struct {
	StartDate calendar.Date
	EndDate   calendar.Date
	Diffs     []MetricDiff
}

// Summary tallies verdicts across a report's diffs.
func (r *Report) Summary() (pass, close, fail int) {
	for _, d := range r.Diffs {
		switch d.Verdict {
		case VerdictPass:
			pass++
		case VerdictClose:
			close++
		default:
			fail++
		}
	}
	return
}

func classify(predicted, recorded float64) Verdict {
	denom := math.Abs(recorded)
	if denom == 0 {
		denom = 1
	}
	diff := math.Abs(predicted-recorded) / denom
	switch {
	case diff < passTolerance:
		return VerdictPass
	case diff < closeTolerance:
		return VerdictClose
	default:
		return VerdictFail
	}
}

// Replay steps world from startState day by day, with no player inputs,
// until it reaches target's date, then compares every country/province
// metric target records against the stepped world's predicted values.
// Replay fails outright (returns an error) if target's date precedes
// startState's — a negative tick count has no sensible replay — or if any
// replayed step returns an error.
func Replay(startState *worldstate.WorldState, target *ExtractedState, adj *military.Adjacency, cfg config.SimConfig) (*Report, error) {
	days := calendar.DaysBetween(startState.Date, target.Meta.Date)
	if days < 0 {
		return nil, fmt.Errorf("verify: target date %v precedes start date %v", target.Meta.Date, startState.Date)
	}

	w := startState
	for i := int64(0); i < days; i++ {
		stepped, err := engine.StepWorld(w, nil, adj, cfg, nil)
		if err != nil {
			return nil, fmt.Errorf("verify: replay step %d: %w", i, err)
		}
		w = stepped
	}

	report := &Report{StartDate: startState.Date, EndDate: w.Date}

	for _, tag := range sortedCountryKeys(target.Countries) {
		ec := target.Countries[tag]
		c, ok := w.Countries[ids.Tag(tag)]
		if !ok {
			continue
		}
		report.Diffs = append(report.Diffs,
			diffMetric(tag, "treasury", c.Treasury.ToFloat64(), ec.Treasury),
			diffMetric(tag, "manpower", c.Manpower.ToFloat64(), ec.Manpower),
			diffMetric(tag, "prestige", c.Prestige.ToFloat64(), ec.Prestige),
			diffMetric(tag, "adm_power", c.AdmMana.ToFloat64(), ec.AdmMana),
			diffMetric(tag, "dip_power", c.DipMana.ToFloat64(), ec.DipMana),
			diffMetric(tag, "mil_power", c.MilMana.ToFloat64(), ec.MilMana),
		)
	}

	for _, id := range sortedProvinceKeys(target.Provinces) {
		ep := target.Provinces[id]
		p, ok := w.Provinces[ids.ProvinceID(id)]
		if !ok {
			continue
		}
		report.Diffs = append(report.Diffs,
			diffMetric(fmt.Sprintf("province:%d", id), "base_tax", p.BaseTax.ToFloat64(), ep.BaseTax),
			diffMetric(fmt.Sprintf("province:%d", id), "base_production", p.BaseProduction.ToFloat64(), ep.BaseProduction),
			diffMetric(fmt.Sprintf("province:%d", id), "base_manpower", p.BaseManpower.ToFloat64(), ep.BaseManpower),
		)
	}

	return report, nil
}

func diffMetric(entity, metric string, predicted, recorded float64) MetricDiff {
	return MetricDiff{
		Entity:    entity,
		Metric:    metric,
		Predicted: predicted,
		Recorded:  recorded,
		Verdict:   classify(predicted, recorded),
	}
}

func sortedCountryKeys(m map[string]ExtractedCountry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedProvinceKeys(m map[int]ExtractedProvince) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
