package economy

import (
	"log/slog"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

// TributeIncomeRate is the fraction of annual income owed as yearly tribute
// (12.5%), ported from original_source's tribute.rs.
const TributeIncomeRate = 0.125

// tributeIncomeRate is the Fixed form, computed once at init.
var tributeIncomeRate = fixedpoint.FromFloat64(TributeIncomeRate)

// firstYearProrationCorrection reproduces the empirical 1.7x factor
// original_source's tribute.rs applies to the days-elapsed proration for the
// very first tribute payment, since the game starts Nov 11 rather than
// Jan 1 and EU4's own proration isn't a clean days/365 fraction.
const firstYearProrationCorrection = 1.7

// firstYearProrationCorrectionFixed is the Fixed form, computed once at init.
var firstYearProrationCorrectionFixed = fixedpoint.FromFloat64(firstYearProrationCorrection)

// RunTribute debits every tributary subject and credits its overlord on
// January 1st. The first tribute year is prorated for the partial Nov 11
// start; subsequent years pay in full. See design doc Section 4.8.
func RunTribute(w *worldstate.WorldState) {
	proration := tributeProration(w.Date)

	type transfer struct {
		subject, overlord ids.Tag
		amount            fixedpoint.Fixed
	}
	var transfers []transfer

	for _, subjectTag := range w.Diplomacy.SortedSubjectTags() {
		rel := w.Diplomacy.Subjects[subjectTag]
		subjectType, ok := w.Diplomacy.SubjectTypes[rel.SubjectType]
		if !ok || !subjectType.IsTributary() {
			continue
		}
		subject, ok := w.Countries[subjectTag]
		if !ok {
			continue
		}
		monthlyIncome := subject.Income.Taxation.Add(subject.Income.Trade).Add(subject.Income.Production)
		annualIncome := monthlyIncome.Mul(fixedpoint.FromInt(12))
		fullTribute := annualIncome.Mul(tributeIncomeRate)
		tribute := fullTribute.Mul(proration)
		if !tribute.IsPositive() {
			continue
		}
		transfers = append(transfers, transfer{subject: subjectTag, overlord: rel.Overlord, amount: tribute})
	}

	for _, t := range transfers {
		subject := w.Countries[t.subject]
		overlord := w.Countries[t.overlord]
		if subject == nil || overlord == nil {
			continue
		}
		payment := t.amount.Min(subject.Treasury.Max(fixedpoint.Zero))
		if !payment.IsPositive() {
			continue
		}
		subject.Treasury = subject.Treasury.Sub(payment)
		overlord.Treasury = overlord.Treasury.Add(payment)
		slog.Info("tribute paid", "subject", t.subject, "overlord", t.overlord, "amount", payment)
	}
}

// tributeProration returns 1.0 for every year except the game's first
// calendar year, where it returns a days-elapsed-based fraction corrected by
// firstYearProrationCorrection.
func tributeProration(date calendar.Date) fixedpoint.Fixed {
	firstTributeYear := calendar.GameStart.Year + 1
	if date.Year != firstTributeYear {
		return fixedpoint.One
	}
	yearStart := calendar.Date{Year: date.Year, Month: 1, Day: 1}
	daysElapsed := calendar.DaysBetween(calendar.GameStart, yearStart)
	fractionalMonths := fixedpoint.FromInt(daysElapsed).Div(fixedpoint.FromInt(30))
	factor := fractionalMonths.Div(fixedpoint.FromInt(12))
	corrected := factor.Mul(firstYearProrationCorrectionFixed)
	return corrected.Clamp(fixedpoint.Zero, fixedpoint.One)
}
