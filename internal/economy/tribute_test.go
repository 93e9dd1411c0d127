package economy

import (
	"testing"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/worldstate"
)

func newTributaryWorld(date calendar.Date) *worldstate.WorldState {
	w := worldstate.New(date, 1)
	w.Date = date
	w.Countries["MNG"] = worldstate.NewCountryState()
	w.Countries["MNG"].Treasury = fixedpoint.FromInt(100)
	kor := worldstate.NewCountryState()
	kor.Treasury = fixedpoint.FromInt(50)
	kor.Income.Taxation = fixedpoint.FromInt(5)
	kor.Income.Trade = fixedpoint.FromInt(3)
	kor.Income.Production = fixedpoint.FromInt(2)
	w.Countries["KOR"] = kor

	w.SubjectTypes[1] = worldstate.SubjectType{ID: 1, Name: "tributary_state", IsVoluntary: true, JoinsOverlordsWars: false}
	w.Diplomacy.SubjectTypes[1] = w.SubjectTypes[1]
	w.Diplomacy.Subjects["KOR"] = &worldstate.SubjectRelationship{
		Overlord: "MNG", Subject: "KOR", SubjectType: 1, StartDate: calendar.Date{Year: 1444, Month: 1, Day: 1},
	}
	return w
}

func TestRunTributeFullYear(t *testing.T) {
	w := newTributaryWorld(calendar.Date{Year: 1446, Month: 1, Day: 1})

	RunTribute(w)

	kor := w.Countries[ids.Tag("KOR")]
	mng := w.Countries[ids.Tag("MNG")]

	expected := fixedpoint.FromInt(15)
	if kor.Treasury != fixedpoint.FromInt(50).Sub(expected) {
		t.Fatalf("expected KOR treasury %v, got %v", fixedpoint.FromInt(50).Sub(expected), kor.Treasury)
	}
	if mng.Treasury != fixedpoint.FromInt(100).Add(expected) {
		t.Fatalf("expected MNG treasury %v, got %v", fixedpoint.FromInt(100).Add(expected), mng.Treasury)
	}
}

func TestRunTributeProratedFirstYear(t *testing.T) {
	w := newTributaryWorld(calendar.Date{Year: 1445, Month: 1, Day: 1})

	RunTribute(w)

	kor := w.Countries[ids.Tag("KOR")]
	if !kor.Treasury.LessThan(fixedpoint.FromInt(50)) {
		t.Fatalf("expected some tribute paid, treasury unchanged at %v", kor.Treasury)
	}
	if !kor.Treasury.GreaterThan(fixedpoint.FromInt(35)) {
		t.Fatalf("expected prorated tribute much less than full 15, treasury %v", kor.Treasury)
	}
}

func TestRunTributeCappedByTreasury(t *testing.T) {
	w := newTributaryWorld(calendar.Date{Year: 1446, Month: 1, Day: 1})
	w.Countries["KOR"].Income.Taxation = fixedpoint.FromInt(20)
	w.Countries["KOR"].Income.Trade = fixedpoint.FromInt(20)
	w.Countries["KOR"].Income.Production = fixedpoint.FromInt(20)
	w.Countries["KOR"].Treasury = fixedpoint.FromInt(5)

	RunTribute(w)

	kor := w.Countries[ids.Tag("KOR")]
	mng := w.Countries[ids.Tag("MNG")]
	if !kor.Treasury.IsZero() {
		t.Fatalf("expected KOR treasury drained to 0, got %v", kor.Treasury)
	}
	if mng.Treasury != fixedpoint.FromInt(105) {
		t.Fatalf("expected MNG treasury 105, got %v", mng.Treasury)
	}
}
