package verify

import (
	"fmt"
	"io"

	"github.com/talonreach/dominion/internal/calendar"
)

// ExtractedMeta is the save's top-level metadata.
type ExtractedMeta struct {
	Date calendar.Date
}

// ExtractedCountry is the subset of a save's per-country block the verifier
// compares against predicted state.
type ExtractedCountry struct {
	Tag       string
	Treasury  float64
	Manpower  float64
	Stability int
	Prestige  float64
	AdmMana   float64
	DipMana   float64
	MilMana   float64
}

// ExtractedProvince is the subset of a save's per-province block the
// verifier compares against predicted state.
type ExtractedProvince struct {
	ID             int
	Owner          string
	BaseTax        float64
	BaseProduction float64
	BaseManpower   float64
}

// ExtractedSubject is a dependency relationship read from the save's
// subjects block.
type ExtractedSubject struct {
	Overlord string
	Subject  string
}

// ExtractedState is everything the verifier pulled out of one save file.
type ExtractedState struct {
	Meta      ExtractedMeta
	Countries map[string]ExtractedCountry
	Provinces map[int]ExtractedProvince
	Subjects  []ExtractedSubject
}

// Extract reads unpacked EU4 save text and produces an ExtractedState.
// Unknown fields are ignored; duplicate keys within a block are resolved by
// Block's documented last-wins policy (see parse.go). This never fails on
// unrecognized structure — only on text that doesn't tokenize as
// clausewitz-lite syntax at all.
func Extract(r io.Reader) (*ExtractedState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, err := Parse(string(data))
	if err != nil {
		return nil, err
	}

	out := &ExtractedState{
		Countries: make(map[string]ExtractedCountry),
		Provinces: make(map[int]ExtractedProvince),
	}

	if dateStr, ok := root.String("date"); ok {
		out.Meta.Date = parseSaveDate(dateStr)
	}

	if countries, ok := root.Block("countries"); ok {
		for _, e := range countries.Entries {
			cb, ok := e.Value.(*Block)
			if !ok {
				continue
			}
			out.Countries[e.Key] = ExtractedCountry{
				Tag:       e.Key,
				Treasury:  cb.Float("treasury"),
				Manpower:  cb.Float("manpower"),
				Stability: cb.Int("stability"),
				Prestige:  cb.Float("prestige"),
				AdmMana:   cb.Float("adm_power"),
				DipMana:   cb.Float("dip_power"),
				MilMana:   cb.Float("mil_power"),
			}
		}
	}

	if provinces, ok := root.Block("provinces"); ok {
		for _, e := range provinces.Entries {
			pb, ok := e.Value.(*Block)
			if !ok {
				continue
			}
			id := atoiLenient(e.Key)
			owner, _ := pb.String("owner")
			out.Provinces[id] = ExtractedProvince{
				ID:             id,
				Owner:          owner,
				BaseTax:        pb.Float("base_tax"),
				BaseProduction: pb.Float("base_production"),
				BaseManpower:   pb.Float("base_manpower"),
			}
		}
	}

	if subjects, ok := root.Block("subjects"); ok {
		for _, e := range subjects.Entries {
			sb, ok := e.Value.(*Block)
			if !ok {
				continue
			}
			subj, _ := sb.String("subject")
			out.Subjects = append(out.Subjects, ExtractedSubject{Overlord: e.Key, Subject: subj})
		}
	}

	return out, nil
}

// parseSaveDate parses EU4's "YYYY.M.D" date format, returning the zero Date
// on anything unparseable — a malformed date is an extraction-lenience
// case, not a fatal error.
func parseSaveDate(s string) calendar.Date {
	var year, month, day int
	n, err := fmt.Sscanf(s, "%d.%d.%d", &year, &month, &day)
	if err != nil || n != 3 {
		return calendar.Date{}
	}
	return calendar.Date{Year: int32(year), Month: uint8(month), Day: uint8(day)}
}

func atoiLenient(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -n
	}
	return n
}
