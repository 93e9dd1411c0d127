package engine

import (
	"hash/fnv"
	"sort"

	"github.com/talonreach/dominion/internal/worldstate"
)

// Checksum computes a stable hash over the fields spec.md §4.2 names: date,
// RNG state, countries by sorted tag, provinces by sorted id, armies/fleets
// by sorted id, wars and relations by sorted keys. Military-access grants are
// not included in the hash. Only raw fixed-point integers feed the hash,
// never float re-encodings, so two replays of the same input trace from the
// same seed always agree.
func Checksum(w *worldstate.WorldState) uint64 {
	h := fnv.New64a()

	writeInt := func(v int64) {
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeString := func(s string) { h.Write([]byte(s)) }

	writeInt(int64(w.Date.Year))
	writeInt(int64(w.Date.Month))
	writeInt(int64(w.Date.Day))
	writeInt(int64(w.RNGState))

	for _, tag := range w.SortedCountryTags() {
		c := w.Countries[tag]
		writeString(string(tag))
		writeInt(c.Treasury.Raw())
		writeInt(c.Manpower.Raw())
		writeInt(int64(c.Stability))
		writeInt(c.Prestige.Raw())
		writeInt(c.AdmMana.Raw())
		writeInt(c.DipMana.Raw())
		writeInt(c.MilMana.Raw())
	}

	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		writeInt(int64(pid))
		writeString(string(p.Owner))
		writeString(p.Religion)
		writeString(p.Culture)
		writeInt(int64(p.TradeGood))
		writeInt(p.BaseTax.Raw())
		writeInt(p.BaseProduction.Raw())
		writeInt(p.BaseManpower.Raw())
		writeInt(int64(p.FortLevel))
		if p.IsSea {
			writeInt(1)
		} else {
			writeInt(0)
		}
	}

	for _, aid := range w.SortedArmyIDs() {
		a := w.Armies[aid]
		writeInt(int64(aid))
		writeString(string(a.Owner))
		writeInt(int64(a.Location))
		if a.Movement != nil {
			for _, step := range a.Movement.Path {
				writeInt(int64(step))
			}
		}
		if a.EmbarkedOn != nil {
			writeInt(int64(*a.EmbarkedOn))
		}
		for _, r := range a.Regiments {
			writeInt(int64(r.Type))
			writeInt(r.Strength.Raw())
		}
	}

	for _, fid := range w.SortedFleetIDs() {
		f := w.Fleets[fid]
		writeInt(int64(fid))
		writeString(string(f.Owner))
		writeInt(int64(f.Location))
	}

	for _, wid := range w.Diplomacy.SortedWarIDs() {
		war := w.Diplomacy.Wars[wid]
		writeInt(int64(wid))
		for _, a := range war.Attackers {
			writeString(string(a))
		}
		for _, d := range war.Defenders {
			writeString(string(d))
		}
	}

	for _, pair := range sortedRelationPairs(w) {
		writeString(string(pair.A))
		writeString(string(pair.B))
		writeInt(int64(w.Diplomacy.Relations[pair]))
	}

	return h.Sum64()
}

func sortedRelationPairs(w *worldstate.WorldState) []worldstate.TagPair {
	out := make([]worldstate.TagPair, 0, len(w.Diplomacy.Relations))
	for pair := range w.Diplomacy.Relations {
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
