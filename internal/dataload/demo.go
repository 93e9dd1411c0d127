package dataload

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
	"github.com/talonreach/dominion/internal/military"
	"github.com/talonreach/dominion/internal/worldstate"
)

// DemoConfig controls the synthetic world generator that cmd/dominion uses
// when -game-path is empty or loading the game data fails. It plays the role the
// teacher's world.GenConfig plays for hex-grid terrain generation, adapted
// to produce a province graph instead of a settlement/agent world.
type DemoConfig struct {
	Radius      int     // hex-grid radius; provinces = land hexes within it
	Seed        int64   // 0 = arbitrary fixed seed, for reproducible demos
	SeaLevel    float64 // elevation threshold below which a hex is ocean
	MountainLvl float64 // elevation threshold above which a hex is mountain
	NumCountries int    // number of starting countries to seed onto land provinces
}

// DefaultDemoConfig returns a modest-size demo world: a few hundred
// provinces, enough countries to exercise diplomacy and trade without
// overwhelming a quick run.
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Radius:       14,
		Seed:         1444,
		SeaLevel:     0.30,
		MountainLvl:  0.75,
		NumCountries: 8,
	}
}

type hexCoord struct{ Q, R int }

func (h hexCoord) neighbors() [6]hexCoord {
	dirs := [6]hexCoord{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}
	var out [6]hexCoord
	for i, d := range dirs {
		out[i] = hexCoord{h.Q + d.Q, h.R + d.R}
	}
	return out
}

type terrain uint8

const (
	terrainOcean terrain = iota
	terrainMountain
	terrainForest
	terrainPlains
)

// terrainDevelopment returns the (baseTax, baseProduction, baseManpower)
// starting development a land hex of the given terrain and elevation
// contributes — mountains skew toward production (mining), plains toward
// tax and manpower (farmland supports people), forest in between.
func terrainDevelopment(t terrain, elev float64) (tax, production, manpower float64) {
	switch t {
	case terrainMountain:
		return 1.0, 2.5 + elev, 1.0
	case terrainForest:
		return 1.5, 1.5, 1.5
	default: // plains
		return 2.5, 1.0, 2.0
	}
}

type placedProvince struct {
	coord hexCoord
	id    ids.ProvinceID
}

func deriveTerrain(elev float64, cfg DemoConfig) terrain {
	switch {
	case elev < cfg.SeaLevel:
		return terrainOcean
	case elev > cfg.MountainLvl:
		return terrainMountain
	case elev > (cfg.SeaLevel+cfg.MountainLvl)/2:
		return terrainForest
	default:
		return terrainPlains
	}
}

// GenerateDemo builds a playable synthetic world: a hex-grid province map
// derived from layered simplex noise (grounded on the teacher's
// world.Generate), an adjacency graph connecting every pair of neighboring
// land hexes, and NumCountries starting countries each owning and coring a
// contiguous seed province.
func GenerateDemo(cfg DemoConfig, startDate calendar.Date, rngSeed uint64) *Result {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1444
	}
	elevNoise := opensimplex.NewNormalized(seed)

	w := worldstate.New(startDate, rngSeed)
	adj := military.NewAdjacency()

	var land []placedProvince
	coordToID := make(map[hexCoord]ids.ProvinceID)
	nextID := ids.ProvinceID(1)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			s := -q - r
			if abs(q) > cfg.Radius || abs(r) > cfg.Radius || abs(s) > cfg.Radius {
				continue
			}
			coord := hexCoord{Q: q, R: r}
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0
			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)

			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			elev *= edgeFalloff

			t := deriveTerrain(elev, cfg)
			if t == terrainOcean {
				continue
			}

			id := nextID
			nextID++
			coordToID[coord] = id
			land = append(land, placedProvince{coord: coord, id: id})

			tax, production, manpower := terrainDevelopment(t, elev)
			p := worldstate.NewProvinceState()
			p.BaseTax = fixedpoint.FromFloat64(tax)
			p.BaseProduction = fixedpoint.FromFloat64(production)
			p.BaseManpower = fixedpoint.FromFloat64(manpower)
			w.Provinces[id] = p
		}
	}

	for _, pl := range land {
		for _, n := range pl.coord.neighbors() {
			nid, ok := coordToID[n]
			if !ok {
				continue
			}
			adj.AddEdge(pl.id, military.AdjEdge{To: nid, Kind: military.AdjacencyLand, Cost: fixedpoint.FromInt(military.BaseMoveCost)})
		}
	}

	seedCountries(w, land, cfg.NumCountries)

	return &Result{World: w, Adj: adj}
}

// seedCountries assigns NumCountries starting nations onto evenly-spaced
// land provinces, giving each its capital core and a starting treasury and
// mana so the demo is immediately playable.
func seedCountries(w *worldstate.WorldState, land []placedProvince, numCountries int) {
	if numCountries <= 0 || len(land) == 0 {
		return
	}
	if numCountries > len(land) {
		numCountries = len(land)
	}
	step := len(land) / numCountries

	for i := 0; i < numCountries; i++ {
		tag := demoTag(i)
		c := worldstate.NewCountryState()
		c.Treasury = fixedpoint.FromInt(100)
		c.Manpower = fixedpoint.FromInt(20)
		c.Stability = 0
		c.AdmMana = fixedpoint.FromInt(50)
		c.DipMana = fixedpoint.FromInt(50)
		c.MilMana = fixedpoint.FromInt(50)
		w.Countries[tag] = c

		idx := i * step
		if idx >= len(land) {
			idx = len(land) - 1
		}
		p := w.Provinces[land[idx].id]
		p.Owner = tag
		p.Controller = tag
		p.Cores[tag] = true
	}
}

// demoTag derives a deterministic three-letter tag ("AAA", "AAB", ...) for
// the i-th demo country, so GenerateDemo needs no name table.
func demoTag(i int) ids.Tag {
	a := byte('A' + (i/676)%26)
	b := byte('A' + (i/26)%26)
	c := byte('A' + i%26)
	return ids.Tag([]byte{a, b, c})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// octaveNoise samples n octaves of 2D simplex noise at (x, y), each octave
// at double the prior frequency and half the prior amplitude, normalized to
// roughly [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	var total, amplitude, maxAmplitude float64
	amplitude = 1
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		freq *= 2
	}
	if maxAmplitude == 0 {
		return 0
	}
	return total / maxAmplitude
}
