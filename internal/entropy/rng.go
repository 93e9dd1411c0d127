// Package entropy provides the simulation's deterministic pseudo-random
// source. Unlike the teacher's networked random.org client, nothing here may
// touch the outside world: the core's RNG is part of WorldState and must
// replay identically given the same seed and the same sequence of draws.
// See design doc Section 4.1 (Determinism) and Section 5.
package entropy

// Source is a splitmix64 generator. It carries no process-global state — the
// 64-bit state word lives on WorldState and is threaded explicitly through
// every subsystem that draws randomness, in the fixed order the tick
// stepper calls them.
type Source struct {
	state uint64
}

// NewSource seeds a Source from a 64-bit seed.
func NewSource(seed uint64) *Source {
	return &Source{state: seed}
}

// FromState resumes a Source from a previously saved state word (e.g. when
// reloading WorldState.RNGState).
func FromState(state uint64) *Source {
	return &Source{state: state}
}

// State returns the current internal state word, to be persisted on
// WorldState.RNGState.
func (s *Source) State() uint64 { return s.state }

// Next draws the next 64-bit value and advances the state.
func (s *Source) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Intn returns a deterministic value in [0, n) for n > 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() % uint64(n))
}

// Float64 returns a deterministic value in [0, 1) with 53 bits of precision.
// Load-time and display use only — never feed this into a Fixed inside the
// tick loop; draw an int range with Intn and convert via fixedpoint instead.
func (s *Source) Float64() float64 {
	return float64(s.Next()>>11) / float64(1<<53)
}
