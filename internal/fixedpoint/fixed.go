// Package fixedpoint provides a deterministic signed fixed-point number used
// for every game-affecting quantity in the simulation core. It replaces
// float64 inside the tick loop: the domain is bounded and every operation is
// reproducible bit-for-bit across platforms.
package fixedpoint

import "log/slog"

// Scale is the number of raw units per whole unit (four decimal places).
const Scale = 10_000

// Fixed is a signed fixed-point number with a raw int64 representation.
// The zero value is zero.
type Fixed struct {
	raw int64
}

// Zero, One are the most common constants.
var (
	Zero = Fixed{}
	One  = Fixed{raw: Scale}
)

// FromRaw builds a Fixed directly from its scaled integer representation.
func FromRaw(raw int64) Fixed { return Fixed{raw: raw} }

// Raw returns the underlying scaled integer.
func (f Fixed) Raw() int64 { return f.raw }

// FromInt builds a Fixed from a whole number.
func FromInt(n int64) Fixed { return Fixed{raw: n * Scale} }

// FromFloat64 builds a Fixed from a float64. Only valid at data-load time or
// to convert a package-level design constant once, in a var initializer —
// never call this per tick, per entity, or anywhere in the hot per-day/
// per-month subsystem loops.
func FromFloat64(v float64) Fixed { return Fixed{raw: int64(v*Scale + sign(v)*0.5)} }

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Add returns f + g.
func (f Fixed) Add(g Fixed) Fixed { return Fixed{raw: f.raw + g.raw} }

// Sub returns f - g.
func (f Fixed) Sub(g Fixed) Fixed { return Fixed{raw: f.raw - g.raw} }

// Neg returns -f.
func (f Fixed) Neg() Fixed { return Fixed{raw: -f.raw} }

// Mul returns f * g, rounding toward zero.
func (f Fixed) Mul(g Fixed) Fixed {
	return Fixed{raw: (f.raw * g.raw) / Scale}
}

// Div returns f / g. Division by zero returns Zero and logs at debug level —
// this occurs normally for empty trade nodes and is not an error condition.
func (f Fixed) Div(g Fixed) Fixed {
	if g.raw == 0 {
		slog.Debug("fixedpoint: division by zero", "numerator", f.raw)
		return Zero
	}
	return Fixed{raw: (f.raw * Scale) / g.raw}
}

// Min returns the smaller of f and g.
func (f Fixed) Min(g Fixed) Fixed {
	if f.raw < g.raw {
		return f
	}
	return g
}

// Max returns the larger of f and g.
func (f Fixed) Max(g Fixed) Fixed {
	if f.raw > g.raw {
		return f
	}
	return g
}

// Clamp restricts f to [lo, hi].
func (f Fixed) Clamp(lo, hi Fixed) Fixed {
	return f.Max(lo).Min(hi)
}

// RoundToInt rounds to the nearest integer, ties away from zero.
func (f Fixed) RoundToInt() int64 {
	if f.raw >= 0 {
		return (f.raw + Scale/2) / Scale
	}
	return -((-f.raw + Scale/2) / Scale)
}

// Int truncates toward zero, discarding the fractional part.
func (f Fixed) Int() int64 { return f.raw / Scale }

// ToFloat64 converts to float64. Only for display/logging or test
// assertions — never feed the result back into a tick computation;
// comparisons and arithmetic that affect state stay in Fixed.
func (f Fixed) ToFloat64() float64 { return float64(f.raw) / Scale }

// Cmp returns -1, 0, 1 comparing f to g.
func (f Fixed) Cmp(g Fixed) int {
	switch {
	case f.raw < g.raw:
		return -1
	case f.raw > g.raw:
		return 1
	default:
		return 0
	}
}

func (f Fixed) LessThan(g Fixed) bool    { return f.raw < g.raw }
func (f Fixed) LessOrEqual(g Fixed) bool { return f.raw <= g.raw }
func (f Fixed) GreaterThan(g Fixed) bool { return f.raw > g.raw }
func (f Fixed) GreaterOrEqual(g Fixed) bool { return f.raw >= g.raw }
func (f Fixed) IsZero() bool             { return f.raw == 0 }
func (f Fixed) IsPositive() bool         { return f.raw > 0 }
func (f Fixed) IsNegative() bool         { return f.raw < 0 }

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f.raw < 0 {
		return Fixed{raw: -f.raw}
	}
	return f
}

// Sum adds a slice of Fixed values.
func Sum(values ...Fixed) Fixed {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// String formats with up to four decimal places, trimming trailing zeros.
func (f Fixed) String() string {
	neg := f.raw < 0
	raw := f.raw
	if neg {
		raw = -raw
	}
	whole := raw / Scale
	frac := raw % Scale
	out := itoa(whole)
	if frac != 0 {
		fracStr := itoaPad(frac, 4)
		for len(fracStr) > 0 && fracStr[len(fracStr)-1] == '0' {
			fracStr = fracStr[:len(fracStr)-1]
		}
		out += "." + fracStr
	}
	if neg {
		out = "-" + out
	}
	return out
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func itoaPad(n int64, width int) string {
	s := itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
