// Package money provides the fixed-point decimal arithmetic used by every
// compliance engine. All monetary and hour quantities route through this
// package; binary floating point is never used for compliance arithmetic,
// so repeated evaluation of the same facts always reproduces the same
// figures byte-for-byte.
//
// Quantities are decimal.Decimal values (scaled integers) held at two
// fractional digits for both currency and hours. Derived quantities are
// rounded half-up at the computation boundary, never mid-expression.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scales for the two quantity kinds. Both are minimums: inputs may carry
// more precision, but every derived figure is rounded to these scales
// before it leaves an engine.
const (
	CurrencyScale int32 = 2
	HoursScale    int32 = 2
)

// Common multipliers for statutory pay computation.
var (
	Zero         = decimal.Zero
	One          = decimal.New(1, 0)
	RateRegular  = decimal.New(1, 0)   // 1.0x
	RateTimeHalf = decimal.New(15, -1) // 1.5x
	RateDouble   = decimal.New(2, 0)   // 2.0x
)

// D builds a decimal from a scaled integer, e.g. D(1550, -2) == 15.50.
// Convenience for rule thresholds and tests.
func D(value int64, exp int32) decimal.Decimal {
	return decimal.New(value, exp)
}

// Parse converts a decimal string ("15.50") into a decimal value.
// Returns an error for anything that is not an exact decimal literal;
// float formatting artifacts ("15.500000001") are accepted as-is and
// preserved, never silently rounded.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustParse is like Parse but panics on error. Use only for literals in
// tests and rule-pack defaults that are known to be valid.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// RoundCurrency rounds a derived monetary figure to CurrencyScale using
// round-half-up. Applied once per derived figure, at the point the figure
// becomes an output, so intermediate products keep full precision.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// RoundHours rounds a derived hour figure to HoursScale, round-half-up.
func RoundHours(d decimal.Decimal) decimal.Decimal {
	return d.Round(HoursScale)
}

// Pay computes hours x rate x multiplier rounded to currency scale.
// The single rounding point keeps tier components reproducible: summing
// the rounded components equals rounding the summed raw products only
// when each component is rounded exactly once, which this guarantees.
func Pay(hours, rate, multiplier decimal.Decimal) decimal.Decimal {
	return RoundCurrency(hours.Mul(rate).Mul(multiplier))
}

// FormatCurrency renders a monetary value with exactly CurrencyScale
// fractional digits ("220.00"). Used for canonical ledger payloads where
// the textual form must be stable across runs.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(CurrencyScale)
}

// FormatHours renders an hour value with exactly HoursScale fractional
// digits.
func FormatHours(d decimal.Decimal) string {
	return d.StringFixed(HoursScale)
}

// Clamp returns d bounded to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
