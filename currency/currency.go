// Package currency implements the fixed-point amounts carried by transactions.
//
// A Currency is an int64 count of 1/10000 units, which covers roughly ±922 trillion
// with four decimal digits. Arithmetic never wraps: operations that would leave the
// int64 range return ErrOverflow.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits a Currency carries.
const Precision = 4

const scale int64 = 10000

var (
	ErrInvalidFormat = errors.New("invalid currency format")
	ErrOverflow      = errors.New("currency overflow")
)

type Currency struct {
	units int64
}

var Zero = Currency{}

// New returns the Currency holding the given number of 1/10000 units.
func New(units int64) Currency {
	return Currency{units: units}
}

// Parse reads an optionally signed integer with up to Precision fractional digits,
// e.g. "3", "-1.5" or "0.0001".
func Parse(s string) (Currency, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	negative := strings.HasPrefix(whole, "-")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Zero, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	var fraction int64
	if hasFrac {
		if len(frac) > Precision || !isDigits(frac) {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		fraction, err = strconv.ParseInt(frac+strings.Repeat("0", Precision-len(frac)), 10, 64)
		if err != nil {
			return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}

	if units > math.MaxInt64/scale || units < math.MinInt64/scale {
		return Zero, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	units *= scale

	// The sign comes from the text so that "-0.5" keeps it.
	if negative {
		if units < math.MinInt64+fraction {
			return Zero, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return Currency{units: units - fraction}, nil
	}
	if units > math.MaxInt64-fraction {
		return Zero, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return Currency{units: units + fraction}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Currency {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Units returns the raw number of 1/10000 units.
func (c Currency) Units() int64 {
	return c.units
}

// Add returns c + other, or ErrOverflow if the sum leaves the int64 range.
func (c Currency) Add(other Currency) (Currency, error) {
	if (other.units > 0 && c.units > math.MaxInt64-other.units) ||
		(other.units < 0 && c.units < math.MinInt64-other.units) {
		return Zero, ErrOverflow
	}
	return Currency{units: c.units + other.units}, nil
}

// Sub returns c - other, or ErrOverflow if the difference leaves the int64 range.
func (c Currency) Sub(other Currency) (Currency, error) {
	if (other.units < 0 && c.units > math.MaxInt64+other.units) ||
		(other.units > 0 && c.units < math.MinInt64+other.units) {
		return Zero, ErrOverflow
	}
	return Currency{units: c.units - other.units}, nil
}

// SaturatingAdd clamps the sum to the representable range instead of failing.
func (c Currency) SaturatingAdd(other Currency) Currency {
	sum, err := c.Add(other)
	if err == nil {
		return sum
	}
	if other.units > 0 {
		return Currency{units: math.MaxInt64}
	}
	return Currency{units: math.MinInt64}
}

// Neg returns -c, or ErrOverflow for the smallest value, which has no positive counterpart.
func (c Currency) Neg() (Currency, error) {
	if c.units == math.MinInt64 {
		return Zero, ErrOverflow
	}
	return Currency{units: -c.units}, nil
}

// Cmp returns -1, 0 or +1 depending on whether c is less than, equal to or greater than other.
func (c Currency) Cmp(other Currency) int {
	switch {
	case c.units < other.units:
		return -1
	case c.units > other.units:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether c is exactly zero.
func (c Currency) IsZero() bool {
	return c.units == 0
}

// IsNegative reports whether c is below zero.
func (c Currency) IsNegative() bool {
	return c.units < 0
}

// String renders the integer part, a dot and exactly Precision fractional digits.
func (c Currency) String() string {
	sign := ""
	magnitude := uint64(c.units)
	if c.units < 0 {
		sign = "-"
		magnitude = uint64(-(c.units + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%04d", sign, magnitude/uint64(scale), magnitude%uint64(scale))
}

// Decimal converts c for consumers that work with arbitrary precision or floats.
func (c Currency) Decimal() decimal.Decimal {
	return decimal.New(c.units, -Precision)
}

// MarshalText encodes c in its String form.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes text with Parse and leaves c untouched on error.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
