package domain

import (
	"fmt"
	"math"
)

// Cents is the fixed-point currency unit used throughout the engine. One unit
// of display currency is 100 Cents. Keeping every amount integral avoids the
// float drift that plagues fractional balances.
type Cents int64

// CentsFromFloat converts a fractional currency amount to Cents, truncating
// toward negative infinity at the second decimal (floor(x*100), not
// round-half-up). A deposit of 0.019 therefore credits exactly 1 cent.
func CentsFromFloat(amount float64) Cents {
	return Cents(math.Floor(amount * 100))
}

// Float returns the amount as a fractional currency value. Intended for
// serialization at the presentation boundary only; internal arithmetic stays
// in Cents.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimals, omitting them when the amount
// is a whole currency unit.
func (c Cents) String() string {
	if c%100 == 0 {
		return fmt.Sprintf("%d", int64(c)/100)
	}
	// Integer division truncates toward zero, so -0.50 would lose its sign
	// without the explicit prefix.
	sign := ""
	if c < 0 && c > -100 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%02d", sign, int64(c)/100, abs64(int64(c)%100))
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
