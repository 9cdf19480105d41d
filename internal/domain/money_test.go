package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		want   Cents
	}{
		{"whole units", 12.0, 1200},
		{"exact cents", 0.25, 25},
		{"sub-cent fraction floors", 0.019, 1},
		{"floors not rounds", 9.999, 999},
		{"zero", 0, 0},
		{"large amount", 1_000_000.5, 100_000_050},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CentsFromFloat(tc.amount))
		})
	}
}

func TestCentsFloatRoundTrip(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 12.34, Cents(1234).Float(), 1e-9)
	assert.InDelta(t, 0.01, Cents(1).Float(), 1e-9)
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12", Cents(1200).String())
	assert.Equal(t, "12.34", Cents(1234).String())
	assert.Equal(t, "0.05", Cents(5).String())

	// Negative amounts keep their sign even below one currency unit, where
	// the truncated integer part alone would read as zero.
	assert.Equal(t, "-12", Cents(-1200).String())
	assert.Equal(t, "-12.34", Cents(-1234).String())
	assert.Equal(t, "-0.50", Cents(-50).String())
	assert.Equal(t, "-0.05", Cents(-5).String())
}
