package analysis

import (
	"math"
	"testing"
)

func TestKellyFraction(t *testing.T) {
	tests := []struct {
		name        string
		pWin        float64
		decimalOdds float64
		expected    float64
	}{
		{
			name:        "55% at even money",
			pWin:        0.55,
			decimalOdds: 2.0,
			expected:    0.10, // edge = 0.55*2-1 = 0.10, b = 1.0
		},
		{
			name:        "40% at 3.0",
			pWin:        0.40,
			decimalOdds: 3.0,
			expected:    0.10, // edge = 0.40*3-1 = 0.20, b = 2.0
		},
		{
			name:        "Certain win",
			pWin:        1.0,
			decimalOdds: 1.5,
			expected:    1.0,
		},
		{
			name:        "Fair price, no edge",
			pWin:        0.50,
			decimalOdds: 2.0,
			expected:    0,
		},
		{
			name:        "Negative edge",
			pWin:        0.45,
			decimalOdds: 2.0,
			expected:    0,
		},
		{
			name:        "Invalid odds",
			pWin:        0.60,
			decimalOdds: 1.0,
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KellyFraction(tt.pWin, tt.decimalOdds)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("KellyFraction(%v, %v) = %v, want %v",
					tt.pWin, tt.decimalOdds, got, tt.expected)
			}
		})
	}
}

func TestKellyFractionRange(t *testing.T) {
	// Positive-edge results must stay in (0, 1].
	for _, p := range []float64{0.01, 0.25, 0.5, 0.75, 0.99, 1.0} {
		for _, d := range []float64{1.1, 1.5, 2.0, 3.5, 10.0} {
			got := KellyFraction(p, d)
			if p*d <= 1 {
				if got != 0 {
					t.Errorf("KellyFraction(%v, %v) = %v, want 0 with no edge", p, d, got)
				}
				continue
			}
			if got <= 0 || got > 1 {
				t.Errorf("KellyFraction(%v, %v) = %v, want in (0, 1]", p, d, got)
			}
		}
	}
}

func TestStakeSize(t *testing.T) {
	if got := StakeSize(1000, 0.10, 0); got != 100 {
		t.Errorf("StakeSize(1000, 0.10, 0) = %v, want 100", got)
	}
	if got := StakeSize(1000, 0.10, 25); got != 25 {
		t.Errorf("StakeSize(1000, 0.10, 25) = %v, want cap of 25", got)
	}
	if got := StakeSize(1000, 0, 0); got != 0 {
		t.Errorf("StakeSize with zero fraction = %v, want 0", got)
	}
	if got := StakeSize(0, 0.10, 0); got != 0 {
		t.Errorf("StakeSize with zero bankroll = %v, want 0", got)
	}
}
