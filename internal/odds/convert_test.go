package odds

import (
	"math"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"Even underdog", 100, 2.0},
		{"Plus 150", 150, 2.5},
		{"Big underdog", 550, 6.5},
		{"Even favorite", -100, 2.0},
		{"Minus 200", -200, 1.5},
		{"Heavy favorite", -400, 1.25},
		{"Minus 110", -110, 100.0/110.0 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(intPtr(tt.american))
			if got == nil {
				t.Fatalf("ToDecimal(%d) = nil, want %v", tt.american, tt.expected)
			}
			if math.Abs(*got-tt.expected) > 1e-12 {
				t.Errorf("ToDecimal(%d) = %v, want %v", tt.american, *got, tt.expected)
			}
		})
	}
}

func TestToDecimalNil(t *testing.T) {
	if got := ToDecimal(nil); got != nil {
		t.Errorf("ToDecimal(nil) = %v, want nil", *got)
	}
}

func TestImplied(t *testing.T) {
	if got := Implied(2.0); got != 0.5 {
		t.Errorf("Implied(2.0) = %v, want 0.5", got)
	}
	if got := Implied(4.0); got != 0.25 {
		t.Errorf("Implied(4.0) = %v, want 0.25", got)
	}
	if got := Implied(0); got != 0 {
		t.Errorf("Implied(0) = %v, want 0", got)
	}
}

func TestFromPayloadValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"Float from JSON", float64(150), floatPtr(2.5)},
		{"Negative float", float64(-200), floatPtr(1.5)},
		{"String with plus", "+150", floatPtr(2.5)},
		{"Plain string", "-400", floatPtr(1.25)},
		{"Unicode minus", "−110", floatPtr(100.0/110.0 + 1)},
		{"Nil value", nil, nil},
		{"Empty string", "", nil},
		{"Garbage string", "EVEN?", nil},
		{"Zero", float64(0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromPayloadValue(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("FromPayloadValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-12 {
				t.Errorf("FromPayloadValue(%v) = %v, want %v", tt.in, *got, *tt.want)
			}
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
