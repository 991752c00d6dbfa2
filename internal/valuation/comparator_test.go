package valuation

import (
	"errors"
	"math"
	"testing"
)

func TestCompare_Classifications(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic float64
		market    float64
		want      Classification
	}{
		{"well above market", 150, 100, Undervalued},
		{"just beyond band", 110.01, 100, Undervalued},
		{"at upper band edge", 110, 100, FairlyValued},
		{"equal", 100, 100, FairlyValued},
		{"at lower band edge", 90, 100, FairlyValued},
		{"just below band", 89.99, 100, Overvalued},
		{"well below market", 50, 100, Overvalued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := Compare(tt.intrinsic, tt.market)
			if err != nil {
				t.Fatalf("Compare(%v, %v): %v", tt.intrinsic, tt.market, err)
			}
			if verdict.Classification != tt.want {
				t.Errorf("Compare(%v, %v) = %q, want %q", tt.intrinsic, tt.market, verdict.Classification, tt.want)
			}
		})
	}
}

func TestCompare_RelativePricePct(t *testing.T) {
	verdict, err := Compare(100, 110)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if math.Abs(verdict.RelativePricePct-10.0) > 1e-9 {
		t.Errorf("RelativePricePct = %v, want 10.0", verdict.RelativePricePct)
	}

	verdict, err = Compare(100, 85)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if math.Abs(verdict.RelativePricePct-(-15.0)) > 1e-9 {
		t.Errorf("RelativePricePct = %v, want -15.0", verdict.RelativePricePct)
	}
}

func TestCompare_CarriesInputs(t *testing.T) {
	verdict, err := Compare(101.06, 95.50)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if verdict.IntrinsicValue != 101.06 || verdict.MarketPrice != 95.50 {
		t.Errorf("verdict inputs = (%v, %v), want (101.06, 95.50)", verdict.IntrinsicValue, verdict.MarketPrice)
	}
}

func TestCompare_Unavailable(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic float64
		market    float64
	}{
		{"zero intrinsic", 0, 100},
		{"negative intrinsic", -5, 100},
		{"NaN intrinsic", math.NaN(), 100},
		{"zero market", 100, 0},
		{"negative market", 100, -5},
		{"infinite market", 100, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := Compare(tt.intrinsic, tt.market)
			if !errors.Is(err, ErrValuationUnavailable) {
				t.Errorf("error = %v, want ErrValuationUnavailable", err)
			}
			if verdict != nil {
				t.Errorf("verdict = %+v, want nil", verdict)
			}
		})
	}
}
