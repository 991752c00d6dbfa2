package common

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{101.06, "$101.06"},
		{1234.56, "$1,234.56"},
		{1234567.89, "$1,234,567.89"},
		{-42.10, "-$42.10"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(2.55); got != "+$2.55" {
		t.Errorf("FormatSignedMoney(2.55) = %q, want +$2.55", got)
	}
	if got := FormatSignedMoney(-2.55); got != "-$2.55" {
		t.Errorf("FormatSignedMoney(-2.55) = %q, want -$2.55", got)
	}
}

func TestFormatSignedPct(t *testing.T) {
	if got := FormatSignedPct(5.8168); got != "+5.82%" {
		t.Errorf("FormatSignedPct(5.8168) = %q, want +5.82%%", got)
	}
	if got := FormatSignedPct(-1.0567); got != "-1.06%" {
		t.Errorf("FormatSignedPct(-1.0567) = %q, want -1.06%%", got)
	}
}
