package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse_Valid(t *testing.T) {
	d, err := Parse("15.50")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !d.Equal(decimal.New(1550, -2)) {
		t.Errorf("Parse(15.50) = %s, want 15.50", d)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "1.2.3", "$20"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestRoundCurrency_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},  // half rounds up
		{"1.004", "1.00"},  // below half rounds down
		{"1.015", "1.02"},  // half rounds up, not banker's
		{"1.025", "1.03"},  // half rounds up, not banker's
		{"219.996", "220.00"},
		{"0.00", "0.00"},
	}
	for _, tt := range tests {
		got := FormatCurrency(RoundCurrency(MustParse(tt.in)))
		if got != tt.want {
			t.Errorf("RoundCurrency(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPay_SingleRounding(t *testing.T) {
	// 2h at $20.00 x 1.5 = $60.00
	got := Pay(MustParse("2"), MustParse("20.00"), RateTimeHalf)
	if FormatCurrency(got) != "60.00" {
		t.Errorf("Pay(2, 20, 1.5) = %s, want 60.00", got)
	}

	// Fractional hours: 0.25h at $33.33 x 2.0 = 16.665 -> 16.67 (half up)
	got = Pay(MustParse("0.25"), MustParse("33.33"), RateDouble)
	if FormatCurrency(got) != "16.67" {
		t.Errorf("Pay(0.25, 33.33, 2.0) = %s, want 16.67", got)
	}
}

func TestPay_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style drift is impossible with scaled integers: summing
	// ten 0.10-hour slices at $1/hr must be exactly $1.00.
	sum := Zero
	slice := MustParse("0.10")
	for i := 0; i < 10; i++ {
		sum = sum.Add(Pay(slice, One, RateRegular))
	}
	if FormatCurrency(sum) != "1.00" {
		t.Errorf("sum of ten 0.10h slices = %s, want 1.00", sum)
	}
}

func TestMinMaxClamp(t *testing.T) {
	a, b := MustParse("7.25"), MustParse("16.50")
	if !Min(a, b).Equal(a) {
		t.Errorf("Min(%s, %s) = %s", a, b, Min(a, b))
	}
	if !Max(a, b).Equal(b) {
		t.Errorf("Max(%s, %s) = %s", a, b, Max(a, b))
	}
	if !Clamp(MustParse("20"), a, b).Equal(b) {
		t.Errorf("Clamp above hi should return hi")
	}
	if !Clamp(MustParse("1"), a, b).Equal(a) {
		t.Errorf("Clamp below lo should return lo")
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(MustParse("8")); got != "8.00" {
		t.Errorf("FormatHours(8) = %s, want 8.00", got)
	}
}
