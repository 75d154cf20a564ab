package units

import (
	"math"
	"testing"
)

func TestDistance_Kilometers(t *testing.T) {
	value, label := Distance(10000, UnitKilometers)
	if value != 10 {
		t.Errorf("value = %v, want 10", value)
	}
	if label != "km" {
		t.Errorf("label = %q, want km", label)
	}
}

func TestDistance_Miles(t *testing.T) {
	value, label := Distance(10000, UnitMiles)
	want := 10000 / 1609.34
	if value != want {
		t.Errorf("value = %v, want %v", value, want)
	}
	if label != "miles" {
		t.Errorf("label = %q, want miles", label)
	}
}

func TestDistance_ExactDivisors(t *testing.T) {
	// The conversion must be a plain division by the fixed divisors for
	// every non-negative input.
	for _, meters := range []float64{0, 1, 100, 1609.34, 10000, 123456.789} {
		if got, _ := Distance(meters, UnitMiles); got != meters/1609.34 {
			t.Errorf("miles(%v) = %v, want %v", meters, got, meters/1609.34)
		}
		if got, _ := Distance(meters, UnitKilometers); got != meters/1000 {
			t.Errorf("km(%v) = %v, want %v", meters, got, meters/1000)
		}
	}
}

func TestDistance_RoundTrip(t *testing.T) {
	// Converting and converting back must recover the original value within
	// floating-point tolerance.
	for _, meters := range []float64{1, 500, 10000, 98765.4321} {
		miles, _ := Distance(meters, UnitMiles)
		if back := MilesToMeters(miles); math.Abs(back-meters) > 1e-9*meters {
			t.Errorf("miles round trip: %v -> %v", meters, back)
		}
		km, _ := Distance(meters, UnitKilometers)
		if back := KilometersToMeters(km); math.Abs(back-meters) > 1e-9*meters {
			t.Errorf("km round trip: %v -> %v", meters, back)
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		ms   int64
		want float64
	}{
		{0, 0},
		{600000, 10},
		{90000, 1.5},
		{61234, 1.0},
		{65999, 1.1},
	}
	for _, tt := range tests {
		if got := Minutes(tt.ms); got != tt.want {
			t.Errorf("Minutes(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestHoursMinutes(t *testing.T) {
	tests := []struct {
		ms        int64
		wantHours int
		wantMins  int
	}{
		{0, 0, 0},
		{600000, 0, 10},
		{3600000, 1, 0},
		{7200000, 2, 0},
		{7380000, 2, 3},
		{3659999, 1, 0}, // seconds truncate, never round up
	}
	for _, tt := range tests {
		h, m := HoursMinutes(tt.ms)
		if h != tt.wantHours || m != tt.wantMins {
			t.Errorf("HoursMinutes(%d) = (%d, %d), want (%d, %d)",
				tt.ms, h, m, tt.wantHours, tt.wantMins)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{600000, "10 minutes"}, // hour component omitted when zero
		{7200000, "2h 0m"},
		{7380000, "2h 3m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(10000, UnitKilometers); got != "10.00 km" {
		t.Errorf("km format = %q, want %q", got, "10.00 km")
	}
	if got := FormatDistance(10000, UnitMiles); got != "6.21 miles" {
		t.Errorf("miles format = %q, want %q", got, "6.21 miles")
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in     string
		want   UnitPreference
		wantOK bool
	}{
		{"km", UnitKilometers, true},
		{"mi", UnitMiles, true},
		{" MI ", UnitMiles, true},
		{"", UnitKilometers, false},
		{"furlongs", UnitKilometers, false},
	}
	for _, tt := range tests {
		got, ok := ParseUnit(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseUnit(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
