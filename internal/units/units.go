// Package units converts the raw figures returned by the routing service
// (meters, milliseconds) into the values shown to users.
// All functions are pure and total.
package units

import (
	"fmt"
	"math"
	"strings"
)

const (
	// metersPerKilometer converts meters to kilometers.
	metersPerKilometer = 1000.0

	// metersPerMile is the divisor used for mile conversion. It is 1609.34
	// rather than the more precise 1609.344: every summary and export this
	// project has ever produced used 1609.34, and changing it would change
	// those strings. Do not "fix" this constant.
	metersPerMile = 1609.34

	millisPerMinute = 60_000.0
)

// UnitPreference selects the distance unit for one run. Every distance in a
// run, the total and each instruction, uses the same preference.
type UnitPreference string

const (
	UnitKilometers UnitPreference = "km"
	UnitMiles      UnitPreference = "mi"
)

// DefaultUnit is used when the user provides no (or an invalid) choice.
const DefaultUnit = UnitKilometers

// IsValid reports whether the preference is a known unit.
func (u UnitPreference) IsValid() bool {
	switch u {
	case UnitKilometers, UnitMiles:
		return true
	default:
		return false
	}
}

// Label is the human-readable unit label used in tables ("km" or "miles").
func (u UnitPreference) Label() string {
	if u == UnitMiles {
		return "miles"
	}
	return "km"
}

// ParseUnit normalizes a user-supplied unit string. Unknown input falls back
// to kilometers; ok is false so callers can warn.
func ParseUnit(s string) (u UnitPreference, ok bool) {
	u = UnitPreference(strings.ToLower(strings.TrimSpace(s)))
	if u.IsValid() {
		return u, true
	}
	return DefaultUnit, false
}

// Distance converts meters into the preferred unit and returns the converted
// value with its label.
func Distance(meters float64, unit UnitPreference) (value float64, label string) {
	if unit == UnitMiles {
		return meters / metersPerMile, unit.Label()
	}
	return meters / metersPerKilometer, UnitKilometers.Label()
}

// MilesToMeters and KilometersToMeters invert Distance; used by tests and by
// callers that accept user-entered distances.
func MilesToMeters(miles float64) float64 { return miles * metersPerMile }

// KilometersToMeters is the inverse of the kilometer conversion.
func KilometersToMeters(km float64) float64 { return km * metersPerKilometer }

// Minutes converts milliseconds to minutes rounded to one decimal place.
func Minutes(ms int64) float64 {
	return math.Round(float64(ms)/millisPerMinute*10) / 10
}

// HoursMinutes splits milliseconds into whole hours and leftover whole
// minutes, truncating seconds.
func HoursMinutes(ms int64) (hours, minutes int) {
	totalMinutes := int(float64(ms) / millisPerMinute)
	return totalMinutes / 60, totalMinutes % 60
}

// FormatDuration renders a duration as "2h 5m", or "5 minutes" when the hour
// component is zero.
func FormatDuration(ms int64) string {
	hours, minutes := HoursMinutes(ms)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// FormatDistance renders a converted distance with two decimals and its
// label, e.g. "10.00 km" or "6.21 miles".
func FormatDistance(meters float64, unit UnitPreference) string {
	value, label := Distance(meters, unit)
	return fmt.Sprintf("%.2f %s", value, label)
}
