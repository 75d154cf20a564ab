// Package weather fetches a short current-conditions summary for a
// coordinate. Weather is decorative, not load-bearing: a failed lookup yields
// the Unavailable placeholder instead of an error, so routing is never
// blocked by a weather outage.
package weather

import (
	"context"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

// Summary is a formatted one-line weather description, e.g.
// "Clear sky, 🌡 15°C, 💨 5 m/s".
type Summary string

// Unavailable is the placeholder returned whenever a lookup fails for any
// reason. Its exact text appears in summary tables and exports.
const Unavailable Summary = "Weather data unavailable"

// Provider resolves a coordinate to a current-conditions summary.
// Implementations never return an error; degraded results are expressed as
// Unavailable.
type Provider interface {
	Current(ctx context.Context, point geo.LatLng) Summary
}
