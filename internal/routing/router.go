package routing

import (
	"context"
	"fmt"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

// TravelMode is the mode of transport used to compute a route. The remote
// service defines the valid set; an unsupported mode fails fast in the client
// instead of being silently coerced.
type TravelMode string

const (
	ModeCar        TravelMode = "car"
	ModeBike       TravelMode = "bike"
	ModeFoot       TravelMode = "foot"
	ModeMotorcycle TravelMode = "motorcycle"
)

// DefaultMode is used when the user provides no (or an invalid) choice.
const DefaultMode = ModeCar

// IsValid reports whether the mode is one the routing service accepts.
func (m TravelMode) IsValid() bool {
	switch m {
	case ModeCar, ModeBike, ModeFoot, ModeMotorcycle:
		return true
	default:
		return false
	}
}

// Request holds the endpoints and travel mode for a route calculation.
// Coordinates are passed in a fixed order: origin first, then destination.
type Request struct {
	Origin      geo.LatLng
	Destination geo.LatLng
	Mode        TravelMode
}

// Instruction is a single turn-by-turn step. Instructions arrive in
// route-following order and that order is preserved exactly.
type Instruction struct {
	Text           string
	DistanceMeters float64
}

// Route is the result of one routing call. It is produced atomically and
// never mutated afterwards.
type Route struct {
	// DistanceMeters is the total route distance in meters.
	DistanceMeters float64

	// TimeMillis is the total travel time in milliseconds.
	TimeMillis int64

	// Points is the route geometry in longitude-first order, exactly as
	// received. Renderers must go through Points.LatLngs() to flip the axis
	// order; handing the raw pairs to a lat-first consumer is the classic
	// transposition bug this type exists to prevent.
	Points geo.Polyline

	// Instructions are the turn-by-turn steps, possibly empty.
	Instructions []Instruction

	// Alternatives is how many candidate paths the service returned. Only the
	// first is used, but the count is kept so callers can tell that
	// alternatives existed.
	Alternatives int
}

// Router calculates a route between two geographic points.
type Router interface {
	// Route returns the first candidate path for req.
	//
	// Errors:
	//   - *NoPathError when the response carries no usable path (structural
	//     payload problem, not a transport one).
	//   - any other error for invalid modes, network failures or non-2xx
	//     responses.
	Route(ctx context.Context, req Request) (*Route, error)
}

// NoPathError is returned when the routing service answered successfully but
// the payload contained no candidate path.
type NoPathError struct {
	Req Request
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("routing: no path from %s to %s (mode %s)",
		e.Req.Origin, e.Req.Destination, e.Req.Mode)
}
