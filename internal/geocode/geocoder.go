package geocode

import (
	"context"
	"fmt"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

// Place is a resolved location: the coordinate plus the display name the
// geocoding service attached to it.
type Place struct {
	Name  string
	Point geo.LatLng
}

// Geocoder resolves a free-text place name to a coordinate.
type Geocoder interface {
	// Geocode returns the best match for query.
	//
	// Errors:
	//   - *NotFoundError when the service returned zero hits. This is a valid
	//     negative result (a user-input problem), distinguishable with
	//     errors.As from transport failures.
	//   - any other error for network failures, non-2xx responses, or
	//     structurally unexpected payloads.
	Geocode(ctx context.Context, query string) (Place, error)
}

// NotFoundError is returned when a query produced no hits.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("geocode: no results for %q", e.Query)
}
