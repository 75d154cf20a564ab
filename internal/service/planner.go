// Package service orchestrates the route-planning pipeline:
// geocode both endpoints, fetch weather for both (when configured), then
// fetch the route. The pipeline fails closed: if either endpoint cannot be
// resolved, no routing or weather call is made.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/geocode"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/weather"
)

// PlaceNotFoundError reports that one of the trip endpoints did not resolve.
// It wraps the underlying *geocode.NotFoundError, so callers can use either
// errors.As on this type (to learn which endpoint) or on the inner one.
type PlaceNotFoundError struct {
	// Endpoint is "origin" or "destination".
	Endpoint string
	Err      *geocode.NotFoundError
}

func (e *PlaceNotFoundError) Error() string {
	return fmt.Sprintf("plan: %s: %v", e.Endpoint, e.Err)
}

func (e *PlaceNotFoundError) Unwrap() error { return e.Err }

// TripRequest is the user's trip as entered: free-text endpoints and a mode.
type TripRequest struct {
	Origin      string
	Destination string
	Mode        routing.TravelMode
}

// Trip is the fully assembled result of one planning run. All fields are set
// before Trip is returned and never mutated afterwards.
type Trip struct {
	OriginLabel      string
	DestinationLabel string
	Origin           geo.LatLng
	Destination      geo.LatLng
	Mode             routing.TravelMode
	Route            *routing.Route

	// Weather summaries are empty strings when the planner has no weather
	// provider, and the Unavailable placeholder when lookups failed.
	OriginWeather      weather.Summary
	DestinationWeather weather.Summary
}

// HasWeather reports whether weather lookups were performed for this trip.
func (t *Trip) HasWeather() bool {
	return t.OriginWeather != "" || t.DestinationWeather != ""
}

// Planner wires a Geocoder, a Router and an optional weather Provider into
// the planning pipeline.
type Planner struct {
	geocoder geocode.Geocoder
	router   routing.Router
	weather  weather.Provider // nil = weather disabled
}

// NewPlanner creates a Planner. weatherProvider may be nil, in which case
// trips carry no weather summaries.
//
//   - geocoder should be a *geocode.Cached wrapping a *geocode.Client for
//     production use, or any Geocoder implementation for testing.
//   - router should be a *routing.Cached wrapping a *routing.Client, or any
//     Router implementation for testing.
func NewPlanner(geocoder geocode.Geocoder, router routing.Router, weatherProvider weather.Provider) *Planner {
	return &Planner{
		geocoder: geocoder,
		router:   router,
		weather:  weatherProvider,
	}
}

// Plan resolves both endpoints, fetches weather for them (concurrently, since
// the two lookups are independent), and fetches the route.
//
// Errors:
//   - *PlaceNotFoundError when an endpoint does not resolve. No routing or
//     weather call is made in that case.
//   - *routing.NoPathError (wrapped) when the routing payload carried no path.
//   - a descriptive wrapped error for any other geocoding or routing failure.
//
// Weather failures never surface as errors; the provider substitutes its
// placeholder.
func (p *Planner) Plan(ctx context.Context, req TripRequest) (*Trip, error) {
	origin, err := p.geocoder.Geocode(ctx, req.Origin)
	if err != nil {
		return nil, wrapGeocodeErr("origin", err)
	}

	destination, err := p.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		return nil, wrapGeocodeErr("destination", err)
	}

	trip := &Trip{
		OriginLabel:      origin.Name,
		DestinationLabel: destination.Name,
		Origin:           origin.Point,
		Destination:      destination.Point,
		Mode:             req.Mode,
	}

	// Both endpoints resolved; weather and routing may now spend quota.
	if p.weather != nil {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			trip.OriginWeather = p.weather.Current(ctx, origin.Point)
		}()
		go func() {
			defer wg.Done()
			trip.DestinationWeather = p.weather.Current(ctx, destination.Point)
		}()
		wg.Wait()
	}

	route, err := p.router.Route(ctx, routing.Request{
		Origin:      origin.Point,
		Destination: destination.Point,
		Mode:        req.Mode,
	})
	if err != nil {
		return nil, fmt.Errorf("plan: route %q -> %q: %w", origin.Name, destination.Name, err)
	}
	trip.Route = route

	return trip, nil
}

func wrapGeocodeErr(endpoint string, err error) error {
	var nf *geocode.NotFoundError
	if errors.As(err, &nf) {
		return &PlaceNotFoundError{Endpoint: endpoint, Err: nf}
	}
	return fmt.Errorf("plan: geocode %s: %w", endpoint, err)
}
