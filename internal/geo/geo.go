// Package geo defines the coordinate types shared by the geocoding, routing,
// weather and map-rendering layers.
//
// Axis order is carried in the type, never in a convention: LatLng is
// latitude-first (what geocoders and weather APIs speak), LngLat is
// longitude-first (what GeoJSON-style route geometry speaks). Crossing from
// one to the other always goes through an explicit conversion method, so a
// transposed coordinate cannot silently survive a component boundary.
package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// LatLng is a WGS-84 point in latitude-first order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LngLat is a WGS-84 point in longitude-first (GeoJSON) order, as found in
// GraphHopper path geometry.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// ToLatLng flips a geometry point into latitude-first order.
func (p LngLat) ToLatLng() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lng}
}

// ToLngLat flips a point into longitude-first order.
func (p LatLng) ToLngLat() LngLat {
	return LngLat{Lng: p.Lng, Lat: p.Lat}
}

// String renders the point as "lat,lng", the format GraphHopper expects in
// its point query parameters.
func (p LatLng) String() string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

// ParseLatLng parses a "lat,lng" string.
func ParseLatLng(s string) (LatLng, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LatLng{}, fmt.Errorf("geo: invalid lat,lng format: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("geo: invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("geo: invalid longitude in %q: %w", s, err)
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

// Midpoint returns the arithmetic midpoint of two points. Good enough for
// centering a map view; not a geodesic midpoint.
func Midpoint(a, b LatLng) LatLng {
	return LatLng{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
}

// Polyline is an ordered route geometry in longitude-first order, exactly as
// received from the routing service. Order is significant and must be
// preserved.
type Polyline []LngLat

// LatLngs returns the geometry flipped to latitude-first order for consumers
// that draw on a map. This is the single place where route geometry changes
// axis order.
func (pl Polyline) LatLngs() []LatLng {
	out := make([]LatLng, len(pl))
	for i, p := range pl {
		out[i] = p.ToLatLng()
	}
	return out
}

// CellKey returns a geohash string identifying the cell containing p.
// Used as a spatial cache-key component.
func CellKey(p LatLng, precision uint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, precision)
}
