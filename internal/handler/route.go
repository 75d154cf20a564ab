package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/units"
)

// routeJSON is the serialized form of a computed route. Geometry points are
// emitted as {lng, lat} objects so the axis order is named on the wire, never
// implied by array position.
type routeJSON struct {
	DistanceMeters float64           `json:"distance_meters"`
	Distance       string            `json:"distance"`
	TimeMillis     int64             `json:"time_millis"`
	Duration       string            `json:"duration"`
	Instructions   []instructionJSON `json:"instructions"`
	Points         []geo.LngLat      `json:"points"`
	Alternatives   int               `json:"alternatives"`
}

type instructionJSON struct {
	Text     string `json:"text"`
	Distance string `json:"distance"`
}

func newRouteJSON(route *routing.Route, unit units.UnitPreference) routeJSON {
	out := routeJSON{
		DistanceMeters: route.DistanceMeters,
		Distance:       units.FormatDistance(route.DistanceMeters, unit),
		TimeMillis:     route.TimeMillis,
		Duration:       units.FormatDuration(route.TimeMillis),
		Instructions:   make([]instructionJSON, len(route.Instructions)),
		Points:         route.Points,
		Alternatives:   route.Alternatives,
	}
	for i, in := range route.Instructions {
		out.Instructions[i] = instructionJSON{
			Text:     in.Text,
			Distance: units.FormatDistance(in.DistanceMeters, unit),
		}
	}
	return out
}

// GetRoute handles GET /api/v1/route
//
// Query params:
//   - from (required) "lat,lng": origin coordinate
//   - to   (required) "lat,lng": destination coordinate
//   - mode (optional) travel mode; defaults to car
//   - unit (optional) km|mi; defaults to km
//
// Response 200: routeJSON.
// Response 400: malformed coordinates or unsupported mode.
// Response 404: no path exists between the endpoints.
// Response 502: the routing service failed.
func (h *Handler) GetRoute(c *gin.Context) {
	fromRaw, ok := requireQuery(c, "from")
	if !ok {
		return
	}
	toRaw, ok := requireQuery(c, "to")
	if !ok {
		return
	}

	from, err := geo.ParseLatLng(fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be lat,lng"})
		return
	}
	to, err := geo.ParseLatLng(toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be lat,lng"})
		return
	}

	mode, ok := parseMode(c)
	if !ok {
		return
	}
	unit, _ := units.ParseUnit(c.DefaultQuery("unit", string(units.DefaultUnit)))

	route, err := h.router.Route(c.Request.Context(), routing.Request{
		Origin:      from,
		Destination: to,
		Mode:        mode,
	})
	if err != nil {
		var np *routing.NoPathError
		if errors.As(err, &np) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no path between the given points"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "routing failed"})
		return
	}

	c.JSON(http.StatusOK, newRouteJSON(route, unit))
}

// PlanTrip handles GET /api/v1/plan: the full pipeline from free-text place
// names to a summarized trip, including weather when configured.
//
// Query params:
//   - from (required) string: origin place name
//   - to   (required) string: destination place name
//   - mode (optional) travel mode; defaults to car
//   - unit (optional) km|mi; defaults to km
//
// Response 200:
//
//	{"origin":{...},"destination":{...},"mode":"car","route":{...},
//	 "origin_weather":"...","destination_weather":"..."}
//
// Response 400: unsupported mode.
// Response 404: an endpoint did not resolve, or no path exists.
// Response 502: a downstream service failed.
func (h *Handler) PlanTrip(c *gin.Context) {
	from, ok := requireQuery(c, "from")
	if !ok {
		return
	}
	to, ok := requireQuery(c, "to")
	if !ok {
		return
	}

	mode, ok := parseMode(c)
	if !ok {
		return
	}
	unit, _ := units.ParseUnit(c.DefaultQuery("unit", string(units.DefaultUnit)))

	trip, err := h.planner.Plan(c.Request.Context(), service.TripRequest{
		Origin:      from,
		Destination: to,
		Mode:        mode,
	})
	if err != nil {
		var pnf *service.PlaceNotFoundError
		var np *routing.NoPathError
		switch {
		case errors.As(err, &pnf):
			c.JSON(http.StatusNotFound, gin.H{"error": "could not resolve " + pnf.Endpoint})
		case errors.As(err, &np):
			c.JSON(http.StatusNotFound, gin.H{"error": "no path between the given places"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "trip planning failed"})
		}
		return
	}

	type endpointJSON struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	}
	resp := gin.H{
		"origin":      endpointJSON{Name: trip.OriginLabel, Lat: trip.Origin.Lat, Lng: trip.Origin.Lng},
		"destination": endpointJSON{Name: trip.DestinationLabel, Lat: trip.Destination.Lat, Lng: trip.Destination.Lng},
		"mode":        string(trip.Mode),
		"route":       newRouteJSON(trip.Route, unit),
	}
	if trip.HasWeather() {
		resp["origin_weather"] = string(trip.OriginWeather)
		resp["destination_weather"] = string(trip.DestinationWeather)
	}

	c.JSON(http.StatusOK, resp)
}

// parseMode reads the optional mode query parameter, writing a 400 and
// returning ok=false for an unsupported mode.
func parseMode(c *gin.Context) (routing.TravelMode, bool) {
	mode := routing.TravelMode(c.DefaultQuery("mode", string(routing.DefaultMode)))
	if !mode.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported travel mode: " + string(mode)})
		return "", false
	}
	return mode, true
}
