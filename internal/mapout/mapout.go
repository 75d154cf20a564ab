// Package mapout writes the interactive map artifact: a single
// self-contained HTML document that draws the trip on a Leaflet map.
package mapout

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
)

// DefaultPath is the fixed map artifact filename. An existing file is
// overwritten.
const DefaultPath = "route_map.html"

const defaultZoom = 6

// Renderer writes trip maps.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("map").Parse(mapHTML))}
}

// mapData is the payload embedded in the page as JSON. All coordinates are
// latitude-first by construction: route geometry is flipped exactly once,
// through Polyline.LatLngs, before it reaches this struct.
type mapData struct {
	Center       geo.LatLng   `json:"center"`
	Zoom         int          `json:"zoom"`
	Start        geo.LatLng   `json:"start"`
	End          geo.LatLng   `json:"end"`
	StartLabel   string       `json:"startLabel"`
	EndLabel     string       `json:"endLabel"`
	StartWeather string       `json:"startWeather"`
	EndWeather   string       `json:"endWeather"`
	Mode         string       `json:"mode"`
	Path         []geo.LatLng `json:"path"`
}

// Write renders the trip to an HTML map at path, overwriting any previous
// file.
func (r *Renderer) Write(path string, trip *service.Trip) error {
	data := mapData{
		Center:       geo.Midpoint(trip.Origin, trip.Destination),
		Zoom:         defaultZoom,
		Start:        trip.Origin,
		End:          trip.Destination,
		StartLabel:   trip.OriginLabel,
		EndLabel:     trip.DestinationLabel,
		StartWeather: string(trip.OriginWeather),
		EndWeather:   string(trip.DestinationWeather),
		Mode:         string(trip.Mode),
		Path:         trip.Route.Points.LatLngs(),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("mapout: encode map data: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapout: create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.tmpl.Execute(f, template.JS(payload)); err != nil {
		return fmt.Errorf("mapout: render map: %w", err)
	}
	return nil
}

// mapHTML loads Leaflet from its public CDN; the document itself carries all
// trip data inline.
const mapHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Route Map</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var data = {{.}};

var map = L.map('map', { zoomControl: true }).setView([data.center.lat, data.center.lng], data.zoom);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

function popup(kind, label, weather) {
	var html = '<b>' + kind + ':</b> ' + label;
	if (weather) {
		html += '<br><b>Weather:</b> ' + weather;
	}
	return html;
}

L.marker([data.start.lat, data.start.lng])
	.bindPopup(popup('Start', data.startLabel, data.startWeather))
	.addTo(map);
L.marker([data.end.lat, data.end.lng])
	.bindPopup(popup('End', data.endLabel, data.endWeather))
	.addTo(map);

var path = data.path.map(function (p) { return [p.lat, p.lng]; });
if (path.length > 0) {
	var line = L.polyline(path, { color: 'blue', weight: 5, opacity: 0.8 }).addTo(map);
	line.bindTooltip('Route for ' + data.mode);
	map.fitBounds(line.getBounds());
}
</script>
</body>
</html>
`
