package mapout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
)

func testTrip() *service.Trip {
	return &service.Trip{
		OriginLabel:      "London",
		DestinationLabel: "Tower of London",
		Origin:           geo.LatLng{Lat: 51.5074, Lng: -0.1278},
		Destination:      geo.LatLng{Lat: 51.5075, Lng: -0.1280},
		Mode:             routing.ModeCar,
		Route: &routing.Route{
			DistanceMeters: 10000,
			TimeMillis:     600000,
			// Wire order: longitude first. The renderer must flip.
			Points: geo.Polyline{
				{Lng: -0.1278, Lat: 51.5074},
				{Lng: -0.1280, Lat: 51.5075},
			},
		},
		OriginWeather:      "Clear sky, 🌡 15°C, 💨 5 m/s",
		DestinationWeather: "Weather data unavailable",
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	if err := NewRenderer().Write(path, testTrip()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	html := string(data)

	// Path geometry is embedded lat-first.
	if !strings.Contains(html, `{"lat":51.5074,"lng":-0.1278}`) {
		t.Error("path point missing or not latitude-first")
	}
	for _, want := range []string{
		"London",
		"Tower of London",
		"leaflet@1.9.4",
		`"mode":"car"`,
		"Weather data unavailable",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewRenderer().Write(path, testTrip()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("previous content survived the overwrite")
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("output is not an HTML document")
	}
}

func TestWrite_EmptyGeometry(t *testing.T) {
	trip := testTrip()
	trip.Route.Points = nil

	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := NewRenderer().Write(path, trip); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Markers still render; only the polyline is skipped client-side.
	if !strings.Contains(string(data), `"path":[]`) && !strings.Contains(string(data), `"path":null`) {
		t.Errorf("unexpected path payload in %q", string(data))
	}
}
