package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

var testReq = Request{
	Origin:      geo.LatLng{Lat: 51.5074, Lng: -0.1278},
	Destination: geo.LatLng{Lat: 51.5075, Lng: -0.1280},
	Mode:        ModeCar,
}

func TestClient_Route_FirstPathWins(t *testing.T) {
	var gotParams map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Write([]byte(`{"paths":[
			{
				"distance": 10000,
				"time": 600000,
				"points": {"type":"LineString","coordinates":[[-0.1278,51.5074],[-0.1280,51.5075]]},
				"instructions": [{"text":"Head north","distance":100}]
			},
			{"distance": 12000, "time": 700000}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	route, err := c.Route(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.DistanceMeters != 10000 {
		t.Errorf("distance = %v, want 10000 (first path)", route.DistanceMeters)
	}
	if route.TimeMillis != 600000 {
		t.Errorf("time = %v, want 600000", route.TimeMillis)
	}
	if route.Alternatives != 2 {
		t.Errorf("alternatives = %d, want 2", route.Alternatives)
	}
	if len(route.Instructions) != 1 || route.Instructions[0].Text != "Head north" {
		t.Errorf("instructions = %+v", route.Instructions)
	}

	// Origin must come before destination, with vehicle and flags set.
	points := gotParams["point"]
	if len(points) != 2 || points[0] != "51.507400,-0.127800" || points[1] != "51.507500,-0.128000" {
		t.Errorf("point params = %v", points)
	}
	if gotParams["vehicle"][0] != "car" || gotParams["points_encoded"][0] != "false" || gotParams["calc_points"][0] != "true" {
		t.Errorf("params = %v", gotParams)
	}
}

func TestClient_Route_GeometryKeepsWireAxisOrder(t *testing.T) {
	// GraphHopper geometry is GeoJSON, longitude-first. The route must store
	// it as typed LngLat values so no consumer can mistake the order.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"paths":[{
			"distance": 1, "time": 1,
			"points": {"coordinates":[[-0.1278,51.5074]]}
		}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	route, err := c.Route(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(route.Points))
	}
	p := route.Points[0]
	if p.Lng != -0.1278 || p.Lat != 51.5074 {
		t.Errorf("point = %+v; wire order [lng, lat] was transposed", p)
	}

	// And the renderer-facing view flips it exactly once.
	flipped := route.Points.LatLngs()
	if flipped[0].Lat != 51.5074 || flipped[0].Lng != -0.1278 {
		t.Errorf("LatLngs()[0] = %+v; flip is wrong", flipped[0])
	}
}

func TestClient_Route_EncodedPolyline(t *testing.T) {
	// With points_encoded=true the geometry arrives as an encoded polyline
	// string. "_p~iF~ps|U_ulLnnqC" decodes to (38.5,-120.2), (40.7,-120.95).
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"paths":[{
			"distance": 1, "time": 1,
			"points": "_p~iF~ps|U_ulLnnqC"
		}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	route, err := c.Route(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(route.Points))
	}
	if route.Points[0].Lat != 38.5 || route.Points[0].Lng != -120.2 {
		t.Errorf("first decoded point = %+v, want lat=38.5 lng=-120.2", route.Points[0])
	}
}

func TestClient_Route_EmptyPathsIsStructuralError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"paths":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Route(context.Background(), testReq)

	var np *NoPathError
	if !errors.As(err, &np) {
		t.Fatalf("error = %v, want *NoPathError", err)
	}
}

func TestClient_Route_MissingPathsIsStructuralError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Route(context.Background(), testReq)

	var np *NoPathError
	if !errors.As(err, &np) {
		t.Fatalf("error = %v, want *NoPathError", err)
	}
}

func TestClient_Route_UnsupportedModeFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	req := testReq
	req.Mode = "hovercraft"

	if _, err := c.Route(context.Background(), req); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
	if calls != 0 {
		t.Errorf("remote called %d times for an invalid mode, want 0", calls)
	}
}

func TestClient_Route_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Route(context.Background(), testReq)
	if err == nil {
		t.Fatal("expected error on 429, got nil")
	}
	var np *NoPathError
	if errors.As(err, &np) {
		t.Error("transport failure must not be reported as NoPathError")
	}
}
