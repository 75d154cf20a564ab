package geo

import "testing"

func TestAxisOrderConversion(t *testing.T) {
	// Route geometry arrives longitude-first; map consumers need
	// latitude-first. The conversion must swap, not copy.
	p := LngLat{Lng: -0.1278, Lat: 51.5074}
	got := p.ToLatLng()
	if got.Lat != 51.5074 || got.Lng != -0.1278 {
		t.Errorf("ToLatLng = %+v, want lat=51.5074 lng=-0.1278", got)
	}
	if back := got.ToLngLat(); back != p {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
}

func TestPolyline_LatLngs(t *testing.T) {
	pl := Polyline{
		{Lng: -0.1278, Lat: 51.5074},
		{Lng: -0.1280, Lat: 51.5075},
	}
	got := pl.LatLngs()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Lat != 51.5074 || got[0].Lng != -0.1278 {
		t.Errorf("first point = %+v, axis order transposed", got[0])
	}
	if got[1].Lat != 51.5075 || got[1].Lng != -0.1280 {
		t.Errorf("second point = %+v, axis order transposed", got[1])
	}
}

func TestLatLngString(t *testing.T) {
	p := LatLng{Lat: 51.5074, Lng: -0.1278}
	if got := p.String(); got != "51.507400,-0.127800" {
		t.Errorf("String = %q, want 51.507400,-0.127800", got)
	}
}

func TestParseLatLng(t *testing.T) {
	p, err := ParseLatLng(" 51.5074 , -0.1278 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 51.5074 || p.Lng != -0.1278 {
		t.Errorf("parsed = %+v", p)
	}

	for _, bad := range []string{"", "51.5", "a,b", "1,2,3"} {
		if _, err := ParseLatLng(bad); err == nil {
			t.Errorf("ParseLatLng(%q): expected error, got nil", bad)
		}
	}
}

func TestMidpoint(t *testing.T) {
	mid := Midpoint(LatLng{Lat: 10, Lng: 20}, LatLng{Lat: 20, Lng: 40})
	if mid.Lat != 15 || mid.Lng != 30 {
		t.Errorf("midpoint = %+v, want {15 30}", mid)
	}
}

func TestCellKey(t *testing.T) {
	p := LatLng{Lat: 51.5074, Lng: -0.1278}
	key := CellKey(p, 7)
	if len(key) != 7 {
		t.Errorf("key length = %d, want 7", len(key))
	}
	// Nearby points inside the same cell share a key.
	near := LatLng{Lat: 51.50741, Lng: -0.12781}
	if CellKey(near, 7) != key {
		t.Error("nearby point produced a different cell key")
	}
	// A clearly distinct point does not.
	far := LatLng{Lat: 48.8566, Lng: 2.3522}
	if CellKey(far, 7) == key {
		t.Error("distant point shares a cell key")
	}
}
