package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
	"github.com/twpayne/go-polyline"
)

const (
	// defaultRouteURL is the GraphHopper Routing API endpoint.
	defaultRouteURL = "https://graphhopper.com/api/1/route"

	// defaultLocale is the language requested for turn instructions.
	defaultLocale = "en"

	// httpMaxIdleConns is the maximum number of idle (keep-alive) connections
	// kept in the transport pool.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection is kept in the pool
	// before being closed.
	httpIdleConnTimeout = 30 * time.Second
)

// Client calculates routes using the GraphHopper Routing API.
type Client struct {
	apiKey     string
	locale     string
	httpClient *http.Client
	// apiURL is the routing endpoint. Overrideable in tests.
	apiURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the routing endpoint. Used in tests and for
// self-hosted GraphHopper instances.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}

// WithLocale sets the language for turn instructions.
func WithLocale(locale string) Option {
	return func(c *Client) { c.locale = locale }
}

// WithHTTPTimeout overrides the per-call HTTP timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Router backed by the GraphHopper Routing API.
// apiKey must be a valid GraphHopper API key.
func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	c := &Client{
		apiKey: apiKey,
		locale: defaultLocale,
		apiURL: defaultRouteURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Route calls the GraphHopper Routing API and returns the first candidate
// path. The service may offer alternatives; no comparison between them is
// made here; the count is recorded on the Route and selection stays with
// the remote ranking.
func (c *Client) Route(ctx context.Context, req Request) (*Route, error) {
	if !req.Mode.IsValid() {
		return nil, fmt.Errorf("routing: unsupported travel mode %q", req.Mode)
	}

	// Origin first, destination second. The API keys on parameter order.
	params := url.Values{
		"point":          {req.Origin.String(), req.Destination.String()},
		"vehicle":        {string(req.Mode)},
		"locale":         {c.locale},
		"points_encoded": {"false"},
		"calc_points":    {"true"},
		"key":            {c.apiKey},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("routing: create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing: http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp routeAPIResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("routing: unmarshal response: %w", err)
	}

	if len(apiResp.Paths) == 0 {
		return nil, &NoPathError{Req: req}
	}

	path := apiResp.Paths[0]

	points, err := path.geometry()
	if err != nil {
		return nil, fmt.Errorf("routing: decode geometry: %w", err)
	}

	instructions := make([]Instruction, len(path.Instructions))
	for i, in := range path.Instructions {
		instructions[i] = Instruction{
			Text:           in.Text,
			DistanceMeters: in.Distance,
		}
	}

	return &Route{
		DistanceMeters: path.Distance,
		TimeMillis:     path.Time,
		Points:         points,
		Instructions:   instructions,
		Alternatives:   len(apiResp.Paths),
	}, nil
}

// --- JSON types for the GraphHopper Routing API ---

type routeAPIResponse struct {
	Paths []routeAPIPath `json:"paths"`
}

type routeAPIPath struct {
	// Distance is the total distance in meters.
	Distance float64 `json:"distance"`
	// Time is the total travel time in milliseconds.
	Time int64 `json:"time"`
	// Points carries the path geometry. With points_encoded=false it is a
	// GeoJSON LineString object; with points_encoded=true it is an encoded
	// polyline string. Both are handled.
	Points       json.RawMessage       `json:"points"`
	Instructions []routeAPIInstruction `json:"instructions"`
}

type routeAPIInstruction struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
}

type routeAPILineString struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// geometry decodes the path geometry into longitude-first points.
func (p routeAPIPath) geometry() (geo.Polyline, error) {
	if len(p.Points) == 0 || string(p.Points) == "null" {
		return nil, nil
	}

	// Encoded form: a JSON string holding an encoded polyline. Decoded pairs
	// come out latitude-first and are flipped here, so Route.Points is
	// longitude-first regardless of the wire encoding.
	if p.Points[0] == '"' {
		var encoded string
		if err := json.Unmarshal(p.Points, &encoded); err != nil {
			return nil, fmt.Errorf("encoded points: %w", err)
		}
		coords, _, err := polyline.DecodeCoords([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("decode polyline: %w", err)
		}
		out := make(geo.Polyline, len(coords))
		for i, c := range coords {
			out[i] = geo.LngLat{Lng: c[1], Lat: c[0]}
		}
		return out, nil
	}

	// Decoded form: GeoJSON LineString, pairs already longitude-first.
	var line routeAPILineString
	if err := json.Unmarshal(p.Points, &line); err != nil {
		return nil, fmt.Errorf("line string: %w", err)
	}
	out := make(geo.Polyline, 0, len(line.Coordinates))
	for _, c := range line.Coordinates {
		if len(c) < 2 {
			return nil, fmt.Errorf("line string: coordinate with %d components", len(c))
		}
		out = append(out, geo.LngLat{Lng: c[0], Lat: c[1]})
	}
	return out, nil
}
