package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

const (
	// defaultGeocodeURL is the GraphHopper Geocoding API endpoint.
	defaultGeocodeURL = "https://graphhopper.com/api/1/geocode"

	// httpMaxIdleConns is the maximum number of idle (keep-alive) connections
	// kept in the transport pool.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection is kept in the pool
	// before being closed.
	httpIdleConnTimeout = 30 * time.Second
)

// Client resolves place names using the GraphHopper Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	// apiURL is the geocoding endpoint. Overrideable in tests.
	apiURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the geocoding endpoint. Used in tests and for
// self-hosted GraphHopper instances.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}

// WithHTTPTimeout overrides the per-call HTTP timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Geocoder backed by the GraphHopper Geocoding API.
// apiKey must be a valid GraphHopper API key.
func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	c := &Client{
		apiKey: apiKey,
		apiURL: defaultGeocodeURL,
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

// Geocode resolves query to a coordinate.
//
// The service ranks hits itself and no re-ranking is applied here: the first
// hit wins. For ambiguous names the result quality therefore depends entirely
// on the remote ranking.
func (c *Client) Geocode(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, fmt.Errorf("geocode: empty query")
	}

	params := url.Values{
		"q":   {query},
		"key": {c.apiKey},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("geocode: create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Place{}, fmt.Errorf("geocode: http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Place{}, fmt.Errorf("geocode: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("geocode: status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp geocodeAPIResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return Place{}, fmt.Errorf("geocode: unmarshal response: %w", err)
	}

	if len(apiResp.Hits) == 0 {
		return Place{}, &NotFoundError{Query: query}
	}

	hit := apiResp.Hits[0]
	name := hit.Name
	if name == "" {
		name = query
	}
	return Place{
		Name:  name,
		Point: hit.Point.toLatLng(),
	}, nil
}

// --- JSON types for the GraphHopper Geocoding API ---

type geocodeAPIResponse struct {
	Hits []geocodeAPIHit `json:"hits"`
}

type geocodeAPIHit struct {
	Name    string          `json:"name"`
	Country string          `json:"country"`
	Point   geocodeAPIPoint `json:"point"`
}

// geocodeAPIPoint is the nested point object. The geocoding API speaks
// latitude-first, unlike route geometry.
type geocodeAPIPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p geocodeAPIPoint) toLatLng() geo.LatLng {
	return geo.LatLng{Lat: p.Lat, Lng: p.Lng}
}
