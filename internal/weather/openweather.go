package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geo"
)

// defaultWeatherURL is the OpenWeatherMap current-weather endpoint.
const defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey     string
	httpClient *http.Client
	logger     func(format string, args ...any) // nil = silent
	// apiURL is the weather endpoint. Overrideable in tests.
	apiURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the weather endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}

// WithLogger sets a log.Printf-compatible function that records why a lookup
// degraded to Unavailable.
func WithLogger(l func(format string, args ...any)) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPTimeout overrides the per-call HTTP timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Provider backed by OpenWeatherMap.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		apiURL:     defaultWeatherURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Current returns the current conditions at point, or Unavailable when
// anything goes wrong.
func (c *Client) Current(ctx context.Context, point geo.LatLng) Summary {
	s, err := c.current(ctx, point)
	if err != nil {
		if c.logger != nil {
			c.logger("weather: lookup failed for %s: %v", point, err)
		}
		return Unavailable
	}
	return s
}

func (c *Client) current(ctx context.Context, point geo.LatLng) (Summary, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(point.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(point.Lng, 'f', -1, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http: %w", err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", httpResp.StatusCode, string(respBytes))
	}

	var apiResp weatherAPIResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(apiResp.Weather) == 0 {
		return "", fmt.Errorf("no weather condition in payload")
	}

	desc := capitalize(apiResp.Weather[0].Description)
	return Summary(fmt.Sprintf("%s, 🌡 %v°C, 💨 %v m/s",
		desc, trimFloat(apiResp.Main.Temp), trimFloat(apiResp.Wind.Speed))), nil
}

// trimFloat renders a float without trailing zeros ("15", "15.5").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- JSON types for the OpenWeatherMap current-weather API ---

type weatherAPIResponse struct {
	Weather []weatherAPICondition `json:"weather"`
	Main    weatherAPIMain        `json:"main"`
	Wind    weatherAPIWind        `json:"wind"`
}

type weatherAPICondition struct {
	Description string `json:"description"`
}

type weatherAPIMain struct {
	Temp float64 `json:"temp"`
}

type weatherAPIWind struct {
	Speed float64 `json:"speed"`
}
