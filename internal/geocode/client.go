package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"appraisal-cloud/internal/valuation/application"
)

var (
	// ErrNotFound is returned when the address resolves to nothing.
	ErrNotFound = errors.New("geocode: address not found")
	// ErrUnavailable is returned when the lookup service cannot be reached.
	ErrUnavailable = errors.New("geocode: service unavailable")
)

// Client queries a Nominatim-style search endpoint. Lookup failures are meant
// to be degraded by the caller, never treated as fatal.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient constructs a geocode client.
func NewClient(baseURL, userAgent string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("geocode: empty base url")
	}
	if userAgent == "" {
		userAgent = "appraisal-cloud"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up a free-text address and returns its coordinates.
func (c *Client) Resolve(ctx context.Context, address string) (application.Location, error) {
	if address == "" {
		return application.Location{}, ErrNotFound
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return application.Location{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return application.Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return application.Location{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return application.Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(results) == 0 {
		return application.Location{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return application.Location{}, fmt.Errorf("%w: bad latitude %q", ErrUnavailable, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return application.Location{}, fmt.Errorf("%w: bad longitude %q", ErrUnavailable, results[0].Lon)
	}

	return application.Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
