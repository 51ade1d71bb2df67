package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Location is a resolved user position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Region    string  `json:"region"`
	City      string  `json:"city"`
	Timezone  string  `json:"timezone"`
}

// Label returns the human-readable "City, Country" form used in responses.
func (l Location) Label() string {
	return fmt.Sprintf("%s, %s", l.City, l.Country)
}

// Detector resolves the caller's location. Implementations must return an
// error rather than a zero Location when resolution fails.
type Detector interface {
	Detect(ctx context.Context) (*Location, error)
}

// Client detects locations via public IP-geolocation services, trying each
// in order until one returns usable coordinates.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a geolocation client with the given per-service timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// Detect queries the geolocation services in preference order. The first
// service returning non-zero coordinates wins; failures are logged and the
// next service is tried.
func (c *Client) Detect(ctx context.Context) (*Location, error) {
	services := []struct {
		name  string
		url   string
		parse func([]byte) (*Location, error)
	}{
		{"ipapi.co", "https://ipapi.co/json/", parseIPAPI},
		{"ip-api.com", "http://ip-api.com/json/", parseIPAPICom},
		{"ipinfo.io", "https://ipinfo.io/json", parseIPInfo},
	}

	for _, svc := range services {
		loc, err := c.query(ctx, svc.url, svc.parse)
		if err != nil {
			log.Printf("geo: %s failed: %v", svc.name, err)
			continue
		}
		if loc.Latitude == 0 && loc.Longitude == 0 {
			continue
		}
		return loc, nil
	}

	return nil, fmt.Errorf("all geolocation services failed")
}

func (c *Client) query(ctx context.Context, url string, parse func([]byte) (*Location, error)) (*Location, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return parse(body)
}

func parseIPAPI(body []byte) (*Location, error) {
	var raw struct {
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		CountryName string  `json:"country_name"`
		Region      string  `json:"region"`
		City        string  `json:"city"`
		Timezone    string  `json:"timezone"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling ipapi.co response: %w", err)
	}
	return &Location{
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Country:   orUnknown(raw.CountryName),
		Region:    orUnknown(raw.Region),
		City:      orUnknown(raw.City),
		Timezone:  orUTC(raw.Timezone),
	}, nil
}

func parseIPAPICom(body []byte) (*Location, error) {
	var raw struct {
		Status     string  `json:"status"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		Country    string  `json:"country"`
		RegionName string  `json:"regionName"`
		City       string  `json:"city"`
		Timezone   string  `json:"timezone"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling ip-api.com response: %w", err)
	}
	if raw.Status != "success" {
		return nil, fmt.Errorf("ip-api.com status %q", raw.Status)
	}
	return &Location{
		Latitude:  raw.Lat,
		Longitude: raw.Lon,
		Country:   orUnknown(raw.Country),
		Region:    orUnknown(raw.RegionName),
		City:      orUnknown(raw.City),
		Timezone:  orUTC(raw.Timezone),
	}, nil
}

func parseIPInfo(body []byte) (*Location, error) {
	var raw struct {
		Loc      string `json:"loc"`
		Country  string `json:"country"`
		Region   string `json:"region"`
		City     string `json:"city"`
		Timezone string `json:"timezone"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling ipinfo.io response: %w", err)
	}
	parts := strings.SplitN(raw.Loc, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("ipinfo.io loc %q not parseable", raw.Loc)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}
	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Country:   orUnknown(raw.Country),
		Region:    orUnknown(raw.Region),
		City:      orUnknown(raw.City),
		Timezone:  orUTC(raw.Timezone),
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orUTC(s string) string {
	if s == "" {
		return "UTC"
	}
	return s
}
