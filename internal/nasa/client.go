package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// powerFillValue marks missing observations in POWER responses.
const powerFillValue = -999

// Client accesses NASA's public agricultural data services: the POWER
// daily-point API for climate and soil wetness, the ORNL MODIS subset API
// for vegetation indices, and the Earth assets API for Landsat imagery.
type Client struct {
	powerBaseURL string
	modisBaseURL string
	earthBaseURL string
	apiKey       string
	httpClient   *http.Client
	timeout      time.Duration
	now          func() time.Time
}

// NewClient creates a NASA data client. apiKey is the api.nasa.gov key used
// for Landsat imagery; when empty, DEMO_KEY is used (rate-limited but valid).
func NewClient(apiKey string, timeout time.Duration) *Client {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &Client{
		powerBaseURL: "https://power.larc.nasa.gov/api/temporal/daily/point",
		modisBaseURL: "https://modis.ornl.gov/rst/api/v1",
		earthBaseURL: "https://api.nasa.gov/planetary/earth/assets",
		apiKey:       apiKey,
		httpClient:   &http.Client{},
		timeout:      timeout,
		now:          time.Now,
	}
}

// Weather fetches the last 30 days of agro-climate data from NASA POWER and
// summarizes the most recent 7 days.
func (c *Client) Weather(ctx context.Context, lat, lon float64) (*WeatherSummary, error) {
	series, err := c.powerSeries(ctx, lat, lon, "T2M,T2M_MIN,T2M_MAX,PRECTOTCORR,RH2M,ALLSKY_SFC_SW_DWN,WS2M")
	if err != nil {
		return nil, err
	}

	dates := sortedDates(series["T2M"])
	var days []WeatherDay
	for _, date := range dates {
		day := WeatherDay{
			Date:           date,
			TempAvg:        series["T2M"][date],
			TempMin:        series["T2M_MIN"][date],
			TempMax:        series["T2M_MAX"][date],
			Precipitation:  series["PRECTOTCORR"][date],
			Humidity:       series["RH2M"][date],
			SolarRadiation: series["ALLSKY_SFC_SW_DWN"][date],
			WindSpeed:      series["WS2M"][date],
		}
		if day.TempAvg <= powerFillValue {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("POWER returned no usable weather observations")
	}
	if len(days) > 7 {
		days = days[len(days)-7:]
	}

	summary := &WeatherSummary{Days: days}
	summary.Insights = weatherInsights(summary)
	return summary, nil
}

// SoilMoisture fetches POWER surface and root-zone soil wetness.
func (c *Client) SoilMoisture(ctx context.Context, lat, lon float64) (*SoilSummary, error) {
	series, err := c.powerSeries(ctx, lat, lon, "GWETTOP,GWETROOT")
	if err != nil {
		return nil, err
	}

	date, surface, ok := latestReading(series["GWETTOP"])
	if !ok {
		return nil, fmt.Errorf("POWER returned no usable soil wetness observations")
	}
	root := series["GWETROOT"][date]

	return &SoilSummary{
		SurfaceWetness:   surface,
		RootZoneWetness:  root,
		Date:             date,
		IrrigationAdvice: irrigationAdvice(root),
	}, nil
}

// Groundwater fetches the POWER profile soil wetness, the closest daily
// proxy for groundwater recharge conditions.
func (c *Client) Groundwater(ctx context.Context, lat, lon float64) (*GroundwaterSummary, error) {
	series, err := c.powerSeries(ctx, lat, lon, "GWETPROF")
	if err != nil {
		return nil, err
	}

	date, profile, ok := latestReading(series["GWETPROF"])
	if !ok {
		return nil, fmt.Errorf("POWER returned no usable profile wetness observations")
	}

	return &GroundwaterSummary{
		ProfileWetness: profile,
		Date:           date,
		Status:         groundwaterStatus(profile),
	}, nil
}

// Vegetation fetches the most recent MOD13Q1 NDVI reading from the ORNL
// MODIS subset service.
func (c *Client) Vegetation(ctx context.Context, lat, lon float64) (*VegetationSummary, error) {
	end := c.now()
	start := end.AddDate(0, -2, 0) // two 16-day composites of slack

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("band", "250m_16_days_NDVI")
	params.Set("startDate", modisDate(start))
	params.Set("endDate", modisDate(end))
	params.Set("kmAboveBelow", "0")
	params.Set("kmLeftRight", "0")

	endpoint := fmt.Sprintf("%s/MOD13Q1/subset?%s", c.modisBaseURL, params.Encode())
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Subset []struct {
			CalendarDate string    `json:"calendar_date"`
			Data         []float64 `json:"data"`
		} `json:"subset"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling MODIS response: %w", err)
	}

	for i := len(raw.Subset) - 1; i >= 0; i-- {
		entry := raw.Subset[i]
		if len(entry.Data) == 0 {
			continue
		}
		// MOD13Q1 NDVI is stored with a 0.0001 scale factor.
		ndvi := entry.Data[0] * 0.0001
		if ndvi < -0.2 || ndvi > 1 {
			continue
		}
		return &VegetationSummary{
			NDVI:          ndvi,
			Date:          entry.CalendarDate,
			HealthStatus:  interpretNDVI(ndvi),
			GrowingSeason: growingSeason(lat, c.now()),
		}, nil
	}

	return nil, fmt.Errorf("MODIS returned no usable NDVI readings")
}

// Imagery looks up the most recent Landsat scene covering the point.
func (c *Client) Imagery(ctx context.Context, lat, lon float64) (*ImagerySummary, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("date", c.now().AddDate(0, 0, -30).Format("2006-01-02"))
	params.Set("dim", "0.15")
	params.Set("api_key", c.apiKey)

	body, err := c.get(ctx, c.earthBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var raw struct {
		ID   string `json:"id"`
		Date string `json:"date"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling Earth assets response: %w", err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("no Landsat scene available for location")
	}

	return &ImagerySummary{SceneID: raw.ID, Date: raw.Date, URL: raw.URL}, nil
}

// powerSeries fetches daily POWER parameters for the trailing 30 days and
// returns them keyed by parameter name, then by YYYYMMDD date.
func (c *Client) powerSeries(ctx context.Context, lat, lon float64, parameters string) (map[string]map[string]float64, error) {
	end := c.now()
	start := end.AddDate(0, 0, -30)

	params := url.Values{}
	params.Set("parameters", parameters)
	params.Set("community", "AG")
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("start", start.Format("20060102"))
	params.Set("end", end.Format("20060102"))
	params.Set("format", "JSON")

	body, err := c.get(ctx, c.powerBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var raw struct {
		Properties struct {
			Parameter map[string]map[string]float64 `json:"parameter"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling POWER response: %w", err)
	}
	if len(raw.Properties.Parameter) == 0 {
		return nil, fmt.Errorf("POWER response contained no parameters")
	}

	return raw.Properties.Parameter, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 120))
	}

	return body, nil
}

// latestReading returns the newest non-fill value in a date-keyed series.
func latestReading(series map[string]float64) (date string, value float64, ok bool) {
	for _, d := range sortedDates(series) {
		if v := series[d]; v > powerFillValue {
			date, value, ok = d, v, true
		}
	}
	return date, value, ok
}

func sortedDates(series map[string]float64) []string {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// modisDate formats a time as the AYYYYDDD composite-day form the ORNL
// subset API expects.
func modisDate(t time.Time) string {
	return fmt.Sprintf("A%d%03d", t.Year(), t.YearDay())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
