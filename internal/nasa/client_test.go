package nasa

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	c := NewClient("TEST_KEY", 5*time.Second)
	c.powerBaseURL = baseURL
	c.modisBaseURL = baseURL
	c.earthBaseURL = baseURL
	c.now = func() time.Time {
		return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestWeatherSkipsFillValues(t *testing.T) {
	// Two usable days and one fill-value day; the fill day must be dropped.
	body := `{"properties":{"parameter":{
		"T2M":{"20260810":28.5,"20260811":-999,"20260812":31.0},
		"T2M_MIN":{"20260810":22.0,"20260811":-999,"20260812":24.0},
		"T2M_MAX":{"20260810":33.0,"20260811":-999,"20260812":36.0},
		"PRECTOTCORR":{"20260810":4.0,"20260811":-999,"20260812":1.0},
		"RH2M":{"20260810":70.0,"20260811":-999,"20260812":65.0},
		"ALLSKY_SFC_SW_DWN":{"20260810":21.0,"20260811":-999,"20260812":26.0},
		"WS2M":{"20260810":2.1,"20260811":-999,"20260812":3.4}}}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("community"); got != "AG" {
			t.Errorf("community = %q, want AG", got)
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	summary, err := c.Weather(context.Background(), 23.81, 90.41)
	if err != nil {
		t.Fatalf("Weather failed: %v", err)
	}

	if len(summary.Days) != 2 {
		t.Fatalf("expected 2 usable days, got %d", len(summary.Days))
	}
	latest := summary.Latest()
	if latest.Date != "20260812" {
		t.Errorf("latest date = %s, want 20260812", latest.Date)
	}
	if latest.TempAvg != 31.0 {
		t.Errorf("latest temp = %v, want 31.0", latest.TempAvg)
	}
	if got := summary.TotalPrecipitation(); got != 5.0 {
		t.Errorf("total precipitation = %v, want 5.0", got)
	}
}

func TestWeatherAllFillValues(t *testing.T) {
	body := `{"properties":{"parameter":{"T2M":{"20260810":-999}}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Weather(context.Background(), 23.81, 90.41); err == nil {
		t.Error("expected error when every observation is a fill value")
	}
}

func TestSoilMoisture(t *testing.T) {
	body := `{"properties":{"parameter":{
		"GWETTOP":{"20260810":0.45,"20260812":0.42},
		"GWETROOT":{"20260810":0.50,"20260812":0.41}}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s, err := c.SoilMoisture(context.Background(), 23.81, 90.41)
	if err != nil {
		t.Fatalf("SoilMoisture failed: %v", err)
	}
	if s.Date != "20260812" {
		t.Errorf("date = %s, want 20260812", s.Date)
	}
	if s.RootZoneWetness != 0.41 {
		t.Errorf("root-zone wetness = %v, want 0.41", s.RootZoneWetness)
	}
	if s.IrrigationAdvice != "Irrigation needed soon - soil moisture is low" {
		t.Errorf("unexpected advice: %q", s.IrrigationAdvice)
	}
}

func TestVegetationScalesNDVI(t *testing.T) {
	body := `{"subset":[
		{"calendar_date":"2026-07-12","data":[6200]},
		{"calendar_date":"2026-07-28","data":[7400]}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "MOD13Q1") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	v, err := c.Vegetation(context.Background(), 23.81, 90.41)
	if err != nil {
		t.Fatalf("Vegetation failed: %v", err)
	}
	if math.Abs(v.NDVI-0.74) > 1e-9 {
		t.Errorf("NDVI = %v, want 0.74", v.NDVI)
	}
	if v.Date != "2026-07-28" {
		t.Errorf("date = %s, want 2026-07-28", v.Date)
	}
	if v.HealthStatus != "Excellent vegetation health" {
		t.Errorf("health = %q", v.HealthStatus)
	}
}

func TestImageryNoScene(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Imagery(context.Background(), 23.81, 90.41); err == nil {
		t.Error("expected error when no scene is available")
	}
}

func TestGetNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Weather(context.Background(), 0, 0); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestModisDate(t *testing.T) {
	got := modisDate(time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC))
	if got != "A2026036" {
		t.Errorf("modisDate = %q, want A2026036", got)
	}
}

func TestLatestReading(t *testing.T) {
	series := map[string]float64{
		"20260810": 0.5,
		"20260811": 0.6,
		"20260812": -999,
	}
	date, value, ok := latestReading(series)
	if !ok {
		t.Fatal("expected a usable reading")
	}
	if date != "20260811" || value != 0.6 {
		t.Errorf("latestReading = (%s, %v), want (20260811, 0.6)", date, value)
	}
}
