package nasa

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Dataset names, fixed by the catalog below.
const (
	DatasetPOWER   = "NASA POWER"
	DatasetMODIS   = "NASA MODIS"
	DatasetLandsat = "NASA Landsat"
	DatasetSMAP    = "NASA SMAP"
	DatasetGRACE   = "NASA GRACE"
)

// FetchFunc retrieves a dataset's context snippet for a location. An error
// or empty string means the dataset contributed nothing and must be omitted
// from the response attribution.
type FetchFunc func(ctx context.Context, c *Client, lat, lon float64) (string, error)

// Dataset describes one entry of the fixed satellite-data catalog.
type Dataset struct {
	Name     string
	Keywords []string
	Fetch    FetchFunc
}

// Catalog returns the fixed five-entry dataset catalog in declaration order.
// Declaration order is the tie-break order for routing and the order used
// in response attribution.
func Catalog() []Dataset {
	return []Dataset{
		{
			Name: DatasetPOWER,
			Keywords: []string{
				"weather", "climate", "temperature", "rain", "drought",
				"humidity", "wind", "frost", "heat", "solar", "monsoon",
				"season", "irrigation",
			},
			Fetch: fetchWeather,
		},
		{
			Name: DatasetMODIS,
			Keywords: []string{
				"vegetation", "ndvi", "crop health", "plant health",
				"greenness", "canopy", "growth", "biomass", "yield",
			},
			Fetch: fetchVegetation,
		},
		{
			Name: DatasetLandsat,
			Keywords: []string{
				"imagery", "image", "satellite", "field map", "land use",
				"land cover", "acreage", "boundary",
			},
			Fetch: fetchImagery,
		},
		{
			Name: DatasetSMAP,
			Keywords: []string{
				"soil", "moisture", "irrigation", "irrigate", "dry",
				"water stress", "watering",
			},
			Fetch: fetchSoilMoisture,
		},
		{
			Name: DatasetGRACE,
			Keywords: []string{
				"groundwater", "aquifer", "water table", "well", "borehole",
				"depletion", "irrigation",
			},
			Fetch: fetchGroundwater,
		},
	}
}

// Route selects the datasets topically relevant to a pivot-language query,
// most relevant first. Equal scores keep catalog order. A query matching
// nothing gets no datasets; the pipeline then answers without satellite
// augmentation instead of fanning out to all five.
func Route(query string, catalog []Dataset) []Dataset {
	lower := strings.ToLower(query)

	type scored struct {
		ds    Dataset
		score int
		pos   int
	}
	var matches []scored
	for i, ds := range catalog {
		score := 0
		for _, kw := range ds.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{ds: ds, score: score, pos: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].pos < matches[j].pos
	})

	selected := make([]Dataset, 0, len(matches))
	for _, m := range matches {
		selected = append(selected, m.ds)
	}
	return selected
}

// CatalogOrder returns the position of a dataset name in the fixed catalog,
// or len(catalog) for unknown names.
func CatalogOrder(name string) int {
	for i, ds := range Catalog() {
		if ds.Name == name {
			return i
		}
	}
	return len(Catalog())
}

func fetchWeather(ctx context.Context, c *Client, lat, lon float64) (string, error) {
	w, err := c.Weather(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	latest := w.Latest()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current temperature %.1f°C (range %.1f°C to %.1f°C), humidity %.1f%%, recent precipitation %.1fmm over 7 days, solar radiation %.1f MJ/m²/day, wind %.1f m/s.",
		latest.TempAvg, latest.TempMin, latest.TempMax, latest.Humidity,
		w.TotalPrecipitation(), latest.SolarRadiation, latest.WindSpeed)
	for _, insight := range w.Insights {
		sb.WriteString(" ")
		sb.WriteString(insight)
		sb.WriteString(".")
	}
	return sb.String(), nil
}

func fetchVegetation(ctx context.Context, c *Client, lat, lon float64) (string, error) {
	v, err := c.Vegetation(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("NDVI %.2f as of %s: %s. %s.", v.NDVI, v.Date, v.HealthStatus, v.GrowingSeason), nil
}

func fetchImagery(ctx context.Context, c *Client, lat, lon float64) (string, error) {
	img, err := c.Imagery(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Most recent Landsat scene %s acquired %s covering the field area.", img.SceneID, img.Date), nil
}

func fetchSoilMoisture(ctx context.Context, c *Client, lat, lon float64) (string, error) {
	s, err := c.SoilMoisture(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Surface soil wetness %.2f, root-zone wetness %.2f as of %s. %s.",
		s.SurfaceWetness, s.RootZoneWetness, s.Date, s.IrrigationAdvice), nil
}

func fetchGroundwater(ctx context.Context, c *Client, lat, lon float64) (string, error) {
	g, err := c.Groundwater(ctx, lat, lon)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Profile soil wetness %.2f as of %s. %s.", g.ProfileWetness, g.Date, g.Status), nil
}
