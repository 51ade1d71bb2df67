package nasa

// WeatherDay is one day of NASA POWER agro-climate observations.
type WeatherDay struct {
	Date           string
	TempAvg        float64 // °C
	TempMin        float64
	TempMax        float64
	Precipitation  float64 // mm
	Humidity       float64 // %
	SolarRadiation float64 // MJ/m²/day
	WindSpeed      float64 // m/s
}

// WeatherSummary condenses the recent POWER series for prompting.
type WeatherSummary struct {
	Days     []WeatherDay // oldest first, at most the last 7 days
	Insights []string     // derived agronomic insights
}

// Latest returns the most recent day in the series.
func (s *WeatherSummary) Latest() WeatherDay {
	if len(s.Days) == 0 {
		return WeatherDay{}
	}
	return s.Days[len(s.Days)-1]
}

// TotalPrecipitation sums rainfall across the summarized days.
func (s *WeatherSummary) TotalPrecipitation() float64 {
	var total float64
	for _, d := range s.Days {
		total += d.Precipitation
	}
	return total
}

// VegetationSummary holds MODIS vegetation-index readings.
type VegetationSummary struct {
	NDVI          float64
	Date          string
	HealthStatus  string
	GrowingSeason string
}

// SoilSummary holds POWER soil-wetness readings (unitless 0–1 saturation).
type SoilSummary struct {
	SurfaceWetness  float64
	RootZoneWetness float64
	Date            string
	IrrigationAdvice string
}

// GroundwaterSummary holds the profile soil-wetness proxy for groundwater.
type GroundwaterSummary struct {
	ProfileWetness float64
	Date           string
	Status         string
}

// ImagerySummary describes the most recent Landsat scene over a point.
type ImagerySummary struct {
	SceneID string
	Date    string
	URL     string
}
