package nasa

import "time"

// weatherInsights derives agronomic advice strings from a recent series.
func weatherInsights(s *WeatherSummary) []string {
	var insights []string
	if len(s.Days) == 0 {
		return insights
	}

	recent := s.Latest()
	total := s.TotalPrecipitation()

	if recent.TempAvg > 30 {
		insights = append(insights, "High temperatures detected - consider irrigation and shade protection for sensitive crops")
	} else if recent.TempAvg < 5 {
		insights = append(insights, "Low temperatures - protect frost-sensitive plants and consider greenhouse cultivation")
	}

	if total < 10 {
		insights = append(insights, "Low rainfall detected - irrigation may be necessary for optimal crop growth")
	} else if total > 50 {
		insights = append(insights, "High rainfall - ensure proper drainage to prevent waterlogging and root rot")
	}

	if recent.SolarRadiation > 25 {
		insights = append(insights, "Excellent solar radiation levels - optimal for photosynthesis and crop growth")
	}

	return insights
}

// interpretNDVI maps an NDVI value to a vegetation health label.
func interpretNDVI(ndvi float64) string {
	switch {
	case ndvi > 0.7:
		return "Excellent vegetation health"
	case ndvi > 0.5:
		return "Good vegetation health"
	case ndvi > 0.3:
		return "Moderate vegetation health"
	default:
		return "Poor vegetation health - intervention needed"
	}
}

// growingSeason estimates the active season from latitude and calendar month.
func growingSeason(latitude float64, now time.Time) string {
	month := int(now.Month())

	if latitude < 23.5 && latitude > -23.5 {
		return "Year-round growing season"
	}
	if latitude > 0 {
		if month >= 3 && month <= 10 {
			return "Active growing season"
		}
		return "Dormant season"
	}
	if month >= 10 || month <= 3 {
		return "Active growing season"
	}
	return "Dormant season"
}

// irrigationAdvice maps root-zone wetness (0–1 saturation) to advice.
func irrigationAdvice(wetness float64) string {
	switch {
	case wetness < 0.3:
		return "Immediate irrigation recommended - soil is very dry"
	case wetness < 0.5:
		return "Irrigation needed soon - soil moisture is low"
	case wetness > 0.8:
		return "Reduce irrigation - soil moisture is high"
	default:
		return "Optimal soil moisture levels - maintain current irrigation schedule"
	}
}

// groundwaterStatus maps profile wetness to a recharge condition label.
func groundwaterStatus(wetness float64) string {
	switch {
	case wetness < 0.3:
		return "Depleted groundwater conditions - limit well extraction and prioritize drip irrigation"
	case wetness < 0.5:
		return "Below-average groundwater recharge - monitor well levels"
	case wetness > 0.8:
		return "High groundwater recharge - favorable conditions for irrigation"
	default:
		return "Normal groundwater recharge conditions"
	}
}
