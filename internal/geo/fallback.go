package geo

// fallbackLocations maps country codes to agricultural-region defaults,
// weighted toward South Asia where most of the user base farms.
var fallbackLocations = map[string]Location{
	"BD": {Latitude: 23.8103, Longitude: 90.4125, Country: "Bangladesh", Region: "Dhaka Division", City: "Dhaka", Timezone: "Asia/Dhaka"},
	"IN": {Latitude: 28.6139, Longitude: 77.2090, Country: "India", Region: "Delhi", City: "New Delhi", Timezone: "Asia/Kolkata"},
	"PK": {Latitude: 33.6844, Longitude: 73.0479, Country: "Pakistan", Region: "Islamabad Capital Territory", City: "Islamabad", Timezone: "Asia/Karachi"},
	"LK": {Latitude: 6.9271, Longitude: 79.8612, Country: "Sri Lanka", Region: "Western Province", City: "Colombo", Timezone: "Asia/Colombo"},
	"NP": {Latitude: 27.7172, Longitude: 85.3240, Country: "Nepal", Region: "Bagmati Province", City: "Kathmandu", Timezone: "Asia/Kathmandu"},
	"US": {Latitude: 39.8283, Longitude: -98.5795, Country: "United States", Region: "Kansas", City: "Geographic Center", Timezone: "America/Chicago"},
	"BR": {Latitude: -14.2350, Longitude: -51.9253, Country: "Brazil", Region: "Goiás", City: "Brasília", Timezone: "America/Sao_Paulo"},
	"AU": {Latitude: -25.2744, Longitude: 133.7751, Country: "Australia", Region: "Northern Territory", City: "Alice Springs", Timezone: "Australia/Darwin"},
}

// FallbackLocation returns the regional default for a country code, or the
// Dhaka default when the code is unrecognized.
func FallbackLocation(countryCode string) Location {
	if loc, ok := fallbackLocations[countryCode]; ok {
		return loc
	}
	return fallbackLocations["BD"]
}
