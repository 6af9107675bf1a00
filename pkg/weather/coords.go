package weather

import "strings"

// Coords are the latitude/longitude used for the forecast lookup.
type Coords struct {
	Name string
	Lat  float64
	Lon  float64
}

// knownCoords lists the places the dashboard can ask Open-Meteo about.
// Matching is by lowercased substring so "Wellington Central" still finds
// "wellington".
var knownCoords = []Coords{
	{"wellington", -41.2865, 174.7762},
	{"auckland", -36.8485, 174.7633},
	{"christchurch", -43.5321, 172.6362},
	{"dunedin", -45.8788, 170.5028},
	{"hamilton", -37.7870, 175.2793},
	{"tauranga", -37.6878, 176.1651},
	{"new plymouth", -39.0556, 174.0752},
	{"nelson", -41.2706, 173.2840},
	{"queenstown", -45.0312, 168.6626},
	{"boston", 42.3601, -71.0589},
	{"new york", 40.7128, -74.0060},
	{"london", 51.5074, -0.1278},
	{"sydney", -33.8688, 151.2093},
	{"tokyo", 35.6762, 139.6503},
	{"singapore", 1.3521, 103.8198},
	{"kuala lumpur", 3.1390, 101.6869},
	{"los angeles", 34.0522, -118.2437},
	{"san francisco", 37.7749, -122.4194},
	{"paris", 48.8566, 2.3522},
	{"berlin", 52.5200, 13.4050},
	{"austin", 30.2672, -97.7431},
	{"rio", -22.9068, -43.1729},
	{"addis ababa", 9.0320, 38.7469},
	{"dhaka", 23.8103, 90.4125},
	{"beijing", 39.9042, 116.4074},
}

// Coordinates finds the lat/lon for a location name.
func Coordinates(name string) (lat, lon float64, ok bool) {
	lower := strings.ToLower(name)
	for _, c := range knownCoords {
		if strings.Contains(lower, c.Name) {
			return c.Lat, c.Lon, true
		}
	}
	return 0, 0, false
}
