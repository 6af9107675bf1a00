package weather

// Condition buckets the WMO weather interpretation codes Open-Meteo reports.
type Condition int

const (
	Unknown Condition = iota
	Sunny
	PartlyCloudy
	Cloudy
	Fog
	Drizzle
	Rain
	HeavyRain
	Snow
	Thunderstorm
)

// ConditionFromWMO maps a WMO weather code onto a condition bucket.
func ConditionFromWMO(code int) Condition {
	switch code {
	case 0:
		return Sunny
	case 1, 2:
		return PartlyCloudy
	case 3:
		return Cloudy
	case 45, 48:
		return Fog
	case 51, 53, 55, 56, 57:
		return Drizzle
	case 61, 63, 80, 81:
		return Rain
	case 65, 66, 67, 82:
		return HeavyRain
	case 71, 73, 75, 77, 85, 86:
		return Snow
	case 95, 96, 99:
		return Thunderstorm
	default:
		return Unknown
	}
}

// Icon returns a single display glyph for the condition.
func (c Condition) Icon(isDay bool) string {
	switch c {
	case Sunny:
		if isDay {
			return "☀"
		}
		return "☾"
	case PartlyCloudy:
		if isDay {
			return "⛅"
		}
		return "☁"
	case Cloudy:
		return "☁"
	case Fog:
		return "🌫"
	case Drizzle:
		return "🌦"
	case Rain, HeavyRain:
		return "🌧"
	case Snow:
		return "❄"
	case Thunderstorm:
		return "⛈"
	default:
		return "?"
	}
}

// DescribeWMO renders a short human description for a WMO code.
func DescribeWMO(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code == 1:
		return "Mainly clear"
	case code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Foggy"
	case code == 51 || code == 53 || code == 55:
		return "Drizzle"
	case code == 56 || code == 57:
		return "Freezing drizzle"
	case code == 61 || code == 63 || code == 65:
		return "Rain"
	case code == 66 || code == 67:
		return "Freezing rain"
	case code == 71 || code == 73 || code == 75:
		return "Snow"
	case code == 77:
		return "Snow grains"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code == 95:
		return "Thunderstorm"
	case code == 96 || code == 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown"
	}
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection converts degrees to an eight-point compass label.
func WindDirection(degrees float64) string {
	idx := int((degrees+22.5)/45.0) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
