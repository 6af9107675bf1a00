package rates

import "strings"

// fallbackBase is the pivot currency for offline approximations.
const fallbackBase = "NZD"

// Approximate rates relative to NZD, used only when a live fetch fails.
var fallbackTable = map[string]float64{
	"NZD": 1.0,
	"USD": 0.60,
	"EUR": 0.55,
	"GBP": 0.47,
	"AUD": 0.92,
	"JPY": 90.0,
}

// Fallback computes an approximate rate by pivoting through the base
// currency. Currencies missing from the table contribute a neutral 1.0
// factor, so the result is always usable.
func Fallback(from, to string) float64 {
	fromFactor := 1.0
	if r, ok := fallbackTable[strings.ToUpper(from)]; ok {
		fromFactor = 1.0 / r
	}
	toFactor := 1.0
	if r, ok := fallbackTable[strings.ToUpper(to)]; ok {
		toFactor = r
	}
	return fromFactor * toFactor
}
