// Package weather caches per-location weather snapshots from Open-Meteo and
// synthesizes four-period-per-day forecast breakdowns from the hourly series.
package weather

import (
	"fmt"
	"time"
)

// TTL is the maximum age of a cached snapshot for a no-refetch read.
const TTL = 600 * time.Second

// Current holds the present conditions at a location.
type Current struct {
	TempC       int       `json:"temp_c"`
	FeelsLikeC  int       `json:"feels_like_c"`
	Humidity    int       `json:"humidity"`
	WindKmph    int       `json:"wind_kmph"`
	WindDir     string    `json:"wind_dir"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	IsDay       bool      `json:"is_day"`
}

// TimeOfDay is one quarter of the forecast day.
type TimeOfDay int

const (
	Night TimeOfDay = iota // 0-6
	Morning                // 6-12
	Noon                   // 12-18
	Evening                // 18-24
)

// HourRange returns the half-open civil-hour range for the period.
func (p TimeOfDay) HourRange() (start, end int) {
	switch p {
	case Night:
		return 0, 6
	case Morning:
		return 6, 12
	case Noon:
		return 12, 18
	default:
		return 18, 24
	}
}

func (p TimeOfDay) String() string {
	switch p {
	case Night:
		return "night"
	case Morning:
		return "morning"
	case Noon:
		return "noon"
	default:
		return "evening"
	}
}

// Period is a synthesized morning/noon/evening/night forecast slice.
type Period struct {
	Period    TimeOfDay `json:"period"`
	TempC     int       `json:"temp_c"`
	WindKmph  int       `json:"wind_kmph"`
	WindDir   string    `json:"wind_dir"`
	Condition Condition `json:"condition"`
}

// DayForecast is one forecast day with its period breakdown.
type DayForecast struct {
	Date      string    `json:"date"`
	TempMaxC  int       `json:"temp_max_c"`
	TempMinC  int       `json:"temp_min_c"`
	WindMax   int       `json:"wind_max_kmph"`
	Condition Condition `json:"condition"`
	Periods   []Period  `json:"periods"`
}

// Snapshot is a location's cached weather state. Overwritten wholesale on
// each refresh, never merged.
type Snapshot struct {
	Location  string        `json:"location"`
	Current   Current       `json:"current"`
	Forecast  []DayForecast `json:"forecast"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// TempString formats the current temperature.
func (s Snapshot) TempString() string {
	return fmt.Sprintf("%d°C", s.Current.TempC)
}

// FeelsLikeString formats the apparent temperature.
func (s Snapshot) FeelsLikeString() string {
	return fmt.Sprintf("%d°C", s.Current.FeelsLikeC)
}
