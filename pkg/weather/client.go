package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/fetch"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1"
	forecastDays   = 3
)

// Fetcher obtains a weather snapshot for a named place.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (Snapshot, error)
}

// Client fetches from Open-Meteo: free, no API key, current conditions plus
// daily and hourly series in one request.
type Client struct {
	baseURL string
	http    *fetch.Client
	now     func() time.Time
}

// NewClient builds a weather client. baseURL is overridable for tests.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    fetch.New("open-meteo", timeout, log),
		now:     time.Now,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature2M       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity2M  int     `json:"relative_humidity_2m"`
		WindSpeed10M        float64 `json:"wind_speed_10m"`
		WindDirection10M    float64 `json:"wind_direction_10m"`
		WeatherCode         int     `json:"weather_code"`
		IsDay               int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2MMax []float64 `json:"temperature_2m_max"`
		Temperature2MMin []float64 `json:"temperature_2m_min"`
		WindSpeed10MMax  []float64 `json:"wind_speed_10m_max"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
	Hourly struct {
		Temperature2M    []float64 `json:"temperature_2m"`
		WindSpeed10M     []float64 `json:"wind_speed_10m"`
		WindDirection10M []float64 `json:"wind_direction_10m"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"hourly"`
}

// Fetch looks up the place's coordinates and pulls a full snapshot.
func (c *Client) Fetch(ctx context.Context, name string) (Snapshot, error) {
	lat, lon, ok := Coordinates(name)
	if !ok {
		return Snapshot{}, fmt.Errorf("no coordinates known for %q", name)
	}

	url := fmt.Sprintf(
		"%s/forecast?latitude=%v&longitude=%v"+
			"&current=temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,wind_direction_10m,weather_code,is_day"+
			"&daily=temperature_2m_max,temperature_2m_min,wind_speed_10m_max,weather_code"+
			"&hourly=temperature_2m,wind_speed_10m,wind_direction_10m,weather_code"+
			"&timezone=auto&forecast_days=%d",
		c.baseURL, lat, lon, forecastDays)

	data, err := c.http.Get(ctx, url)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch weather: %w", err)
	}
	var resp openMeteoResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Snapshot{}, fmt.Errorf("parse weather response: %w", err)
	}

	periods := synthesizePeriods(hourlySeries{
		temps:    resp.Hourly.Temperature2M,
		winds:    resp.Hourly.WindSpeed10M,
		windDirs: resp.Hourly.WindDirection10M,
		codes:    resp.Hourly.WeatherCode,
	}, forecastDays)

	forecast := make([]DayForecast, 0, forecastDays)
	for i, date := range resp.Daily.Time {
		if i >= forecastDays {
			break
		}
		day := DayForecast{
			Date:      date,
			Condition: ConditionFromWMO(at(resp.Daily.WeatherCode, i)),
		}
		day.TempMaxC = roundAt(resp.Daily.Temperature2MMax, i)
		day.TempMinC = roundAt(resp.Daily.Temperature2MMin, i)
		day.WindMax = roundAt(resp.Daily.WindSpeed10MMax, i)
		if i < len(periods) {
			day.Periods = periods[i]
		}
		forecast = append(forecast, day)
	}

	cur := resp.Current
	return Snapshot{
		Location: name,
		Current: Current{
			TempC:       int(math.Round(cur.Temperature2M)),
			FeelsLikeC:  int(math.Round(cur.ApparentTemperature)),
			Humidity:    cur.RelativeHumidity2M,
			WindKmph:    int(math.Round(cur.WindSpeed10M)),
			WindDir:     WindDirection(cur.WindDirection10M),
			Description: DescribeWMO(cur.WeatherCode),
			Condition:   ConditionFromWMO(cur.WeatherCode),
			IsDay:       cur.IsDay == 1,
		},
		Forecast:  forecast,
		FetchedAt: c.now(),
	}, nil
}

func at(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func roundAt(s []float64, i int) int {
	if i < len(s) {
		return int(math.Round(s[i]))
	}
	return 0
}
