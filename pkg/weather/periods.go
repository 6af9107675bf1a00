package weather

import "math"

// hourlySeries is the flattened hourly forecast (forecastDays * 24 entries).
type hourlySeries struct {
	temps    []float64
	winds    []float64
	windDirs []float64
	codes    []int
}

// synthesizePeriods folds the hourly series into four periods per day:
// mean temperature, max wind, circular-mean wind direction, and the modal
// weather code within each period's hour range.
func synthesizePeriods(h hourlySeries, days int) [][]Period {
	order := []TimeOfDay{Morning, Noon, Evening, Night}
	out := make([][]Period, 0, days)

	for day := 0; day < days; day++ {
		dayPeriods := make([]Period, 0, len(order))
		for _, p := range order {
			start, end := p.HourRange()
			base := day * 24

			var temps, winds, dirs []float64
			var codes []int
			for hour := start; hour < end; hour++ {
				idx := base + hour
				if idx >= len(h.temps) || idx >= len(h.winds) ||
					idx >= len(h.windDirs) || idx >= len(h.codes) {
					continue
				}
				temps = append(temps, h.temps[idx])
				winds = append(winds, h.winds[idx])
				dirs = append(dirs, h.windDirs[idx])
				codes = append(codes, h.codes[idx])
			}
			if len(temps) == 0 {
				continue
			}

			sum := 0.0
			for _, t := range temps {
				sum += t
			}
			maxWind := 0.0
			for _, w := range winds {
				if w > maxWind {
					maxWind = w
				}
			}
			dirLabel := "?"
			if mean, ok := meanWindDirection(dirs); ok {
				dirLabel = WindDirection(mean)
			}

			dayPeriods = append(dayPeriods, Period{
				Period:    p,
				TempC:     int(math.Round(sum / float64(len(temps)))),
				WindKmph:  int(math.Round(maxWind)),
				WindDir:   dirLabel,
				Condition: ConditionFromWMO(modeCode(codes)),
			})
		}
		out = append(out, dayPeriods)
	}
	return out
}

// meanWindDirection averages bearings on the circle so 350° and 10° come out
// near north instead of south.
func meanWindDirection(degrees []float64) (float64, bool) {
	if len(degrees) == 0 {
		return 0, false
	}
	var sinSum, cosSum float64
	for _, d := range degrees {
		rad := d * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	if sinSum == 0 && cosSum == 0 {
		return 0, false
	}
	mean := math.Atan2(sinSum, cosSum) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	return mean, true
}

// modeCode picks the most frequent code; the earliest occurrence wins ties.
func modeCode(codes []int) int {
	if len(codes) == 0 {
		return 0
	}
	best, bestCount := codes[0], 0
	for _, c := range codes {
		count := 0
		for _, x := range codes {
			if x == c {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = c, count
		}
	}
	return best
}
