// Package clock drives the dashboard's two cadences: a fast display tick and
// a slow data-refresh interval.
package clock

import "time"

const (
	// DefaultTickInterval is the fast cadence used to repaint clocks.
	DefaultTickInterval = 100 * time.Millisecond
	// SlowInterval is the cadence for re-pulling rates and weather.
	SlowInterval = 5 * time.Minute
)

// AppClock tracks frames on the fast cadence and decides when the slow
// refresh is due. Time comparisons use the injected now func so tests can
// step time without sleeping.
type AppClock struct {
	tick    time.Duration
	frame   uint64
	lastRun time.Time
	now     func() time.Time

	weatherPending  bool
	currencyPending bool
}

// New builds a clock with the given fast-tick interval. A zero or negative
// interval falls back to the default.
func New(tick time.Duration) *AppClock {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	c := &AppClock{tick: tick, now: time.Now}
	c.lastRun = c.now()
	return c
}

// Tick advances the frame counter and returns the new frame number.
func (c *AppClock) Tick() uint64 {
	c.frame++
	return c.frame
}

// Frame returns the current frame number.
func (c *AppClock) Frame() uint64 { return c.frame }

// Interval returns the fast-tick duration.
func (c *AppClock) Interval() time.Duration { return c.tick }

// SlowDue reports whether the slow refresh interval has elapsed since the
// last MarkSlow.
func (c *AppClock) SlowDue() bool {
	return c.now().Sub(c.lastRun) >= SlowInterval
}

// MarkSlow records that a slow refresh has started. Pending flags are set so
// each data source is re-pulled exactly once per cycle even if the fetches
// straddle several frames.
func (c *AppClock) MarkSlow() {
	c.lastRun = c.now()
	c.weatherPending = true
	c.currencyPending = true
}

// RequestWeather marks the weather snapshot for re-pull on the next tick.
// Set on location cycling and explicit refresh while a fetch is outstanding.
func (c *AppClock) RequestWeather() { c.weatherPending = true }

// RequestCurrency marks the active rate for re-pull on the next tick. Set on
// pair changes and rate-less swaps while a fetch is outstanding.
func (c *AppClock) RequestCurrency() { c.currencyPending = true }

// TakeWeather consumes the weather-pending flag, returning true at most once
// per slow cycle.
func (c *AppClock) TakeWeather() bool {
	if !c.weatherPending {
		return false
	}
	c.weatherPending = false
	return true
}

// TakeCurrency consumes the currency-pending flag, returning true at most
// once per slow cycle.
func (c *AppClock) TakeCurrency() bool {
	if !c.currencyPending {
		return false
	}
	c.currencyPending = false
	return true
}
