package clock

import (
	"testing"
	"time"
)

func TestTickAdvancesFrame(t *testing.T) {
	c := New(0)
	if c.Interval() != DefaultTickInterval {
		t.Errorf("zero interval should fall back to default, got %v", c.Interval())
	}
	if got := c.Tick(); got != 1 {
		t.Errorf("first tick = %d, want 1", got)
	}
	c.Tick()
	if got := c.Frame(); got != 2 {
		t.Errorf("frame = %d, want 2", got)
	}
}

func TestSlowDue(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c := New(50 * time.Millisecond)
	c.now = func() time.Time { return t0 }
	c.MarkSlow()

	c.now = func() time.Time { return t0.Add(SlowInterval - time.Second) }
	if c.SlowDue() {
		t.Error("slow refresh due before the interval elapsed")
	}
	c.now = func() time.Time { return t0.Add(SlowInterval) }
	if !c.SlowDue() {
		t.Error("slow refresh not due after the interval elapsed")
	}
}

func TestRequestSetsPendingFlags(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.RequestWeather()
	if !c.TakeWeather() {
		t.Error("weather flag not set by RequestWeather")
	}
	c.RequestCurrency()
	if !c.TakeCurrency() {
		t.Error("currency flag not set by RequestCurrency")
	}
}

func TestPendingFlagsConsumeOnce(t *testing.T) {
	c := New(50 * time.Millisecond)
	if c.TakeWeather() || c.TakeCurrency() {
		t.Fatal("flags set before any MarkSlow")
	}
	c.MarkSlow()
	if !c.TakeWeather() {
		t.Error("weather flag not set by MarkSlow")
	}
	if c.TakeWeather() {
		t.Error("weather flag consumed twice")
	}
	if !c.TakeCurrency() {
		t.Error("currency flag not set by MarkSlow")
	}
	if c.TakeCurrency() {
		t.Error("currency flag consumed twice")
	}
}
