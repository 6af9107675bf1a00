package timeconv

import (
	"testing"
	"time"

	"tableflip.dev/meridian/pkg/location"
	"tableflip.dev/meridian/pkg/tui/theme"
)

func testRegistry() *location.Registry {
	return location.NewRegistry(
		location.Location{Name: "Wellington", Code: "WLG", Timezone: "Etc/GMT-12", Currency: "NZD"},
		location.Location{Name: "Boston", Code: "BOS", Timezone: "Etc/GMT+5", Currency: "USD"},
		[]location.Location{
			{Name: "London", Code: "LON", Timezone: "Etc/GMT", Currency: "GBP"},
		},
	)
}

func newFixed(t *testing.T) Model {
	t.Helper()
	m := New(testRegistry(), theme.Default())
	m.now = func() time.Time {
		return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	}
	m.SetToNow()
	return m
}

func TestSwapTwiceRestoresPair(t *testing.T) {
	m := newFixed(t)
	from, to := m.From(), m.To()
	m.Swap()
	if m.From() != to || m.To() != from {
		t.Fatalf("swap = %s→%s, want %s→%s", m.From(), m.To(), to, from)
	}
	m.Swap()
	if m.From() != from || m.To() != to {
		t.Errorf("double swap = %s→%s, want %s→%s", m.From(), m.To(), from, to)
	}
}

func TestCycleTargetSkipsSource(t *testing.T) {
	m := newFixed(t)
	for i := 0; i < 10; i++ {
		m.CycleTarget()
		if m.To() == m.From() {
			t.Fatalf("cycle %d landed target on source %s", i, m.From())
		}
	}
}

func TestCycleWithTwoLocationsAlternates(t *testing.T) {
	reg := location.NewRegistry(
		location.Location{Name: "Wellington", Code: "WLG", Timezone: "Etc/GMT-12"},
		location.Location{Name: "Boston", Code: "BOS", Timezone: "Etc/GMT+5"},
		nil,
	)
	m := New(reg, theme.Default())
	before := m.To()
	m.CycleTarget()
	if m.To() != before {
		t.Errorf("with two locations the only valid target is %s, got %s", before, m.To())
	}
}

func TestCommitParsesBuffer(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("930") {
		m.PushDigit(d)
	}
	m.Commit()
	if m.Invalid() {
		t.Fatal("930 should be a valid reading")
	}
	if m.Hour() != 9 || m.Minute() != 30 {
		t.Errorf("reading = %02d:%02d, want 09:30", m.Hour(), m.Minute())
	}
	if m.Editing() {
		t.Error("commit should leave editing mode")
	}
}

func TestInvalidFlagIsStickyUntilSuccess(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	m.Commit() // empty buffer
	if !m.Invalid() {
		t.Fatal("empty buffer should set the invalid flag")
	}

	m.StartEditing()
	m.PushDigit('7')
	m.Commit()
	if m.Invalid() {
		t.Error("a successful conversion should clear the flag")
	}
	if m.Hour() != 7 || m.Minute() != 0 {
		t.Errorf("reading = %02d:%02d, want 07:00", m.Hour(), m.Minute())
	}
}

func TestConvertedResult(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("0900") {
		m.PushDigit(d)
	}
	m.Commit()
	// 09:00 at UTC+12 is 21:00 UTC-1d, so 16:00 UTC-5 the previous day.
	res := m.Result()
	if res.Hour != 16 || res.Minute != 0 || res.DayOffset != -1 {
		t.Errorf("result = %02d:%02d offset %d, want 16:00 offset -1", res.Hour, res.Minute, res.DayOffset)
	}
}

func TestAdjustWraps(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("2330") {
		m.PushDigit(d)
	}
	m.Commit()
	m.AdjustHour(1)
	if m.Hour() != 0 {
		t.Errorf("hour wrap = %d, want 0", m.Hour())
	}
	m.AdjustMinute(-31)
	if m.Hour() != 23 || m.Minute() != 59 {
		t.Errorf("minute borrow = %02d:%02d, want 23:59", m.Hour(), m.Minute())
	}
}

func TestAdjustSupersedesDigitEntry(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("0830") {
		m.PushDigit(d)
	}
	m.Commit()
	m.StartEditing()
	m.PushDigit('9')
	m.AdjustHour(1)
	if m.Editing() {
		t.Error("a direct adjustment should leave digit entry")
	}
	if m.Hour() != 9 || m.Minute() != 30 {
		t.Errorf("reading = %02d:%02d, want 09:30", m.Hour(), m.Minute())
	}
}

func TestResetClearsReadingAndBuffer(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("1745") {
		m.PushDigit(d)
	}
	m.Commit()
	m.StartEditing()
	m.PushDigit('9')
	m.Reset()
	if m.Editing() {
		t.Error("reset should leave digit entry")
	}
	if m.Hour() != 0 || m.Minute() != 0 {
		t.Errorf("reading = %02d:%02d, want 00:00", m.Hour(), m.Minute())
	}
	if m.Invalid() {
		t.Error("reset should produce a valid conversion")
	}
}

func TestBufferCapsAtFourDigits(t *testing.T) {
	m := newFixed(t)
	m.StartEditing()
	for _, d := range []byte("123456") {
		m.PushDigit(d)
	}
	m.Commit()
	if m.Hour() != 12 || m.Minute() != 34 {
		t.Errorf("overlong entry = %02d:%02d, want 12:34", m.Hour(), m.Minute())
	}
}
