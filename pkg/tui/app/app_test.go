package app

import (
	"testing"

	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/tui/focus"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	t.Setenv("MERIDIAN_CONFIG_PATH", t.TempDir())
	return New(config.Default(), Services{}, zerolog.Nop())
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.handleKey(k)
	}
}

func TestSpatialNavigation(t *testing.T) {
	m := newTestModel(t)
	if m.focused != focus.Clocks {
		t.Fatalf("initial focus = %v, want clocks", m.focused)
	}

	press(m, "l")
	if m.focused != focus.Weather {
		t.Errorf("l from clocks = %v, want weather", m.focused)
	}
	press(m, "j")
	if m.focused != focus.TimeConvert {
		t.Errorf("j from weather = %v, want time convert", m.focused)
	}
	press(m, "right")
	if m.focused != focus.Currency {
		t.Errorf("right from time convert = %v, want currency", m.focused)
	}
	press(m, "k")
	if m.focused != focus.Weather {
		t.Errorf("k from currency = %v, want weather", m.focused)
	}
	press(m, "h", "h")
	if m.focused != focus.Clocks {
		t.Errorf("h twice from weather = %v, want clocks", m.focused)
	}
}

func TestTabRing(t *testing.T) {
	m := newTestModel(t)
	press(m, "tab", "tab", "tab", "tab")
	if m.focused != focus.Clocks {
		t.Errorf("four tabs = %v, want clocks", m.focused)
	}
	press(m, "shift+tab")
	if m.focused != focus.Currency {
		t.Errorf("shift+tab from clocks = %v, want currency", m.focused)
	}
}

func TestDigitEntersTimeEditing(t *testing.T) {
	m := newTestModel(t)
	press(m, "j") // clocks -> time convert
	if m.focused != focus.TimeConvert {
		t.Fatalf("focus = %v", m.focused)
	}

	press(m, "9", "3", "0")
	if m.mode != ModeEditingTime {
		t.Fatalf("mode = %v, want editing time", m.mode)
	}
	press(m, "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode after enter = %v, want normal", m.mode)
	}
	if m.timeconv.Hour() != 9 || m.timeconv.Minute() != 30 {
		t.Errorf("reading = %02d:%02d, want 09:30", m.timeconv.Hour(), m.timeconv.Minute())
	}
}

func TestEscCancelsEditingWithoutApplying(t *testing.T) {
	m := newTestModel(t)
	press(m, "j")
	hour, minute := m.timeconv.Hour(), m.timeconv.Minute()

	press(m, "1", "2", "esc")
	if m.mode != ModeNormal {
		t.Errorf("mode after esc = %v, want normal", m.mode)
	}
	if m.timeconv.Hour() != hour || m.timeconv.Minute() != minute {
		t.Errorf("esc changed the reading to %02d:%02d", m.timeconv.Hour(), m.timeconv.Minute())
	}
}

func TestEmptyCommitSetsInvalidFlag(t *testing.T) {
	m := newTestModel(t)
	press(m, "j", "enter", "enter")
	if !m.timeconv.Invalid() {
		t.Error("empty commit should raise the invalid flag")
	}
	press(m, "7", "enter")
	if m.timeconv.Invalid() {
		t.Error("successful commit should clear the invalid flag")
	}
}

func TestNavigationIgnoredWhileEditing(t *testing.T) {
	m := newTestModel(t)
	press(m, "j", "1")
	if m.mode != ModeEditingTime {
		t.Fatalf("mode = %v", m.mode)
	}
	press(m, "tab")
	if m.focused != focus.TimeConvert {
		t.Errorf("tab while editing moved focus to %v", m.focused)
	}
	press(m, "esc")
}

func TestCommandModeBuffer(t *testing.T) {
	m := newTestModel(t)
	press(m, "/")
	if m.mode != ModeCommand {
		t.Fatalf("mode = %v, want command", m.mode)
	}
	press(m, "h", "e", "l", "p")
	if m.commandBuffer != "/help" {
		t.Errorf("buffer = %q, want /help", m.commandBuffer)
	}

	press(m, "backspace", "backspace", "backspace", "backspace")
	if m.commandBuffer != "/" {
		t.Errorf("buffer = %q, want /", m.commandBuffer)
	}
	// Deleting the slash leaves command mode.
	press(m, "backspace")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
}

func TestCommandHelpTogglesOverlay(t *testing.T) {
	m := newTestModel(t)
	m.width, m.height = 80, 24
	press(m, "/", "h", "enter")
	if !m.helpVisible {
		t.Error("/h should open the help overlay")
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal after command", m.mode)
	}
}

func TestCommandKeysDoNotLeakToPanels(t *testing.T) {
	m := newTestModel(t)
	press(m, "j") // focus time convert
	press(m, "/", "9", "esc")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if m.timeconv.Editing() {
		t.Error("digit typed in command mode leaked into the time panel")
	}
}

func TestUnknownCommandReportsError(t *testing.T) {
	m := newTestModel(t)
	press(m, "/", "b", "o", "g", "u", "s", "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal after unknown command", m.mode)
	}
	if m.commandBuffer != "" {
		t.Errorf("buffer = %q, want empty", m.commandBuffer)
	}
	if m.helpVisible {
		t.Error("unknown command should not open help")
	}
}

func TestQuestionMarkTogglesHelp(t *testing.T) {
	m := newTestModel(t)
	m.width, m.height = 80, 24
	press(m, "?")
	if !m.helpVisible {
		t.Fatal("? should open help")
	}
}

func TestWeatherRefreshSetsInFlight(t *testing.T) {
	m := newTestModel(t)
	press(m, "l") // weather
	cmd := m.handleKey("r")
	if cmd == nil {
		t.Fatal("r on weather should start a fetch")
	}
	if !m.inFlightWeather {
		t.Error("in-flight guard not set")
	}
	// A second refresh while one is outstanding is a no-op.
	if cmd := m.handleKey("r"); cmd != nil {
		t.Error("second refresh started while one was in flight")
	}
}

func TestWeatherSpaceCyclesLocation(t *testing.T) {
	m := newTestModel(t)
	press(m, "l") // weather
	if m.weatherLoc.Code != "WLG" {
		t.Fatalf("initial weather location = %s, want WLG", m.weatherLoc.Code)
	}

	cmd := m.handleKey("space")
	if m.weatherLoc.Code != "BOS" {
		t.Errorf("weather location after space = %s, want BOS", m.weatherLoc.Code)
	}
	if cmd == nil {
		t.Error("location cycle should start a fetch")
	}
	if !m.inFlightWeather {
		t.Error("in-flight guard not set")
	}

	// Cycling again while the fetch is outstanding advances the location but
	// defers the fetch to the next tick.
	if cmd := m.handleKey("space"); cmd != nil {
		t.Error("cycle with a fetch in flight should not start another")
	}
	if m.weatherLoc.Code != "LDN" {
		t.Errorf("weather location after second space = %s, want LDN", m.weatherLoc.Code)
	}
	if !m.appclock.TakeWeather() {
		t.Error("deferred cycle should leave a weather refresh pending")
	}
}

func TestWeatherCycleWrapsRegistry(t *testing.T) {
	m := newTestModel(t)
	press(m, "l")
	total := m.registry.Len()
	for i := 0; i < total; i++ {
		m.handleKey("space")
		m.inFlightWeather = false
	}
	if m.weatherLoc.Code != "WLG" {
		t.Errorf("after a full cycle weather location = %s, want WLG", m.weatherLoc.Code)
	}
}

func TestTimeEditNudgeKeys(t *testing.T) {
	m := newTestModel(t)
	press(m, "j") // time convert
	press(m, "5", "enter")
	if m.timeconv.Hour() != 5 || m.timeconv.Minute() != 0 {
		t.Fatalf("reading = %02d:%02d, want 05:00", m.timeconv.Hour(), m.timeconv.Minute())
	}

	press(m, "enter") // editing
	if m.mode != ModeEditingTime {
		t.Fatalf("mode = %v, want editing time", m.mode)
	}
	press(m, "k")
	if m.timeconv.Hour() != 6 {
		t.Errorf("hour after k = %d, want 6", m.timeconv.Hour())
	}
	press(m, "l")
	if m.timeconv.Minute() != 1 {
		t.Errorf("minute after l = %d, want 1", m.timeconv.Minute())
	}
	press(m, "down", "left")
	if m.timeconv.Hour() != 5 || m.timeconv.Minute() != 0 {
		t.Errorf("reading = %02d:%02d, want 05:00", m.timeconv.Hour(), m.timeconv.Minute())
	}

	press(m, "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode after enter = %v, want normal", m.mode)
	}
	if m.timeconv.Invalid() {
		t.Error("leaving after nudges should not raise the invalid flag")
	}
	if m.timeconv.Hour() != 5 || m.timeconv.Minute() != 0 {
		t.Errorf("nudged reading lost on exit: %02d:%02d", m.timeconv.Hour(), m.timeconv.Minute())
	}
}

func TestCurrencyCycleStartsRateFetch(t *testing.T) {
	m := newTestModel(t)
	press(m, "l", "j", "l") // currency
	if m.focused != focus.Currency {
		t.Fatalf("focus = %v", m.focused)
	}
	from := m.currency.From()
	cmd := m.handleKey("space")
	if m.currency.From() == from && m.currency.To() == from {
		t.Error("space did not cycle the pair")
	}
	if cmd == nil {
		t.Error("pair cycle should request a rate")
	}
	if !m.inFlightRate {
		t.Error("in-flight guard not set")
	}
}

func TestTimePanelDualUseOfR(t *testing.T) {
	m := newTestModel(t)
	press(m, "j") // time convert
	press(m, "5", "3", "0", "enter")
	if m.timeconv.Hour() != 5 || m.timeconv.Minute() != 30 {
		t.Fatalf("reading = %02d:%02d, want 05:30", m.timeconv.Hour(), m.timeconv.Minute())
	}
	press(m, "r") // reset to 00:00, not a weather refresh
	if m.inFlightWeather {
		t.Error("r on the time panel should not touch weather")
	}
	if m.timeconv.Hour() != 0 || m.timeconv.Minute() != 0 {
		t.Errorf("reading after r = %02d:%02d, want 00:00", m.timeconv.Hour(), m.timeconv.Minute())
	}
	press(m, "n") // back to the source location's current time
	if m.timeconv.Invalid() {
		t.Error("n should set a valid reading")
	}
}

func TestCurrencyCycleAliasC(t *testing.T) {
	m := newTestModel(t)
	press(m, "l", "j", "l") // currency
	from, to := m.currency.From(), m.currency.To()
	cmd := m.handleKey("c")
	if m.currency.From() == from && m.currency.To() == to {
		t.Error("c did not cycle the pair")
	}
	if cmd == nil {
		t.Error("pair cycle should request a rate")
	}
}

func TestCurrencySwapWithoutRateStartsFetch(t *testing.T) {
	m := newTestModel(t)
	press(m, "l", "j", "l") // currency
	if m.currency.HasQuote() {
		t.Fatal("fresh panel should have no quote")
	}

	cmd := m.handleKey("s")
	if cmd == nil {
		t.Error("rate-less swap should start a fetch")
	}
	if !m.inFlightRate {
		t.Error("in-flight guard not set")
	}

	// Swapping again while the fetch is outstanding defers the request to
	// the next tick instead of dropping it.
	if cmd := m.handleKey("s"); cmd != nil {
		t.Error("swap with a fetch in flight should not start another")
	}
	if !m.appclock.TakeCurrency() {
		t.Error("deferred swap should leave a currency refresh pending")
	}
}
