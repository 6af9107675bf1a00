// Package timeconv is the interactive time-conversion panel: pick a source
// and target location, dial in a wall-clock reading, see the converted time.
package timeconv

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/meridian/pkg/location"
	"tableflip.dev/meridian/pkg/tui/theme"
	"tableflip.dev/meridian/pkg/tzconv"
)

const maxDigits = 4

// Model holds the converter's state. The displayed result only changes on a
// successful conversion; invalid input raises a sticky flag instead.
type Model struct {
	registry *location.Registry
	fromCode string
	toCode   string

	hour   int
	minute int
	result tzconv.Result

	editing bool
	buffer  string
	invalid bool

	theme  theme.Theme
	width  int
	height int
	now    func() time.Time
}

// New builds a converter from the primary location to the home location,
// seeded with the current time.
func New(reg *location.Registry, th theme.Theme) Model {
	m := Model{
		registry: reg,
		fromCode: reg.Primary().Code,
		toCode:   reg.Home().Code,
		theme:    th,
		now:      time.Now,
	}
	m.SetToNow()
	return m
}

// SetSize configures the panel's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRegistry swaps the location set after a config edit. Codes that no
// longer resolve fall back to primary/home.
func (m *Model) SetRegistry(reg *location.Registry) {
	m.registry = reg
	if _, err := reg.Lookup(m.fromCode); err != nil {
		m.fromCode = reg.Primary().Code
	}
	if _, err := reg.Lookup(m.toCode); err != nil {
		m.toCode = reg.Home().Code
	}
	m.convert()
}

// Editing reports whether digit entry is active.
func (m Model) Editing() bool { return m.editing }

// Invalid reports the sticky invalid-input flag.
func (m Model) Invalid() bool { return m.invalid }

// Hour returns the source-side hour.
func (m Model) Hour() int { return m.hour }

// Minute returns the source-side minute.
func (m Model) Minute() int { return m.minute }

// Result returns the last successful conversion.
func (m Model) Result() tzconv.Result { return m.result }

// From returns the source location code.
func (m Model) From() string { return m.fromCode }

// To returns the target location code.
func (m Model) To() string { return m.toCode }

// StartEditing enters digit-entry mode with an empty buffer.
func (m *Model) StartEditing() {
	m.editing = true
	m.buffer = ""
}

// CancelEditing leaves digit-entry mode without changing the reading.
func (m *Model) CancelEditing() {
	m.editing = false
	m.buffer = ""
}

// PushDigit appends a digit to the entry buffer. Input past four digits is
// dropped.
func (m *Model) PushDigit(d byte) {
	if !m.editing {
		m.StartEditing()
	}
	if len(m.buffer) >= maxDigits {
		return
	}
	m.buffer += string(d)
}

// PopDigit removes the last buffered digit.
func (m *Model) PopDigit() {
	if len(m.buffer) > 0 {
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
}

// Commit parses the buffer and applies the reading. An unparsable buffer
// leaves the previous reading and raises the invalid flag; the flag clears on
// the next successful conversion.
func (m *Model) Commit() {
	defer func() { m.editing = false; m.buffer = "" }()
	hour, minute, ok := tzconv.ParseDigits(m.buffer)
	if !ok {
		m.invalid = true
		return
	}
	m.hour, m.minute = hour, minute
	m.convert()
}

// Reset returns the reading to 00:00, dropping any half-typed digits.
func (m *Model) Reset() {
	m.editing = false
	m.buffer = ""
	m.hour, m.minute = 0, 0
	m.convert()
}

// SetToNow resets the reading to the source location's current time.
func (m *Model) SetToNow() {
	loc, err := m.registry.Lookup(m.fromCode)
	if err != nil {
		m.invalid = true
		return
	}
	rt, err := tzconv.Resolve(loc, m.now())
	if err != nil {
		m.invalid = true
		return
	}
	m.hour, m.minute = rt.Time.Hour(), rt.Time.Minute()
	m.convert()
}

// Swap exchanges source and target, keeping the reading.
func (m *Model) Swap() {
	m.fromCode, m.toCode = m.toCode, m.fromCode
	m.convert()
}

// CycleTarget advances the target to the next registry location, skipping
// the source so from and to never collide.
func (m *Model) CycleTarget() {
	m.toCode = m.cycleFrom(m.toCode, m.fromCode)
	m.convert()
}

// CycleSource advances the source to the next registry location, skipping
// the target.
func (m *Model) CycleSource() {
	m.fromCode = m.cycleFrom(m.fromCode, m.toCode)
	m.convert()
}

func (m *Model) cycleFrom(current, skip string) string {
	codes := m.registry.Codes()
	if len(codes) == 0 {
		return current
	}
	start := 0
	for i, c := range codes {
		if strings.EqualFold(c, current) {
			start = i
			break
		}
	}
	for step := 1; step <= len(codes); step++ {
		next := codes[(start+step)%len(codes)]
		if !strings.EqualFold(next, skip) {
			return next
		}
	}
	return current
}

// AdjustHour shifts the hour by delta, wrapping at midnight. A direct
// adjustment supersedes any half-typed digit buffer.
func (m *Model) AdjustHour(delta int) {
	m.editing = false
	m.buffer = ""
	m.hour = ((m.hour+delta)%24 + 24) % 24
	m.convert()
}

// AdjustMinute shifts the minute by delta, carrying into the hour. A direct
// adjustment supersedes any half-typed digit buffer.
func (m *Model) AdjustMinute(delta int) {
	m.editing = false
	m.buffer = ""
	total := m.hour*60 + m.minute + delta
	total = ((total % 1440) + 1440) % 1440
	m.hour, m.minute = total/60, total%60
	m.convert()
}

// convert recomputes the result. Failure keeps the previous result and sets
// the sticky invalid flag; success clears it.
func (m *Model) convert() {
	res, err := tzconv.Convert(m.registry, m.fromCode, m.toCode, m.hour, m.minute, m.now())
	if err != nil {
		m.invalid = true
		return
	}
	m.result = res
	m.invalid = false
}

// View renders the panel.
func (m Model) View(focused bool) string {
	var lines []string
	lines = append(lines, m.theme.Panel.Title.Render("Time Convert"))

	reading := fmt.Sprintf("%02d:%02d", m.hour, m.minute)
	if m.editing {
		buf := m.buffer
		if buf == "" {
			buf = "____"
		}
		reading = m.theme.Data.Editing.Render(buf)
	}

	from := m.locationLabel(m.fromCode)
	to := m.locationLabel(m.toCode)
	lines = append(lines, fmt.Sprintf("%s %s  %s",
		m.theme.Data.Label.Render(from), reading, m.theme.Data.Label.Render("→")))

	converted := fmt.Sprintf("%02d:%02d", m.result.Hour, m.result.Minute)
	if off := m.result.DayOffset; off != 0 {
		converted += fmt.Sprintf(" (%+dd)", off)
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		m.theme.Data.Label.Render(to), m.theme.Data.Value.Render(converted)))

	if m.invalid {
		lines = append(lines, m.theme.Data.Invalid.Render("invalid time"))
	}

	frame := m.theme.Panel.Frame
	if focused {
		frame = m.theme.Panel.Focused
	}
	if m.width > 0 {
		frame = frame.Width(m.width - frame.GetHorizontalFrameSize())
	}
	if m.height > 0 {
		frame = frame.Height(m.height - frame.GetVerticalFrameSize())
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m Model) locationLabel(code string) string {
	if loc, err := m.registry.Lookup(code); err == nil {
		return fmt.Sprintf("%-4s", loc.Code)
	}
	return fmt.Sprintf("%-4s", code)
}
