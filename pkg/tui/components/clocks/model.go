// Package clocks renders the local and world time columns.
package clocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/meridian/pkg/location"
	"tableflip.dev/meridian/pkg/tui/theme"
	"tableflip.dev/meridian/pkg/tzconv"
)

// Model renders the primary and home clocks plus the tracked world list.
type Model struct {
	registry    *location.Registry
	use24       bool
	showSeconds bool
	theme       theme.Theme
	width       int
	height      int
	now         time.Time
}

// New returns a clocks panel over the registry.
func New(reg *location.Registry, th theme.Theme, use24, showSeconds bool) Model {
	return Model{
		registry:    reg,
		use24:       use24,
		showSeconds: showSeconds,
		theme:       th,
		now:         time.Now(),
	}
}

// SetNow advances the displayed instant. Called on every fast tick.
func (m *Model) SetNow(now time.Time) { m.now = now }

// SetSize configures the panel's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRegistry swaps the location set after a config edit.
func (m *Model) SetRegistry(reg *location.Registry) { m.registry = reg }

// ToggleFormat flips between 12 and 24 hour display.
func (m *Model) ToggleFormat() { m.use24 = !m.use24 }

// View renders the panel body.
func (m Model) View(focused bool) string {
	var lines []string
	lines = append(lines, m.theme.Panel.Title.Render("Clocks"))
	lines = append(lines, "")

	primary := m.registry.Primary()
	home := m.registry.Home()
	lines = append(lines, m.clockLine(primary, m.theme.Clock.Primary))
	lines = append(lines, m.clockLine(home, m.theme.Clock.Home))
	lines = append(lines, "")

	for _, loc := range m.registry.All() {
		if strings.EqualFold(loc.Code, primary.Code) || strings.EqualFold(loc.Code, home.Code) {
			continue
		}
		lines = append(lines, m.clockLine(loc, m.theme.Clock.World))
	}

	frame := m.theme.Panel.Frame
	if focused {
		frame = m.theme.Panel.Focused
	}
	body := strings.Join(lines, "\n")
	if m.width > 0 {
		frame = frame.Width(m.width - frame.GetHorizontalFrameSize())
	}
	if m.height > 0 {
		frame = frame.Height(m.height - frame.GetVerticalFrameSize())
	}
	return frame.Render(body)
}

func (m Model) clockLine(loc location.Location, nameStyle lipgloss.Style) string {
	rt, err := tzconv.Resolve(loc, m.now)
	if err != nil {
		return fmt.Sprintf("%-14s %s", loc.Name, m.theme.Data.Invalid.Render("bad timezone"))
	}

	icon := m.theme.Clock.Night.Render("☾")
	if rt.IsDaytime() {
		icon = m.theme.Clock.Day.Render("☀")
	}
	clock := rt.Clock(m.use24, m.showSeconds)
	offset := m.theme.Clock.Offset.Render(rt.OffsetString())
	day := rt.Time.Format("Mon")

	return fmt.Sprintf("%s %s  %s %s %s",
		nameStyle.Render(fmt.Sprintf("%-14s", loc.Name)),
		clock, day, icon, offset)
}
