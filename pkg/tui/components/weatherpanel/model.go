// Package weatherpanel renders current conditions and the expandable
// three-day forecast.
package weatherpanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/meridian/pkg/tui/theme"
	"tableflip.dev/meridian/pkg/weather"
)

// Model renders one location's weather. The snapshot is set wholesale when a
// fetch completes; in between the panel keeps the last snapshot on screen.
type Model struct {
	snapshot weather.Snapshot
	hasData  bool
	loading  bool
	expanded bool
	fetchErr error

	spinner spinner.Model
	theme   theme.Theme
	width   int
	height  int
}

// New returns an empty weather panel in its loading state.
func New(th theme.Theme) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		spinner: sp,
		theme:   th,
		loading: true,
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// Update forwards spinner ticks while a fetch is outstanding.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// SetSize configures the panel's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartLoading marks a fetch in flight and returns the spinner tick command.
func (m *Model) StartLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

// SetSnapshot installs a completed fetch result.
func (m *Model) SetSnapshot(s weather.Snapshot) {
	m.snapshot = s
	m.hasData = true
	m.loading = false
	m.fetchErr = nil
}

// SetError records a failed fetch. The last snapshot, if any, stays visible.
func (m *Model) SetError(err error) {
	m.loading = false
	m.fetchErr = err
}

// ToggleExpanded flips between the compact and full forecast views.
func (m *Model) ToggleExpanded() { m.expanded = !m.expanded }

// Expanded reports whether the full forecast is showing.
func (m Model) Expanded() bool { return m.expanded }

// Loading reports whether a fetch is outstanding.
func (m Model) Loading() bool { return m.loading }

// View renders the panel.
func (m Model) View(focused bool) string {
	var lines []string
	title := "Weather"
	if m.hasData {
		title = "Weather · " + m.snapshot.Location
	}
	lines = append(lines, m.theme.Panel.Title.Render(title))

	switch {
	case !m.hasData && m.loading:
		lines = append(lines, m.spinner.View()+" fetching conditions")
	case !m.hasData:
		msg := "weather unavailable"
		if m.fetchErr != nil {
			msg = "weather unavailable: " + m.fetchErr.Error()
		}
		lines = append(lines, m.theme.Data.Stale.Render(msg))
	default:
		lines = append(lines, m.currentLines()...)
		if m.expanded {
			lines = append(lines, "")
			lines = append(lines, m.forecastLines()...)
		}
		if m.loading {
			lines = append(lines, m.theme.Data.Stale.Render(m.spinner.View()+" refreshing"))
		} else if m.fetchErr != nil {
			lines = append(lines, m.theme.Data.Stale.Render("stale · last refresh failed"))
		}
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

func (m Model) currentLines() []string {
	cur := m.snapshot.Current
	tempStyle := theme.TempStyle(cur.TempC)

	head := fmt.Sprintf("%s %s  %s  feels %s",
		cur.Condition.Icon(cur.IsDay),
		cur.Description,
		tempStyle.Render(m.snapshot.TempString()),
		m.snapshot.FeelsLikeString())
	detail := fmt.Sprintf("humidity %d%%  wind %d km/h %s",
		cur.Humidity, cur.WindKmph, cur.WindDir)

	age := m.theme.Data.Stale.Render("as of " + m.snapshot.FetchedAt.Format("15:04"))
	return []string{head, m.theme.Data.Label.Render(detail), age}
}

func (m Model) forecastLines() []string {
	var lines []string
	for _, day := range m.snapshot.Forecast {
		label := day.Date
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = t.Format("Mon 02")
		}
		lines = append(lines, fmt.Sprintf("%s  %s %d°/%d°  wind %d km/h",
			m.theme.Data.Value.Render(label),
			day.Condition.Icon(true),
			day.TempMaxC, day.TempMinC, day.WindMax))
		for _, p := range day.Periods {
			lines = append(lines, m.theme.Data.Label.Render(fmt.Sprintf(
				"  %-8s %s %2d°  %d km/h %s",
				p.Period, p.Condition.Icon(p.Period != weather.Night), p.TempC, p.WindKmph, p.WindDir)))
		}
	}
	return lines
}
