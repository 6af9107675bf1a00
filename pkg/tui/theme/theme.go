package theme

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Panel  PanelTheme
	Footer FooterTheme
	Clock  ClockTheme
	Data   DataTheme
}

// PanelTheme styles framed panels; Focused is swapped in for the panel
// holding input focus.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
}

// FooterTheme styles the bottom status/command bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Command lipgloss.Style
	Error   lipgloss.Style
}

// ClockTheme styles the time columns.
type ClockTheme struct {
	Primary lipgloss.Style
	Home    lipgloss.Style
	World   lipgloss.Style
	Offset  lipgloss.Style
	Day     lipgloss.Style
	Night   lipgloss.Style
}

// DataTheme styles the data panels' value fields.
type DataTheme struct {
	Label    lipgloss.Style
	Value    lipgloss.Style
	Stale    lipgloss.Style
	Fallback lipgloss.Style
	Invalid  lipgloss.Style
	Editing  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			Focused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Command: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Clock: ClockTheme{
			Primary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Home:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
			World:   lipgloss.NewStyle(),
			Offset:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Day:     lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			Night:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		},
		Data: DataTheme{
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value:    lipgloss.NewStyle().Bold(true),
			Stale:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Fallback: lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
			Invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Editing:  lipgloss.NewStyle().Reverse(true),
		},
	}
}

// tempStops anchors the temperature color ramp.
var tempStops = []struct {
	temp float64
	col  colorful.Color
}{
	{-10, mustHex("#4aa8ff")},
	{0, mustHex("#7fd4ff")},
	{15, mustHex("#9ae69a")},
	{25, mustHex("#ffd166")},
	{35, mustHex("#ff6b4a")},
}

// TempColor maps a Celsius temperature to a display color, blending in Lab
// space between the ramp stops.
func TempColor(tempC int) color.Color {
	t := float64(tempC)
	if t <= tempStops[0].temp {
		return tempStops[0].col
	}
	last := tempStops[len(tempStops)-1]
	if t >= last.temp {
		return last.col
	}
	for i := 1; i < len(tempStops); i++ {
		lo, hi := tempStops[i-1], tempStops[i]
		if t <= hi.temp {
			frac := (t - lo.temp) / (hi.temp - lo.temp)
			return lo.col.BlendLab(hi.col, frac).Clamped()
		}
	}
	return last.col
}

// TempStyle returns a style colored for the temperature.
func TempStyle(tempC int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TempColor(tempC))
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad theme color %q: %v", s, err))
	}
	return c
}
