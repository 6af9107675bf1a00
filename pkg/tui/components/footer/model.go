// Package footer renders the bottom status bar: contextual key hints, the
// command-line buffer, and transient status or error text.
package footer

import (
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/meridian/pkg/tui/theme"
)

// Mode selects the footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeCommand
)

// Model tracks footer rendering state.
type Model struct {
	mode    Mode
	help    string
	status  string
	errText string
	command string
	width   int
	theme   theme.FooterTheme
}

// New returns a footer with the default hint line.
func New(th theme.FooterTheme) Model {
	return Model{theme: th}
}

// SetMode updates the layout mode. Leaving command mode clears the buffer.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	if mode != ModeCommand {
		m.command = ""
	}
}

// SetWidth bounds the rendered line.
func (m *Model) SetWidth(width int) { m.width = width }

// SetHelp sets the contextual key-hint line.
func (m *Model) SetHelp(help string) { m.help = help }

// SetStatus sets the transient status message.
func (m *Model) SetStatus(status string) {
	m.status = status
	m.errText = ""
}

// SetError sets the transient error message, displacing any status.
func (m *Model) SetError(err string) {
	m.errText = err
	m.status = ""
}

// SetCommand updates the visible command buffer, slash included.
func (m *Model) SetCommand(buffer string) { m.command = buffer }

// View renders the single footer line, truncated to the width.
func (m Model) View() string {
	var line string
	switch m.mode {
	case ModeCommand:
		line = m.theme.Command.Render(m.command)
	default:
		var segments []string
		if m.errText != "" {
			segments = append(segments, m.theme.Error.Render(m.errText))
		} else if m.status != "" {
			segments = append(segments, m.theme.Status.Render(m.status))
		}
		if m.help != "" {
			segments = append(segments, m.theme.Help.Render(m.help))
		}
		line = strings.Join(segments, " │ ")
	}
	if line == "" {
		line = " "
	}
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}
	return line
}
