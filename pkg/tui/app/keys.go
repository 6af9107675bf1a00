package app

import (
	"errors"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/tui/components/footer"
	"tableflip.dev/meridian/pkg/tui/components/help"
	"tableflip.dev/meridian/pkg/tui/focus"
)

var errServiceOffline = errors.New("service not wired")

// handleKey routes one keypress by priority: the command line, then the
// active input mode, then global navigation and panel-local bindings. The
// help overlay intercepts keys earlier, in Update.
func (m *Model) handleKey(key string) tea.Cmd {
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.mode == ModeCommand {
		return m.handleCommandKey(key)
	}
	if key == "/" {
		m.enterCommandMode()
		return nil
	}

	switch m.mode {
	case ModeEditingTime:
		return m.handleTimeEditKey(key)
	case ModeEditingCurrency:
		return m.handleCurrencyEditKey(key)
	}
	return m.handleNormalKey(key)
}

func (m *Model) handleNormalKey(key string) tea.Cmd {
	// Global bindings first.
	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.toggleHelp()
		return nil
	case "tab":
		m.focused = focus.Next(m.focused)
		m.footer.SetHelp(m.helpHint())
		return nil
	case "shift+tab":
		m.focused = focus.Prev(m.focused)
		m.footer.SetHelp(m.helpHint())
		return nil
	case "h", "left":
		return m.move(focus.Left)
	case "j", "down":
		return m.move(focus.Down)
	case "k", "up":
		return m.move(focus.Up)
	case "l", "right":
		return m.move(focus.Right)
	case "E":
		return m.openEditor()
	case "R":
		return m.resetDefaults()
	}

	switch m.focused {
	case focus.Clocks:
		if key == "t" {
			m.clocks.ToggleFormat()
		}
	case focus.Weather:
		switch key {
		case "e":
			m.weather.ToggleExpanded()
		case "space", " ":
			return m.cycleWeather()
		case "r":
			if !m.inFlightWeather {
				return m.fetchWeather()
			}
		}
	case focus.TimeConvert:
		switch key {
		case "s":
			m.timeconv.Swap()
		case "space", " ":
			m.timeconv.CycleTarget()
		case "n":
			m.timeconv.SetToNow()
		case "r":
			m.timeconv.Reset()
		case "+":
			m.timeconv.AdjustHour(1)
		case "-":
			m.timeconv.AdjustHour(-1)
		case "enter":
			m.timeconv.StartEditing()
			m.setMode(ModeEditingTime)
		default:
			if isDigit(key) {
				m.timeconv.PushDigit(key[0])
				m.setMode(ModeEditingTime)
			}
		}
	case focus.Currency:
		switch key {
		case "s":
			m.currency.Swap()
			// A swap without a known rate needs a fetch to fill the pair in.
			if !m.currency.HasQuote() {
				if cmd := m.rateForCurrentPair(); cmd != nil {
					return cmd
				}
				m.appclock.RequestCurrency()
			}
		case "space", " ", "c":
			m.currency.CyclePair()
			if cmd := m.rateForCurrentPair(); cmd != nil {
				return cmd
			}
			m.appclock.RequestCurrency()
		case "enter":
			m.currency.StartEditing()
			m.setMode(ModeEditingCurrency)
		default:
			if isDigit(key) || key == "." {
				m.currency.Push(key[0])
				m.setMode(ModeEditingCurrency)
			}
		}
	}
	return nil
}

func (m *Model) handleTimeEditKey(key string) tea.Cmd {
	switch {
	case key == "esc":
		m.timeconv.CancelEditing()
		m.setMode(ModeNormal)
	case key == "enter":
		// Nudge keys supersede digit entry; enter after a nudge just leaves
		// the mode.
		if m.timeconv.Editing() {
			m.timeconv.Commit()
		}
		m.setMode(ModeNormal)
	case key == "backspace":
		m.timeconv.PopDigit()
	case key == "k" || key == "up":
		m.timeconv.AdjustHour(1)
	case key == "j" || key == "down":
		m.timeconv.AdjustHour(-1)
	case key == "l" || key == "right":
		m.timeconv.AdjustMinute(1)
	case key == "h" || key == "left":
		m.timeconv.AdjustMinute(-1)
	case isDigit(key):
		m.timeconv.PushDigit(key[0])
	}
	return nil
}

func (m *Model) handleCurrencyEditKey(key string) tea.Cmd {
	switch {
	case key == "esc":
		m.currency.CancelEditing()
		m.setMode(ModeNormal)
	case key == "enter":
		m.currency.Commit()
		m.setMode(ModeNormal)
	case key == "backspace":
		m.currency.Pop()
	case isDigit(key) || key == ".":
		m.currency.Push(key[0])
	}
	return nil
}

func (m *Model) handleCommandKey(key string) tea.Cmd {
	switch {
	case key == "esc":
		m.exitCommandMode()
	case key == "enter":
		verb := strings.TrimPrefix(m.commandBuffer, "/")
		m.exitCommandMode()
		return m.executeCommand(verb)
	case key == "backspace":
		if len(m.commandBuffer) > 1 {
			m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
			m.footer.SetCommand(m.commandBuffer)
		} else {
			m.exitCommandMode()
		}
	case key == "space":
		m.commandBuffer += " "
		m.footer.SetCommand(m.commandBuffer)
	case len(key) == 1:
		m.commandBuffer += key
		m.footer.SetCommand(m.commandBuffer)
	}
	return nil
}

func (m *Model) executeCommand(verb string) tea.Cmd {
	switch strings.TrimSpace(strings.ToLower(verb)) {
	case "help", "h":
		m.toggleHelp()
	case "edit", "e":
		return m.openEditor()
	case "refresh":
		m.setStatus("refreshing")
		return m.refreshAll()
	case "reset", "r":
		return m.resetDefaults()
	case "quit", "q":
		return tea.Quit
	case "":
	default:
		m.setError("Unknown command: /" + verb)
	}
	return nil
}

// cycleWeather advances the weather panel to the next tracked location and
// requests a snapshot for it. With a fetch already outstanding the request is
// deferred to the next tick.
func (m *Model) cycleWeather() tea.Cmd {
	locs := m.registry.All()
	if len(locs) == 0 {
		return nil
	}
	idx := 0
	for i, l := range locs {
		if strings.EqualFold(l.Code, m.weatherLoc.Code) {
			idx = i
			break
		}
	}
	m.weatherLoc = locs[(idx+1)%len(locs)]
	if m.inFlightWeather {
		m.appclock.RequestWeather()
		return nil
	}
	return m.fetchWeather()
}

func (m *Model) move(d focus.Direction) tea.Cmd {
	m.focused = focus.Move(m.focused, d)
	m.footer.SetHelp(m.helpHint())
	return nil
}

func (m *Model) toggleHelp() {
	if m.helpVisible {
		m.helpVisible = false
		return
	}
	if m.help == nil {
		m.help = help.New(m.width*4/5, (m.height-1)*4/5)
	}
	m.helpVisible = true
}

func (m *Model) enterCommandMode() {
	m.mode = ModeCommand
	m.commandBuffer = "/"
	m.footer.SetMode(footer.ModeCommand)
	m.footer.SetCommand(m.commandBuffer)
}

func (m *Model) exitCommandMode() {
	m.mode = ModeNormal
	m.commandBuffer = ""
	m.footer.SetMode(footer.ModeNormal)
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	switch mode {
	case ModeEditingTime, ModeEditingCurrency:
		m.footer.SetMode(footer.ModeEditing)
		m.footer.SetHelp("enter apply · esc cancel · backspace delete")
	case ModeCommand:
		m.footer.SetMode(footer.ModeCommand)
	default:
		m.footer.SetMode(footer.ModeNormal)
		m.footer.SetHelp(m.helpHint())
	}
}

func (m *Model) openEditor() tea.Cmd {
	path, err := config.Path()
	if err != nil {
		m.setError("config path: " + err.Error())
		return nil
	}
	cmd := exec.Command(m.cfg.EditorCommand(), path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m *Model) resetDefaults() tea.Cmd {
	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		m.setError("reset: " + err.Error())
		return nil
	}
	m.applyConfig(cfg)
	m.setStatus("config reset to defaults")
	return m.refreshAll()
}

func (m *Model) helpHint() string {
	switch m.focused {
	case focus.Clocks:
		hint := "t 12/24h"
		return hint + " · hjkl move · ? help · q quit"
	case focus.Weather:
		return "e forecast · space city · r refresh · ? help"
	case focus.TimeConvert:
		return "0-9 set time · s swap · space target · n now · r 00:00 · ? help"
	case focus.Currency:
		return "0-9 amount · s swap · space pair · ? help"
	default:
		return "? help · q quit"
	}
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
