// Package app composes the dashboard: the clocks panel on the left, the
// weather, time-conversion, and currency panels stacked on the right, and a
// status footer. One Model owns all state; data fetches run as commands and
// report back as messages.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/clock"
	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/fetch"
	"tableflip.dev/meridian/pkg/location"
	"tableflip.dev/meridian/pkg/rates"
	"tableflip.dev/meridian/pkg/tui/components/clocks"
	"tableflip.dev/meridian/pkg/tui/components/currency"
	"tableflip.dev/meridian/pkg/tui/components/footer"
	"tableflip.dev/meridian/pkg/tui/components/help"
	"tableflip.dev/meridian/pkg/tui/components/timeconv"
	"tableflip.dev/meridian/pkg/tui/components/weatherpanel"
	"tableflip.dev/meridian/pkg/tui/focus"
	"tableflip.dev/meridian/pkg/tui/theme"
	"tableflip.dev/meridian/pkg/weather"
)

// Mode is the input mode that decides where keystrokes go.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditingTime
	ModeEditingCurrency
	ModeCommand
)

type tickMsg time.Time

type weatherFetchedMsg struct {
	code     string
	snapshot weather.Snapshot
	err      error
}

type rateFetchedMsg struct {
	from, to string
	quote    rates.Quote
	err      error
}

type editorFinishedMsg struct{ err error }

// Services bundles the data layers the UI pulls from.
type Services struct {
	Rates   *rates.Service
	Weather *weather.Service
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg      config.Config
	registry *location.Registry
	theme    theme.Theme
	log      zerolog.Logger

	services Services
	appclock *clock.AppClock

	// weatherLoc is the tracked location the weather panel is showing;
	// space on the panel cycles it through the registry.
	weatherLoc location.Location

	focused       focus.Panel
	mode          Mode
	commandBuffer string

	clocks   clocks.Model
	weather  weatherpanel.Model
	timeconv timeconv.Model
	currency currency.Model
	footer   footer.Model
	help     *help.Model

	helpVisible     bool
	inFlightWeather bool
	inFlightRate    bool

	statusUntil time.Time

	width  int
	height int
}

// statusTTL is how long a transient status or error message stays visible.
const statusTTL = 5 * time.Second

func (m *Model) setStatus(text string) {
	m.footer.SetStatus(text)
	m.statusUntil = time.Now().Add(statusTTL)
}

func (m *Model) setError(text string) {
	m.footer.SetError(text)
	m.statusUntil = time.Now().Add(statusTTL)
}

func (m *Model) expireStatus(now time.Time) {
	if !m.statusUntil.IsZero() && now.After(m.statusUntil) {
		m.footer.SetStatus("")
		m.statusUntil = time.Time{}
	}
}

// New constructs the root model from a loaded config and wired services.
func New(cfg config.Config, services Services, log zerolog.Logger) *Model {
	th := theme.Default()
	reg := cfg.Registry()
	m := &Model{
		cfg:        cfg,
		registry:   reg,
		theme:      th,
		log:        log,
		services:   services,
		appclock:   clock.New(cfg.TickInterval()),
		weatherLoc: reg.Primary(),
		focused:    focus.Clocks,
		clocks:     clocks.New(reg, th, cfg.Display.Use24Hour, cfg.Display.ShowSeconds),
		weather:    weatherpanel.New(th),
		timeconv:   timeconv.New(reg, th),
		currency:   currency.New(th),
		footer:     footer.New(th.Footer),
	}
	m.footer.SetHelp(m.helpHint())
	return m
}

// Run launches the Bubble Tea program.
func Run(cfg config.Config, services Services, log zerolog.Logger) error {
	p := tea.NewProgram(New(cfg, services, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init schedules the first tick and kicks off the initial data pulls.
func (m *Model) Init() tea.Cmd {
	m.appclock.MarkSlow()
	cmds := []tea.Cmd{m.scheduleTick(), m.weather.Init()}
	if m.appclock.TakeWeather() {
		cmds = append(cmds, m.fetchWeather())
	}
	if m.appclock.TakeCurrency() {
		cmds = append(cmds, m.fetchRate())
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()

	case tea.KeyPressMsg:
		if m.helpVisible {
			switch v.String() {
			case "?", "q", "esc":
				m.helpVisible = false
			default:
				if m.help != nil {
					if cmd := m.help.Update(msg); cmd != nil {
						cmds = append(cmds, cmd)
					}
				}
			}
			break
		}
		if cmd := m.handleKey(v.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tickMsg:
		m.appclock.Tick()
		m.clocks.SetNow(time.Time(v))
		m.expireStatus(time.Time(v))
		if m.appclock.SlowDue() {
			m.appclock.MarkSlow()
		}
		// The in-flight guard is checked first so a pending request survives
		// until a fetch can actually be issued.
		if !m.inFlightWeather && m.appclock.TakeWeather() {
			cmds = append(cmds, m.fetchWeather())
		}
		if !m.inFlightRate && m.appclock.TakeCurrency() {
			cmds = append(cmds, m.fetchRate())
		}
		cmds = append(cmds, m.scheduleTick())

	case weatherFetchedMsg:
		m.inFlightWeather = false
		// A stale reply for a location the user has cycled away from is
		// dropped.
		if !strings.EqualFold(v.code, m.weatherLoc.Code) {
			break
		}
		if v.err != nil {
			m.weather.SetError(v.err)
			m.setError("weather: " + v.err.Error())
		} else {
			m.weather.SetSnapshot(v.snapshot)
			m.setStatus("Weather updated for " + v.snapshot.Location)
		}

	case rateFetchedMsg:
		m.inFlightRate = false
		// A stale reply for a pair the user has cycled away from is dropped.
		if v.from == m.currency.From() && v.to == m.currency.To() {
			m.currency.SetQuote(v.quote)
			if v.err != nil {
				m.setStatus("rates offline, showing estimate")
			} else {
				m.setStatus(fmt.Sprintf("Rate: 1 %s = %.4f %s", v.from, v.quote.Rate, v.to))
			}
		}

	case editorFinishedMsg:
		if v.err != nil {
			m.setError("editor: " + v.err.Error())
			break
		}
		if cmd := m.reloadConfig(); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.weather, cmd = m.weather.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.helpVisible && m.help != nil {
			if cmd := m.help.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// View renders the dashboard.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading…"
	}
	if m.helpVisible && m.help != nil {
		overlay := m.help.View()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	left := m.clocks.View(m.focused == focus.Clocks)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.weather.View(m.focused == focus.Weather),
		m.timeconv.View(m.focused == focus.TimeConvert),
		m.currency.View(m.focused == focus.Currency),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer.View())
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := m.height - 1
	leftWidth := m.width * 2 / 5
	if leftWidth < 24 {
		leftWidth = minInt(24, m.width)
	}
	rightWidth := m.width - leftWidth

	m.clocks.SetSize(leftWidth, bodyHeight)
	third := bodyHeight / 3
	m.weather.SetSize(rightWidth, bodyHeight-2*third)
	m.timeconv.SetSize(rightWidth, third)
	m.currency.SetSize(rightWidth, third)
	m.footer.SetWidth(m.width)
	if m.help != nil {
		m.help.SetSize(m.width*4/5, bodyHeight*4/5)
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.appclock.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) fetchWeather() tea.Cmd {
	m.inFlightWeather = true
	svc := m.services.Weather
	loc := m.weatherLoc
	spin := m.weather.StartLoading()
	run := func() tea.Msg {
		if svc == nil {
			return weatherFetchedMsg{code: loc.Code, err: errServiceOffline}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetch.DefaultTimeout)
		defer cancel()
		snap, err := svc.Refresh(ctx, loc.Code, loc.Name)
		return weatherFetchedMsg{code: loc.Code, snapshot: snap, err: err}
	}
	return tea.Batch(run, spin)
}

func (m *Model) fetchRate() tea.Cmd {
	m.inFlightRate = true
	svc := m.services.Rates
	from, to := m.currency.From(), m.currency.To()
	m.currency.StartLoading()
	return func() tea.Msg {
		if svc == nil {
			return rateFetchedMsg{from: from, to: to, err: errServiceOffline}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetch.DefaultTimeout)
		defer cancel()
		quote, err := svc.Refresh(ctx, from, to)
		return rateFetchedMsg{from: from, to: to, quote: quote, err: err}
	}
}

// rateForCurrentPair serves the new pair from cache when fresh and fetches
// otherwise. Used after swap and cycle so the panel is never blank long.
func (m *Model) rateForCurrentPair() tea.Cmd {
	if m.inFlightRate {
		return nil
	}
	m.inFlightRate = true
	svc := m.services.Rates
	from, to := m.currency.From(), m.currency.To()
	m.currency.StartLoading()
	return func() tea.Msg {
		if svc == nil {
			return rateFetchedMsg{from: from, to: to, err: errServiceOffline}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetch.DefaultTimeout)
		defer cancel()
		quote, err := svc.Rate(ctx, from, to)
		return rateFetchedMsg{from: from, to: to, quote: quote, err: err}
	}
}

func (m *Model) reloadConfig() tea.Cmd {
	cfg, err := config.Load()
	if err != nil {
		m.setError("config reload: " + err.Error())
		return nil
	}
	m.applyConfig(cfg)
	m.setStatus("config reloaded")
	return m.refreshAll()
}

// applyConfig swaps in a new configuration wholesale, reinitializing both
// converters against the new registry.
func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	m.registry = cfg.Registry()
	m.weatherLoc = m.registry.Primary()
	m.clocks.SetRegistry(m.registry)
	m.timeconv = timeconv.New(m.registry, m.theme)
	m.currency = currency.New(m.theme)
	m.appclock = clock.New(cfg.TickInterval())
	m.layout()
}

func (m *Model) refreshAll() tea.Cmd {
	var cmds []tea.Cmd
	if !m.inFlightWeather {
		cmds = append(cmds, m.fetchWeather())
	}
	if !m.inFlightRate {
		cmds = append(cmds, m.fetchRate())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
