// Package currency is the interactive exchange panel: an amount in one
// currency converted through the cached rate into another.
package currency

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/meridian/pkg/rates"
	"tableflip.dev/meridian/pkg/tui/theme"
)

const maxAmountLen = 12

// Model holds the panel state. The quote arrives asynchronously and carries
// its own provenance, so the view can label fallback and cached values.
type Model struct {
	from   string
	to     string
	amount float64

	editing bool
	buffer  string
	invalid bool

	quote    rates.Quote
	hasQuote bool
	loading  bool

	theme  theme.Theme
	width  int
	height int
}

// New builds the panel over the first built-in pair.
func New(th theme.Theme) Model {
	pair := rates.Pairs[0]
	return Model{
		from:   pair.From,
		to:     pair.To,
		amount: 1,
		theme:  th,
	}
}

// From returns the source currency code.
func (m Model) From() string { return m.from }

// To returns the target currency code.
func (m Model) To() string { return m.to }

// Amount returns the entered amount.
func (m Model) Amount() float64 { return m.amount }

// Editing reports whether amount entry is active.
func (m Model) Editing() bool { return m.editing }

// Invalid reports the sticky invalid-amount flag.
func (m Model) Invalid() bool { return m.invalid }

// HasQuote reports whether a rate is known for the current pair.
func (m Model) HasQuote() bool { return m.hasQuote }

// SetSize configures the panel's outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPair points the panel at a currency pair.
func (m *Model) SetPair(from, to string) {
	m.from = strings.ToUpper(from)
	m.to = strings.ToUpper(to)
	m.hasQuote = false
}

// SetQuote installs a completed rate fetch.
func (m *Model) SetQuote(q rates.Quote) {
	m.quote = q
	m.hasQuote = true
	m.loading = false
}

// StartLoading marks a rate fetch in flight.
func (m *Model) StartLoading() { m.loading = true }

// Swap exchanges the pair's direction. The held quote inverts rather than
// waiting for a refetch.
func (m *Model) Swap() {
	m.from, m.to = m.to, m.from
	if m.hasQuote && m.quote.Rate != 0 {
		m.quote.Rate = 1 / m.quote.Rate
	}
}

// CyclePair advances to the next built-in pair, wrapping at the end. A
// swapped pair cycles from its unswapped position.
func (m *Model) CyclePair() {
	idx := -1
	for i, p := range rates.Pairs {
		if (p.From == m.from && p.To == m.to) || (p.From == m.to && p.To == m.from) {
			idx = i
			break
		}
	}
	next := rates.Pairs[(idx+1)%len(rates.Pairs)]
	m.SetPair(next.From, next.To)
}

// StartEditing enters amount entry with an empty buffer.
func (m *Model) StartEditing() {
	m.editing = true
	m.buffer = ""
}

// CancelEditing leaves amount entry without changing the amount.
func (m *Model) CancelEditing() {
	m.editing = false
	m.buffer = ""
}

// Push appends a digit or a single decimal point to the amount buffer.
func (m *Model) Push(ch byte) {
	if !m.editing {
		m.StartEditing()
	}
	if len(m.buffer) >= maxAmountLen {
		return
	}
	switch {
	case ch >= '0' && ch <= '9':
		m.buffer += string(ch)
	case ch == '.' && !strings.Contains(m.buffer, "."):
		m.buffer += "."
	}
}

// Pop removes the last buffered character.
func (m *Model) Pop() {
	if len(m.buffer) > 0 {
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
}

// Commit parses the buffer into the amount. An unparsable or empty buffer
// keeps the previous amount and raises the invalid flag, which clears on the
// next successful commit.
func (m *Model) Commit() {
	defer func() { m.editing = false; m.buffer = "" }()
	v, err := strconv.ParseFloat(m.buffer, 64)
	if err != nil || v < 0 {
		m.invalid = true
		return
	}
	m.amount = v
	m.invalid = false
}

// View renders the panel.
func (m Model) View(focused bool) string {
	var lines []string
	lines = append(lines, m.theme.Panel.Title.Render("Currency"))

	amount := fmt.Sprintf("%.2f", m.amount)
	if m.editing {
		buf := m.buffer
		if buf == "" {
			buf = "_"
		}
		amount = m.theme.Data.Editing.Render(buf)
	}
	lines = append(lines, fmt.Sprintf("%s %s %s %s",
		amount,
		m.theme.Data.Label.Render(m.from),
		m.theme.Data.Label.Render("→"),
		m.theme.Data.Label.Render(m.to)))

	switch {
	case m.hasQuote:
		converted := m.amount * m.quote.Rate
		value := m.theme.Data.Value.Render(fmt.Sprintf("%.2f %s", converted, m.to))
		lines = append(lines, value)
		rate := fmt.Sprintf("1 %s = %.4f %s", m.from, m.quote.Rate, m.to)
		switch m.quote.Source {
		case rates.SourceFallback:
			lines = append(lines, m.theme.Data.Fallback.Render(rate+" · offline estimate"))
		case rates.SourceCache:
			lines = append(lines, m.theme.Data.Stale.Render(rate+" · cached "+m.quote.FetchedAt.Format("15:04")))
		default:
			lines = append(lines, m.theme.Data.Label.Render(rate))
		}
	case m.loading:
		lines = append(lines, m.theme.Data.Stale.Render("fetching rate"))
	default:
		lines = append(lines, m.theme.Data.Stale.Render("no rate yet"))
	}

	if m.invalid {
		lines = append(lines, m.theme.Data.Invalid.Render("invalid amount"))
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
