// Package focus holds the panel focus state machine. Movement is a total
// function over (panel, direction) so every keypress lands somewhere.
package focus

// Panel identifies one of the four dashboard panels.
type Panel int

const (
	Clocks Panel = iota
	Weather
	TimeConvert
	Currency
)

func (p Panel) String() string {
	switch p {
	case Clocks:
		return "clocks"
	case Weather:
		return "weather"
	case TimeConvert:
		return "time"
	case Currency:
		return "currency"
	default:
		return "unknown"
	}
}

// Direction is a spatial movement request.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ring is the Tab traversal order.
var ring = [4]Panel{Clocks, Weather, TimeConvert, Currency}

// Move resolves a spatial move. The layout is a tall Clocks panel on the
// left with Weather, TimeConvert, and Currency stacked on the right; moves
// with no neighbor in that direction keep the current panel.
func Move(p Panel, d Direction) Panel {
	switch d {
	case Up:
		switch p {
		case TimeConvert, Currency:
			return Weather
		}
	case Down:
		switch p {
		case Weather, Clocks:
			return TimeConvert
		}
	case Left:
		switch p {
		case Weather, TimeConvert:
			return Clocks
		case Currency:
			return TimeConvert
		}
	case Right:
		switch p {
		case Clocks:
			return Weather
		case TimeConvert:
			return Currency
		}
	}
	return p
}

// Next advances along the Tab ring.
func Next(p Panel) Panel {
	for i, r := range ring {
		if r == p {
			return ring[(i+1)%len(ring)]
		}
	}
	return Clocks
}

// Prev steps backwards along the Tab ring.
func Prev(p Panel) Panel {
	for i, r := range ring {
		if r == p {
			return ring[(i+len(ring)-1)%len(ring)]
		}
	}
	return Clocks
}
