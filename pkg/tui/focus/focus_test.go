package focus

import "testing"

var panels = []Panel{Clocks, Weather, TimeConvert, Currency}

func TestMoveTable(t *testing.T) {
	cases := []struct {
		from Panel
		dir  Direction
		want Panel
	}{
		{Clocks, Up, Clocks},
		{Clocks, Down, TimeConvert},
		{Clocks, Left, Clocks},
		{Clocks, Right, Weather},

		{Weather, Up, Weather},
		{Weather, Down, TimeConvert},
		{Weather, Left, Clocks},
		{Weather, Right, Weather},

		{TimeConvert, Up, Weather},
		{TimeConvert, Down, TimeConvert},
		{TimeConvert, Left, Clocks},
		{TimeConvert, Right, Currency},

		{Currency, Up, Weather},
		{Currency, Down, Currency},
		{Currency, Left, TimeConvert},
		{Currency, Right, Currency},
	}
	for _, tc := range cases {
		if got := Move(tc.from, tc.dir); got != tc.want {
			t.Errorf("Move(%v, %v) = %v, want %v", tc.from, tc.dir, got, tc.want)
		}
	}
}

func TestMoveIsTotal(t *testing.T) {
	for _, p := range panels {
		for _, d := range []Direction{Up, Down, Left, Right} {
			got := Move(p, d)
			valid := false
			for _, v := range panels {
				if got == v {
					valid = true
				}
			}
			if !valid {
				t.Errorf("Move(%v, %v) left the panel set: %v", p, d, got)
			}
		}
	}
}

func TestRingRoundTrip(t *testing.T) {
	for _, p := range panels {
		if got := Prev(Next(p)); got != p {
			t.Errorf("Prev(Next(%v)) = %v", p, got)
		}
	}
	// Four Nexts walk the whole ring.
	p := Clocks
	for i := 0; i < 4; i++ {
		p = Next(p)
	}
	if p != Clocks {
		t.Errorf("ring length is not 4, ended at %v", p)
	}
}
