// Package printers formats one-shot command output for the terminal.
package printers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	isatty "github.com/mattn/go-isatty"

	"tableflip.dev/meridian/pkg/rates"
	"tableflip.dev/meridian/pkg/tzconv"
	"tableflip.dev/meridian/pkg/weather"
)

// PrettyPrint writes colored, aligned output. Color is dropped automatically
// when stdout is not a terminal.
type PrettyPrint struct{}

// New returns a printer, disabling color for piped output.
func New() *PrettyPrint {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return &PrettyPrint{}
}

// Title prints a bold underlined heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Locations prints the resolved clock table.
func (pp *PrettyPrint) Locations(resolved []tzconv.ResolvedTime, use24 bool) {
	table := uitable.New()
	table.AddRow("LOCATION", "CODE", "TIME", "DAY", "OFFSET")
	for _, rt := range resolved {
		icon := "☾"
		if rt.IsDaytime() {
			icon = "☀"
		}
		table.AddRow(rt.Name, rt.Code, rt.Clock(use24, false), rt.Time.Format("Mon")+" "+icon, rt.OffsetString())
	}
	fmt.Println(table)
}

// Rate prints a quote with its provenance.
func (pp *PrettyPrint) Rate(from, to string, amount float64, q rates.Quote) {
	v := color.New(color.Bold)
	_, _ = v.Printf("%.2f %s = %.2f %s\n", amount, from, amount*q.Rate, to)

	f := color.New(color.Faint)
	switch q.Source {
	case rates.SourceFallback:
		w := color.New(color.FgHiYellow, color.Italic)
		_, _ = w.Printf("1 %s = %.4f %s (offline estimate)\n", from, q.Rate, to)
	case rates.SourceCache:
		_, _ = f.Printf("1 %s = %.4f %s (cached %s)\n", from, q.Rate, to, q.FetchedAt.Format("15:04"))
	default:
		_, _ = f.Printf("1 %s = %.4f %s\n", from, q.Rate, to)
	}
}

// Weather prints current conditions and the period forecast.
func (pp *PrettyPrint) Weather(s weather.Snapshot) {
	pp.Title(s.Location)
	cur := s.Current
	b := color.New(color.Bold)
	_, _ = b.Printf("%s %s  %s (feels %s)\n",
		cur.Condition.Icon(cur.IsDay), cur.Description, s.TempString(), s.FeelsLikeString())

	f := color.New(color.Faint)
	_, _ = f.Printf("humidity %d%%  wind %d km/h %s\n\n", cur.Humidity, cur.WindKmph, cur.WindDir)

	table := uitable.New()
	table.AddRow("DATE", "", "HIGH/LOW", "WIND")
	for _, day := range s.Forecast {
		table.AddRow(day.Date, day.Condition.Icon(true),
			fmt.Sprintf("%d°/%d°", day.TempMaxC, day.TempMinC),
			fmt.Sprintf("%d km/h", day.WindMax))
		for _, p := range day.Periods {
			table.AddRow("  "+p.Period.String(), p.Condition.Icon(p.Period != weather.Night),
				fmt.Sprintf("%d°", p.TempC),
				fmt.Sprintf("%d km/h %s", p.WindKmph, p.WindDir))
		}
	}
	fmt.Println(table)
}
