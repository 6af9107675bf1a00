package locations

import (
	"context"
	"time"

	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/printers"
	"tableflip.dev/meridian/pkg/tzconv"
)

// Locations prints the tracked locations with their current civil times.
type Locations struct {
	Config config.Config
}

func (l *Locations) Do(ctx context.Context) error {
	pp := printers.New()
	pp.Title("Tracked locations")

	reg := l.Config.Registry()
	pp.Locations(tzconv.ResolveAll(reg, time.Now()), l.Config.Display.Use24Hour)
	return nil
}
