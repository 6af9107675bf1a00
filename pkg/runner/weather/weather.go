package weather

import (
	"context"

	"tableflip.dev/meridian/pkg/cachestore"
	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/fetch"
	"tableflip.dev/meridian/pkg/logging"
	"tableflip.dev/meridian/pkg/printers"
	"tableflip.dev/meridian/pkg/weather"
)

// Weather fetches and prints conditions for one location. An empty Code
// means the configured primary location.
type Weather struct {
	Config config.Config
	Code   string
}

func (w *Weather) Do(ctx context.Context) error {
	reg := w.Config.Registry()
	loc := reg.Primary()
	if w.Code != "" {
		var err error
		if loc, err = reg.Lookup(w.Code); err != nil {
			return err
		}
	}

	log := logging.New("weather")
	svc := weather.NewService(
		weather.NewClient("", fetch.DefaultTimeout, log),
		cachestore.Open(logging.Dir()), log)

	snap, err := svc.Get(ctx, loc.Code, loc.Name)
	if err != nil {
		return err
	}
	printers.New().Weather(snap)
	return nil
}
