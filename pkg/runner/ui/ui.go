package ui

import (
	"context"

	"tableflip.dev/meridian/pkg/cachestore"
	"tableflip.dev/meridian/pkg/config"
	"tableflip.dev/meridian/pkg/fetch"
	"tableflip.dev/meridian/pkg/logging"
	"tableflip.dev/meridian/pkg/rates"
	"tableflip.dev/meridian/pkg/tui/app"
	"tableflip.dev/meridian/pkg/weather"
)

// UI wires the data services and launches the dashboard.
type UI struct {
	Config config.Config
}

func (u *UI) Do(ctx context.Context) error {
	log := logging.New("ui")
	store := cachestore.Open(logging.Dir())

	services := app.Services{
		Rates: rates.NewService(
			rates.NewClient("", fetch.DefaultTimeout, logging.New("rates")),
			store, logging.New("rates")),
		Weather: weather.NewService(
			weather.NewClient("", fetch.DefaultTimeout, logging.New("weather")),
			store, logging.New("weather")),
	}

	log.Info().Msg("dashboard starting")
	return app.Run(u.Config, services, log)
}
