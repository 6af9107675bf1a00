package rate

import (
	"context"
	"strings"

	"tableflip.dev/meridian/pkg/cachestore"
	"tableflip.dev/meridian/pkg/fetch"
	"tableflip.dev/meridian/pkg/logging"
	"tableflip.dev/meridian/pkg/printers"
	"tableflip.dev/meridian/pkg/rates"
)

// Rate fetches and prints one currency pair. A fetch failure still prints
// the offline estimate.
type Rate struct {
	From   string
	To     string
	Amount float64
}

func (r *Rate) Do(ctx context.Context) error {
	log := logging.New("rate")
	svc := rates.NewService(
		rates.NewClient("", fetch.DefaultTimeout, log),
		cachestore.Open(logging.Dir()), log)

	quote, err := svc.Rate(ctx, r.From, r.To)
	if err != nil {
		log.Warn().Err(err).Msg("serving fallback rate")
	}

	amount := r.Amount
	if amount == 0 {
		amount = 1
	}
	printers.New().Rate(strings.ToUpper(r.From), strings.ToUpper(r.To), amount, quote)
	return nil
}
