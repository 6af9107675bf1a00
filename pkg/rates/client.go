package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/fetch"
)

const defaultBaseURL = "https://api.exchangerate-api.com/v4"

// Fetcher obtains one live rate for a currency pair.
type Fetcher interface {
	Fetch(ctx context.Context, from, to string) (float64, error)
}

// Client fetches rates from the free exchangerate API. The endpoint returns
// every rate relative to the base currency in one response; the client
// extracts the destination.
type Client struct {
	baseURL string
	http    *fetch.Client
}

// NewClient builds a rate client. baseURL is overridable for tests; empty
// selects the public endpoint.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    fetch.New("exchange-rate", timeout, log),
	}
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch returns the live rate from one unit of from into to. Any transport
// error, non-2xx status, malformed body, or missing destination key is a
// fetch failure.
func (c *Client) Fetch(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/latest/%s", c.baseURL, strings.ToUpper(from))
	data, err := c.http.Get(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("fetch exchange rate: %w", err)
	}
	var resp latestResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("parse exchange rate response: %w", err)
	}
	rate, ok := resp.Rates[strings.ToUpper(to)]
	if !ok {
		return 0, fmt.Errorf("currency %q not in response", strings.ToUpper(to))
	}
	return rate, nil
}
