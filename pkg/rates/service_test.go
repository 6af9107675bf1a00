package rates

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeFetcher struct {
	rate  float64
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, from, to string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func newTestService(f Fetcher) *Service {
	return NewService(f, nil, zerolog.Nop())
}

func TestRateCachesWithinTTL(t *testing.T) {
	f := &fakeFetcher{rate: 0.61}
	s := newTestService(f)
	t0 := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	q, err := s.Rate(context.Background(), "NZD", "USD")
	if err != nil {
		t.Fatalf("first rate: %v", err)
	}
	if q.Source != SourceLive || q.Rate != 0.61 {
		t.Fatalf("first quote = %+v", q)
	}

	// One second inside the TTL: served from cache, no second fetch.
	s.now = func() time.Time { return t0.Add(599 * time.Second) }
	q, err = s.Rate(context.Background(), "NZD", "USD")
	if err != nil {
		t.Fatalf("cached rate: %v", err)
	}
	if q.Source != SourceCache || f.calls != 1 {
		t.Fatalf("quote = %+v, calls = %d, want cache hit", q, f.calls)
	}

	// One second past the TTL: a new fetch must be attempted.
	s.now = func() time.Time { return t0.Add(601 * time.Second) }
	if _, err := s.Rate(context.Background(), "NZD", "USD"); err != nil {
		t.Fatalf("refetched rate: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("calls = %d, want refetch after TTL", f.calls)
	}
}

func TestRateFallbackOnFetchFailure(t *testing.T) {
	boom := errors.New("socket sadness")
	s := newTestService(&fakeFetcher{err: boom})

	q, err := s.Rate(context.Background(), "NZD", "USD")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want advisory fetch error", err)
	}
	if q.Source != SourceFallback {
		t.Fatalf("source = %v, want fallback", q.Source)
	}
	if want := Fallback("NZD", "USD"); q.Rate != want {
		t.Fatalf("rate = %v, want fallback %v", q.Rate, want)
	}
}

func TestFallbackPivotsThroughBase(t *testing.T) {
	// USD -> JPY via NZD: (1/0.60) * 90.
	got := Fallback("USD", "JPY")
	want := (1 / 0.60) * 90.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Fallback(USD, JPY) = %v, want %v", got, want)
	}

	// Unknown currencies contribute a neutral factor.
	if got := Fallback("XXX", "NZD"); got != 1.0 {
		t.Fatalf("Fallback(XXX, NZD) = %v, want 1.0", got)
	}
	if got := Fallback("NZD", "NZD"); got != 1.0 {
		t.Fatalf("Fallback(NZD, NZD) = %v, want 1.0", got)
	}
}

func TestKeyUppercases(t *testing.T) {
	if got := Key("nzd", "usd"); got != "NZD_USD" {
		t.Fatalf("key = %q", got)
	}
}
