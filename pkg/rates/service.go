// Package rates caches currency-pair exchange rates with a TTL and degrades
// to a static pivot table when the live source is unreachable.
package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/cachestore"
)

// TTL is the maximum age of a cached rate for a no-refetch read.
const TTL = 600 * time.Second

// Source identifies where a quote came from.
type Source int

const (
	// SourceLive means the rate was just fetched.
	SourceLive Source = iota
	// SourceCache means the rate was served from a fresh cache entry.
	SourceCache
	// SourceFallback means the rate is a static offline approximation.
	SourceFallback
)

// Quote is a usable rate plus its provenance.
type Quote struct {
	Rate      float64
	Source    Source
	FetchedAt time.Time
}

type cached struct {
	rate      float64
	fetchedAt time.Time
}

// Service is the rate cache. It is owned by the interaction loop and is not
// safe for concurrent mutation.
type Service struct {
	fetcher Fetcher
	store   *cachestore.Store
	cache   map[string]cached
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewService wires the cache to a fetcher and an optional persistent store.
func NewService(fetcher Fetcher, store *cachestore.Store, log zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		cache:   make(map[string]cached),
		ttl:     TTL,
		now:     time.Now,
		log:     log,
	}
}

// Key is the canonical cache key for a pair.
func Key(from, to string) string {
	return fmt.Sprintf("%s_%s", strings.ToUpper(from), strings.ToUpper(to))
}

// Rate returns the pair's rate, serving a fresh cached value when one exists
// and fetching otherwise. On fetch failure the returned quote is a fallback
// approximation and err carries the underlying failure as an advisory; the
// quote is always usable.
func (s *Service) Rate(ctx context.Context, from, to string) (Quote, error) {
	key := Key(from, to)
	if c, ok := s.cache[key]; ok && !s.stale(c.fetchedAt) {
		return Quote{Rate: c.rate, Source: SourceCache, FetchedAt: c.fetchedAt}, nil
	}
	if s.store != nil {
		var rate float64
		if fetchedAt, err := s.store.Read("rate-"+key, &rate); err == nil && !s.stale(fetchedAt) {
			s.cache[key] = cached{rate: rate, fetchedAt: fetchedAt}
			return Quote{Rate: rate, Source: SourceCache, FetchedAt: fetchedAt}, nil
		}
	}
	return s.Refresh(ctx, from, to)
}

// Refresh always attempts a live fetch, bypassing cache freshness. Used by
// the periodic refresh so the display stays current even when nothing is
// stale yet.
func (s *Service) Refresh(ctx context.Context, from, to string) (Quote, error) {
	key := Key(from, to)
	rate, err := s.fetcher.Fetch(ctx, from, to)
	if err != nil {
		s.log.Warn().Str("pair", key).Err(err).Msg("rate fetch failed, using fallback")
		return Quote{Rate: Fallback(from, to), Source: SourceFallback}, err
	}
	now := s.now()
	s.cache[key] = cached{rate: rate, fetchedAt: now}
	if s.store != nil {
		if werr := s.store.Write("rate-"+key, rate, now); werr != nil {
			s.log.Warn().Str("pair", key).Err(werr).Msg("persist rate failed")
		}
	}
	s.log.Debug().Str("pair", key).Float64("rate", rate).Msg("rate fetched")
	return Quote{Rate: rate, Source: SourceLive, FetchedAt: now}, nil
}

func (s *Service) stale(fetchedAt time.Time) bool {
	return s.now().Sub(fetchedAt) > s.ttl
}
