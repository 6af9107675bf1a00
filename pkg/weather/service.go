package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/meridian/pkg/cachestore"
)

// Service is the per-location snapshot cache. It is owned by the interaction
// loop and is not safe for concurrent mutation.
type Service struct {
	fetcher Fetcher
	store   *cachestore.Store
	cache   map[string]Snapshot
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewService wires the cache to a fetcher and an optional persistent store.
func NewService(fetcher Fetcher, store *cachestore.Store, log zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		cache:   make(map[string]Snapshot),
		ttl:     TTL,
		now:     time.Now,
		log:     log,
	}
}

// Key is the canonical cache key for a location.
func Key(code string) string {
	return strings.ToLower(code)
}

// Get returns the location's snapshot, serving a fresh cached value when one
// exists and fetching otherwise. Unlike rates there is no offline fallback:
// an error means the panel shows its last snapshot or an unavailable state.
func (s *Service) Get(ctx context.Context, code, name string) (Snapshot, error) {
	key := Key(code)
	if snap, ok := s.cache[key]; ok && !s.stale(snap.FetchedAt) {
		return snap, nil
	}
	if s.store != nil {
		var snap Snapshot
		if fetchedAt, err := s.store.Read("weather-"+key, &snap); err == nil && !s.stale(fetchedAt) {
			snap.FetchedAt = fetchedAt
			s.cache[key] = snap
			return snap, nil
		}
	}
	return s.Refresh(ctx, code, name)
}

// Refresh always attempts a live fetch, bypassing cache freshness.
func (s *Service) Refresh(ctx context.Context, code, name string) (Snapshot, error) {
	key := Key(code)
	snap, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		s.log.Warn().Str("location", key).Err(err).Msg("weather fetch failed")
		if prev, ok := s.cache[key]; ok {
			return prev, fmt.Errorf("refresh %s: %w", name, err)
		}
		return Snapshot{}, fmt.Errorf("refresh %s: %w", name, err)
	}
	s.cache[key] = snap
	if s.store != nil {
		if werr := s.store.Write("weather-"+key, snap, snap.FetchedAt); werr != nil {
			s.log.Warn().Str("location", key).Err(werr).Msg("persist weather failed")
		}
	}
	s.log.Debug().Str("location", key).Str("cond", snap.Current.Description).Msg("weather fetched")
	return snap, nil
}

// Cached returns the last known snapshot without any freshness check or
// network activity. Used to keep stale data on screen while a refresh runs.
func (s *Service) Cached(code string) (Snapshot, bool) {
	snap, ok := s.cache[Key(code)]
	return snap, ok
}

func (s *Service) stale(fetchedAt time.Time) bool {
	return s.now().Sub(fetchedAt) > s.ttl
}
