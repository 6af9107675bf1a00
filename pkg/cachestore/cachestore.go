// Package cachestore persists fetched rate and weather values between runs as
// diskv-backed JSON envelopes, so the offline indicators stay meaningful after
// a restart.
package cachestore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Envelope wraps a cached value with the instant it was fetched. Staleness is
// always evaluated lazily by the reader.
type Envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Value     json.RawMessage `json:"value"`
}

// Store is a thin keyed wrapper over diskv.
type Store struct {
	d *diskv.Diskv
}

// Open creates a store rooted at basePath. Keys are namespaced with a prefix
// segment ("rate-NZD_USD", "weather-wlg") that becomes a directory level.
func Open(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

// Write stores value under key with its fetch timestamp, overwriting any
// previous envelope.
func (s *Store) Write(key string, value any, fetchedAt time.Time) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cachestore: marshal %q: %w", key, err)
	}
	data, err := json.Marshal(Envelope{FetchedAt: fetchedAt, Value: raw})
	if err != nil {
		return fmt.Errorf("cachestore: marshal envelope %q: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("cachestore: write %q: %w", key, err)
	}
	return nil
}

// Read loads the envelope under key into value and returns when it was
// fetched. A missing key surfaces as the underlying read error.
func (s *Store) Read(key string, value any) (time.Time, error) {
	data, err := s.d.Read(key)
	if err != nil {
		return time.Time{}, fmt.Errorf("cachestore: read %q: %w", key, err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return time.Time{}, fmt.Errorf("cachestore: decode %q: %w", key, err)
	}
	if err := json.Unmarshal(env.Value, value); err != nil {
		return time.Time{}, fmt.Errorf("cachestore: decode value %q: %w", key, err)
	}
	return env.FetchedAt, nil
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{FileName: parts[0]}
	}
	return &diskv.PathKey{Path: parts[:1], FileName: parts[1]}
}

func pathToKey(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pk.Path, "-"), pk.FileName)
}
