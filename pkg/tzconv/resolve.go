// Package tzconv resolves civil times for tracked locations and converts a
// wall-clock reading between two of them, DST-aware.
package tzconv

import (
	"fmt"
	"sync"
	"time"

	// Bundle the zone database so conversions work on hosts without one.
	_ "time/tzdata"

	"tableflip.dev/meridian/pkg/location"
)

var zones sync.Map // timezone id -> *time.Location

func loadZone(id string) (*time.Location, error) {
	if z, ok := zones.Load(id); ok {
		return z.(*time.Location), nil
	}
	z, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", id, err)
	}
	zones.Store(id, z)
	return z, nil
}

// ResolvedTime is a location's civil time at a point in time. Recomputed every
// tick, never persisted.
type ResolvedTime struct {
	Name        string
	Code        string
	Time        time.Time
	OffsetHours float64
}

// Resolve computes the civil time and UTC offset for a location at now.
func Resolve(l location.Location, now time.Time) (ResolvedTime, error) {
	zone, err := loadZone(l.Timezone)
	if err != nil {
		return ResolvedTime{}, err
	}
	local := now.In(zone)
	_, offset := local.Zone()
	return ResolvedTime{
		Name:        l.Name,
		Code:        l.Code,
		Time:        local,
		OffsetHours: float64(offset) / 3600.0,
	}, nil
}

// ResolveAll resolves every location in the registry, skipping any with an
// unloadable zone.
func ResolveAll(reg *location.Registry, now time.Time) []ResolvedTime {
	all := reg.All()
	out := make([]ResolvedTime, 0, len(all))
	for _, l := range all {
		rt, err := Resolve(l, now)
		if err != nil {
			continue
		}
		out = append(out, rt)
	}
	return out
}

// Clock formats the civil time according to the display preferences.
func (rt ResolvedTime) Clock(use24Hour, showSeconds bool) string {
	switch {
	case use24Hour && showSeconds:
		return rt.Time.Format("15:04:05")
	case use24Hour:
		return rt.Time.Format("15:04")
	case showSeconds:
		return rt.Time.Format("03:04:05 PM")
	default:
		return rt.Time.Format("03:04 PM")
	}
}

// IsDaytime reports whether the civil hour falls between 6am and 6pm.
func (rt ResolvedTime) IsDaytime() bool {
	h := rt.Time.Hour()
	return h >= 6 && h < 18
}

// OffsetString renders the UTC offset as e.g. "UTC+12" or "UTC+5.5".
func (rt ResolvedTime) OffsetString() string {
	if rt.OffsetHours == float64(int(rt.OffsetHours)) {
		return fmt.Sprintf("UTC%+d", int(rt.OffsetHours))
	}
	return fmt.Sprintf("UTC%+.1f", rt.OffsetHours)
}
