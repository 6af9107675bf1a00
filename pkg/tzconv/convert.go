package tzconv

import (
	"errors"
	"time"

	"tableflip.dev/meridian/pkg/location"
)

// ErrNonexistent is returned when the requested wall-clock reading falls in a
// spring-forward gap and never occurs in the source zone.
var ErrNonexistent = errors.New("time does not exist in source timezone")

// Result is the outcome of a successful conversion. DayOffset is the signed
// difference between the destination's calendar date and the source's, in
// whole days.
type Result struct {
	Hour      int
	Minute    int
	DayOffset int
}

// Convert projects hour:minute onto the source location's current calendar
// date, localizes it in the source zone, and reports the destination's civil
// time for the same instant.
//
// An ambiguous reading (fall-back overlap) resolves to the occurrence with the
// smaller UTC offset, the standard-time interpretation. A nonexistent reading
// fails with ErrNonexistent and an unknown code with location.ErrUnknown; the
// caller keeps its previous result in both cases.
func Convert(reg *location.Registry, fromCode, toCode string, hour, minute int, now time.Time) (Result, error) {
	from, err := reg.Lookup(fromCode)
	if err != nil {
		return Result{}, err
	}
	to, err := reg.Lookup(toCode)
	if err != nil {
		return Result{}, err
	}
	fromZone, err := loadZone(from.Timezone)
	if err != nil {
		return Result{}, err
	}
	toZone, err := loadZone(to.Timezone)
	if err != nil {
		return Result{}, err
	}

	// The requested clock reading is anchored to the source's current civil
	// date, not the UTC date.
	y, mo, d := now.In(fromZone).Date()
	instant, err := localize(y, mo, d, hour, minute, fromZone)
	if err != nil {
		return Result{}, err
	}

	target := instant.In(toZone)
	ty, tmo, td := target.Date()
	return Result{
		Hour:      target.Hour(),
		Minute:    target.Minute(),
		DayOffset: int(civilDays(ty, tmo, td) - civilDays(y, mo, d)),
	}, nil
}

// localize maps a naive wall-clock reading onto an instant in zone. Candidate
// instants are generated from every UTC offset observed around the reading;
// each candidate is kept only if its civil time in zone reproduces the
// reading exactly.
func localize(y int, mo time.Month, d, hour, minute int, zone *time.Location) (time.Time, error) {
	naiveUTC := time.Date(y, mo, d, hour, minute, 0, 0, time.UTC)

	seen := make(map[int]bool, 3)
	var matches []time.Time
	for _, probe := range []time.Duration{-30 * time.Hour, 0, 30 * time.Hour} {
		_, offset := naiveUTC.Add(probe).In(zone).Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true

		candidate := naiveUTC.Add(-time.Duration(offset) * time.Second)
		cy, cmo, cd := candidate.In(zone).Date()
		ch, cm, _ := candidate.In(zone).Clock()
		if cy == y && cmo == mo && cd == d && ch == hour && cm == minute {
			matches = append(matches, candidate)
		}
	}

	switch len(matches) {
	case 0:
		return time.Time{}, ErrNonexistent
	case 1:
		return matches[0], nil
	}

	best := matches[0]
	_, bestOffset := best.In(zone).Zone()
	for _, m := range matches[1:] {
		if _, offset := m.In(zone).Zone(); offset < bestOffset {
			best, bestOffset = m, offset
		}
	}
	return best, nil
}

// civilDays counts whole days from the epoch for a calendar date, so date
// differences are immune to the zones' clock offsets.
func civilDays(y int, mo time.Month, d int) int64 {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
