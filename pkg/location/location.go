// Package location defines the tracked-location value type and the ordered
// registry the rest of the application resolves codes against.
package location

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned when a code has no matching location.
var ErrUnknown = errors.New("unknown location")

// Location describes a single tracked place. The short code is the unique key
// used throughout the application; comparisons are case-insensitive.
type Location struct {
	Name     string `mapstructure:"name" json:"name"`
	Code     string `mapstructure:"code" json:"code"`
	Country  string `mapstructure:"country" json:"country"`
	Timezone string `mapstructure:"timezone" json:"timezone"`
	Currency string `mapstructure:"currency" json:"currency"`
}

// Registry holds the ordered set of locations for one application run. It is
// immutable once built; config reloads construct a replacement.
type Registry struct {
	ordered []Location
}

// NewRegistry builds a registry from the primary location, the home location,
// and any additional tracked locations, in that order. Later entries with a
// code already present (case-insensitive) are dropped.
func NewRegistry(primary, home Location, tracked []Location) *Registry {
	r := &Registry{ordered: make([]Location, 0, 2+len(tracked))}
	seen := make(map[string]bool, 2+len(tracked))
	for _, l := range append([]Location{primary, home}, tracked...) {
		key := strings.ToUpper(l.Code)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		r.ordered = append(r.ordered, l)
	}
	return r
}

// Lookup resolves a code to its location.
func (r *Registry) Lookup(code string) (Location, error) {
	for _, l := range r.ordered {
		if strings.EqualFold(l.Code, code) {
			return l, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrUnknown, code)
}

// All returns the locations in registry order.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Codes returns the location codes in registry order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.ordered))
	for i, l := range r.ordered {
		codes[i] = l.Code
	}
	return codes
}

// Primary returns the first registered location.
func (r *Registry) Primary() Location {
	if len(r.ordered) == 0 {
		return Location{}
	}
	return r.ordered[0]
}

// Home returns the second registered location, falling back to the primary
// when only one location is configured.
func (r *Registry) Home() Location {
	if len(r.ordered) > 1 {
		return r.ordered[1]
	}
	return r.Primary()
}

// Len reports the number of registered locations.
func (r *Registry) Len() int { return len(r.ordered) }
