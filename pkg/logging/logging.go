// Package logging opens the shared zerolog file logger. The TUI owns the
// terminal, so nothing may ever log to stdout or stderr while it runs.
package logging

import (
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

// Dir returns the cache directory (~/.cache/meridian), honoring
// MERIDIAN_CACHE_PATH for tests and relocated setups.
func Dir() string {
	if override := os.Getenv("MERIDIAN_CACHE_PATH"); override != "" {
		return override
	}
	home, err := homedir.Dir()
	if err != nil {
		return ".meridian-cache"
	}
	return filepath.Join(home, ".cache", "meridian")
}

// New returns a logger writing to meridian.log in the cache directory. When
// the file cannot be opened the logger discards output rather than failing
// the application.
func New(component string) zerolog.Logger {
	dir := Dir()
	var w io.Writer = io.Discard
	if err := os.MkdirAll(dir, 0o755); err == nil {
		f, err := os.OpenFile(filepath.Join(dir, "meridian.log"),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			w = f
		}
	}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}
