package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("MERIDIAN_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Primary.Code != "WLG" {
		t.Errorf("default primary = %q, want WLG", cfg.Primary.Code)
	}
	if cfg.Home.Code != "BOS" {
		t.Errorf("default home = %q, want BOS", cfg.Home.Code)
	}
	if len(cfg.Tracked) == 0 {
		t.Error("default tracked list is empty")
	}
	if !cfg.Display.Use24Hour {
		t.Error("default display should use 24 hour time")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("MERIDIAN_CONFIG_PATH", t.TempDir())

	cfg := Default()
	cfg.Display.Use24Hour = false
	cfg.Display.TickInterval = 250
	cfg.Editor = "vi"
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Display.Use24Hour {
		t.Error("use_24_hour did not round trip")
	}
	if got.Display.TickInterval != 250 {
		t.Errorf("tick interval = %d, want 250", got.Display.TickInterval)
	}
	if got.Editor != "vi" {
		t.Errorf("editor = %q, want vi", got.Editor)
	}
	if got.Primary.Timezone != "Pacific/Auckland" {
		t.Errorf("primary timezone = %q", got.Primary.Timezone)
	}
	if len(got.Tracked) != len(cfg.Tracked) {
		t.Errorf("tracked = %d entries, want %d", len(got.Tracked), len(cfg.Tracked))
	}
}

func TestLoadMalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERIDIAN_CONFIG_PATH", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("primary = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("malformed config should not silently reset to defaults")
	}
}

func TestEditorCommandFallbacks(t *testing.T) {
	t.Setenv("EDITOR", "")
	cfg := Config{Editor: "hx"}
	if got := cfg.EditorCommand(); got != "hx" {
		t.Errorf("configured editor = %q, want hx", got)
	}

	cfg.Editor = ""
	t.Setenv("EDITOR", "emacs")
	if got := cfg.EditorCommand(); got != "emacs" {
		t.Errorf("env editor = %q, want emacs", got)
	}

	t.Setenv("EDITOR", "")
	if got := cfg.EditorCommand(); got != "nvim" {
		t.Errorf("fallback editor = %q, want nvim", got)
	}
}
