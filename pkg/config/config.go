// Package config loads and saves the dashboard configuration, a TOML file
// under the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/meridian/pkg/location"
)

const (
	configName = "config"
	configType = "toml"
)

// Display holds presentation options.
type Display struct {
	Use24Hour    bool `mapstructure:"use_24_hour" json:"use_24_hour"`
	ShowSeconds  bool `mapstructure:"show_seconds" json:"show_seconds"`
	TickInterval int  `mapstructure:"tick_interval_ms" json:"tick_interval_ms"`
}

// Config is the persisted dashboard state: the primary and home locations,
// the tracked world list, and display options.
type Config struct {
	Primary location.Location   `mapstructure:"primary" json:"primary"`
	Home    location.Location   `mapstructure:"home" json:"home"`
	Tracked []location.Location `mapstructure:"tracked" json:"tracked"`
	Display Display             `mapstructure:"display" json:"display"`
	Editor  string              `mapstructure:"editor" json:"editor"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Primary: location.Location{Name: "Wellington", Code: "WLG", Country: "New Zealand", Timezone: "Pacific/Auckland", Currency: "NZD"},
		Home:    location.Location{Name: "Boston", Code: "BOS", Country: "United States", Timezone: "America/New_York", Currency: "USD"},
		Tracked: []location.Location{
			{Name: "London", Code: "LDN", Country: "United Kingdom", Timezone: "Europe/London", Currency: "GBP"},
			{Name: "Los Angeles", Code: "LAX", Country: "United States", Timezone: "America/Los_Angeles", Currency: "USD"},
			{Name: "Austin", Code: "AUS", Country: "United States", Timezone: "America/Chicago", Currency: "USD"},
			{Name: "Paris", Code: "PAR", Country: "France", Timezone: "Europe/Paris", Currency: "EUR"},
			{Name: "Berlin", Code: "BER", Country: "Germany", Timezone: "Europe/Berlin", Currency: "EUR"},
			{Name: "Sydney", Code: "SYD", Country: "Australia", Timezone: "Australia/Sydney", Currency: "AUD"},
			{Name: "Tokyo", Code: "TYO", Country: "Japan", Timezone: "Asia/Tokyo", Currency: "JPY"},
			{Name: "Singapore", Code: "SIN", Country: "Singapore", Timezone: "Asia/Singapore", Currency: "SGD"},
			{Name: "Kuala Lumpur", Code: "KL", Country: "Malaysia", Timezone: "Asia/Kuala_Lumpur", Currency: "MYR"},
			{Name: "Rio", Code: "RIO", Country: "Brazil", Timezone: "America/Sao_Paulo", Currency: "BRL"},
			{Name: "Addis Ababa", Code: "ADD", Country: "Ethiopia", Timezone: "Africa/Addis_Ababa", Currency: "ETB"},
			{Name: "Dhaka", Code: "DAC", Country: "Bangladesh", Timezone: "Asia/Dhaka", Currency: "BDT"},
			{Name: "Beijing", Code: "BJS", Country: "China", Timezone: "Asia/Shanghai", Currency: "CNY"},
		},
		Display: Display{Use24Hour: true, ShowSeconds: true, TickInterval: 100},
		Editor:  "",
	}
}

// Dir returns the directory holding the config file, honoring the
// MERIDIAN_CONFIG_PATH override.
func Dir() (string, error) {
	if override := os.Getenv("MERIDIAN_CONFIG_PATH"); override != "" {
		return override, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "meridian"), nil
}

// Path returns the full path of the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// Load reads the config file, falling back to defaults when the file is
// missing. A malformed file is an error rather than a silent reset.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix("MERIDIAN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Display.TickInterval <= 0 {
		cfg.Display.TickInterval = 100
	}
	return cfg, nil
}

// Save writes the config file, creating the directory when needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	v.Set("primary", locationMap(cfg.Primary))
	v.Set("home", locationMap(cfg.Home))
	tracked := make([]map[string]interface{}, 0, len(cfg.Tracked))
	for _, l := range cfg.Tracked {
		tracked = append(tracked, locationMap(l))
	}
	v.Set("tracked", tracked)
	v.Set("display", map[string]interface{}{
		"use_24_hour":      cfg.Display.Use24Hour,
		"show_seconds":     cfg.Display.ShowSeconds,
		"tick_interval_ms": cfg.Display.TickInterval,
	})
	v.Set("editor", cfg.Editor)

	path := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func locationMap(l location.Location) map[string]interface{} {
	return map[string]interface{}{
		"name":     l.Name,
		"code":     l.Code,
		"country":  l.Country,
		"timezone": l.Timezone,
		"currency": l.Currency,
	}
}

// Registry builds the location registry from the config.
func (c Config) Registry() *location.Registry {
	return location.NewRegistry(c.Primary, c.Home, c.Tracked)
}

// TickInterval returns the fast-tick cadence as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Display.TickInterval) * time.Millisecond
}

// EditorCommand resolves which editor opens the config file: the configured
// editor, then $EDITOR, then nvim.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "nvim"
}
