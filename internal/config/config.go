// Package config loads the lotbump settings file: an INI file whose
// [SETTINGS] section carries the sweep cooldown and the user agent, plus a
// handful of optional tuning keys.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/go-ini/ini"
	"github.com/spf13/afero"

	"github.com/lotbump/lotbump/pkg/market"
)

const (
	// DefaultPath is the settings file looked up in the working directory.
	DefaultPath = "config.ini"
	// PathEnv overrides DefaultPath.
	PathEnv = "LOTBUMP_CONFIG"

	section = "SETTINGS"

	DefaultDelay   = 3 * time.Second
	DefaultBackoff = 60 * time.Second
)

// Setting keys.
const (
	KeyCooldown       = "Cooldown"
	KeyUserAgent      = "UserAgent"
	KeySite           = "Site"
	KeyDelay          = "Delay"
	KeyBackoff        = "Backoff"
	KeyRequestTimeout = "RequestTimeout"
	KeySchedule       = "Schedule"
	KeyProxy          = "Proxy"
)

var (
	ErrMissingSection = errors.New("missing [" + section + "] section")
	ErrMissingKey     = errors.New("missing required setting")
	ErrInvalidValue   = errors.New("invalid setting")
)

// Config holds the runtime settings.
type Config struct {
	// Cooldown is the pause between two sweeps.
	Cooldown  time.Duration
	UserAgent string
	Site      string
	// Delay is the pause after every category attempt.
	Delay time.Duration
	// Backoff is the pause after a failed sweep.
	Backoff        time.Duration
	RequestTimeout time.Duration
	// Schedule is an optional 5-field cron expression. When set, sweeps
	// start on its ticks and Cooldown is ignored.
	Schedule string
	Proxy    string
}

// Default returns a Config with every optional setting at its default.
func Default() Config {
	return Config{
		Site:           market.DefaultSite,
		Delay:          DefaultDelay,
		Backoff:        DefaultBackoff,
		RequestTimeout: market.DefaultTimeout,
	}
}

// ResolvePath picks the settings file: flag, then $LOTBUMP_CONFIG, then
// DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and validates the settings file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes settings. Section and key names are case-insensitive and
// values are taken verbatim: user agents routinely contain ';'.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	if !f.HasSection(section) {
		return nil, ErrMissingSection
	}
	sec := f.Section(section)

	cfg := Default()
	if cfg.Cooldown, err = seconds(sec, KeyCooldown, true, 0); err != nil {
		return nil, err
	}
	cfg.UserAgent = strings.TrimSpace(sec.Key(KeyUserAgent).String())
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, KeyUserAgent)
	}
	if v := strings.TrimSpace(sec.Key(KeySite).String()); v != "" {
		cfg.Site = strings.TrimRight(v, "/")
	}
	if cfg.Delay, err = seconds(sec, KeyDelay, false, cfg.Delay); err != nil {
		return nil, err
	}
	if cfg.Backoff, err = seconds(sec, KeyBackoff, false, cfg.Backoff); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = seconds(sec, KeyRequestTimeout, false, cfg.RequestTimeout); err != nil {
		return nil, err
	}
	cfg.Schedule = strings.TrimSpace(sec.Key(KeySchedule).String())
	cfg.Proxy = strings.TrimSpace(sec.Key(KeyProxy).String())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("%w: %s", ErrMissingKey, KeyUserAgent)
	}
	positive := []struct {
		key string
		v   time.Duration
	}{
		{KeyDelay, c.Delay},
		{KeyBackoff, c.Backoff},
		{KeyRequestTimeout, c.RequestTimeout},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, p.key)
		}
	}
	if c.Schedule != "" {
		if err := ValidateSchedule(c.Schedule); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSchedule accepts only 5-field cron expressions.
func ValidateSchedule(expr string) error {
	// gronx.IsValid also accepts a 6-field form with seconds.
	if len(strings.Fields(expr)) != 5 || !gronx.IsValid(expr) {
		return fmt.Errorf("%w: %s %q, expected minute hour day-of-month month day-of-week", ErrInvalidValue, KeySchedule, expr)
	}
	return nil
}

// seconds reads key as a non-negative float number of seconds.
func seconds(sec *ini.Section, key string, required bool, def time.Duration) (time.Duration, error) {
	if !sec.HasKey(key) || strings.TrimSpace(sec.Key(key).String()) == "" {
		if required {
			return 0, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
		return def, nil
	}
	v, err := sec.Key(key).Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative number of seconds", ErrInvalidValue, key, sec.Key(key).String())
	}
	d, ok := toDuration(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative number of seconds up to %.0f", ErrInvalidValue, key, sec.Key(key).String(), maxSeconds)
	}
	return d, nil
}

// maxSeconds is the largest number of seconds a time.Duration holds.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// toDuration converts v seconds, reporting false for values that are
// negative, not finite or too large for a time.Duration.
func toDuration(v float64) (time.Duration, bool) {
	ns := v * float64(time.Second)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || ns >= float64(math.MaxInt64) {
		return 0, false
	}
	return time.Duration(ns), true
}
