package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const (
	// EnvPrefix prefixes every environment override, e.g. LOTBUMP_USER_AGENT.
	EnvPrefix = "LOTBUMP_"
	// DotEnvPath is read for overrides when present.
	DotEnvPath = ".env"
)

// envOverrides mirrors Config; unset variables leave fields nil.
type envOverrides struct {
	Cooldown       *float64 `env:"COOLDOWN"`
	UserAgent      *string  `env:"USER_AGENT"`
	Site           *string  `env:"SITE"`
	Delay          *float64 `env:"DELAY"`
	Backoff        *float64 `env:"BACKOFF"`
	RequestTimeout *float64 `env:"REQUEST_TIMEOUT"`
	Schedule       *string  `env:"SCHEDULE"`
	Proxy          *string  `env:"PROXY"`
}

// ReadDotEnv parses the dotenv file at path. A missing file yields no
// values and no error.
func ReadDotEnv(fs afero.Fs, path string) (map[string]string, error) {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()
	vals, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return vals, nil
}

// Environ returns the process environment with dotenv values filling the
// gaps; variables already set in the process win.
func Environ(dotenv map[string]string) map[string]string {
	m := env.ToMap(os.Environ())
	for k, v := range dotenv {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

// ApplyEnv overlays the LOTBUMP_* variables of environ on c and validates
// the result.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	durations := []struct {
		key string
		v   *float64
		dst *time.Duration
	}{
		{KeyCooldown, o.Cooldown, &c.Cooldown},
		{KeyDelay, o.Delay, &c.Delay},
		{KeyBackoff, o.Backoff, &c.Backoff},
		{KeyRequestTimeout, o.RequestTimeout, &c.RequestTimeout},
	}
	for _, d := range durations {
		if d.v == nil {
			continue
		}
		v, ok := toDuration(*d.v)
		if !ok {
			return fmt.Errorf("%w: %s%s is not a non-negative number of seconds up to %.0f", ErrInvalidValue, EnvPrefix, d.key, maxSeconds)
		}
		*d.dst = v
	}
	if o.UserAgent != nil {
		c.UserAgent = strings.TrimSpace(*o.UserAgent)
	}
	if o.Site != nil && strings.TrimSpace(*o.Site) != "" {
		c.Site = strings.TrimRight(strings.TrimSpace(*o.Site), "/")
	}
	if o.Schedule != nil {
		c.Schedule = strings.TrimSpace(*o.Schedule)
	}
	if o.Proxy != nil {
		c.Proxy = strings.TrimSpace(*o.Proxy)
	}
	return c.Validate()
}
