package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm"
	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/storage"
	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

const EnvPrefix = "TEMPMAIL"

// Config holds the settings shared by all commands.
type Config struct {
	BaseURL string
	Store   string
	Timeout time.Duration
	MaxAge  time.Duration
	Debug   bool
}

// DefaultPath returns ~/.config/go-tempmail-cli/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "go-tempmail-cli", "config.yaml")
}

// Load reads the YAML file at path, then TEMPMAIL_* environment variables.
// A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", mailtm.DefaultBaseURL)
	v.SetDefault("store", "")
	v.SetDefault("timeout", mailtm.DefaultTimeout.String())
	v.SetDefault("max_age", providers.DefaultMaxAge.String())
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	timeout, err := durationOf(v, "timeout")
	if err != nil {
		return nil, err
	}
	maxAge, err := durationOf(v, "max_age")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL: v.GetString("base_url"),
		Store:   v.GetString("store"),
		Timeout: timeout,
		MaxAge:  maxAge,
		Debug:   v.GetBool("debug"),
	}
	if cfg.Store == "" {
		cfg.Store = storage.DefaultPath()
	}

	return cfg, nil
}

// durationOf accepts Go durations ("90s") and bare numbers of seconds ("90").
func durationOf(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", key, raw, err)
	}
	return d, nil
}
