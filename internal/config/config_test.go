package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/platform/mailtm"
	"github.com/PiotrWarzachowski/go-tempmail-cli/providers"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	be.Err(t, err, nil)
	be.Equal(t, cfg.BaseURL, mailtm.DefaultBaseURL)
	be.Equal(t, cfg.Timeout, mailtm.DefaultTimeout)
	be.Equal(t, cfg.MaxAge, providers.DefaultMaxAge)
	be.True(t, cfg.Store != "")
	be.True(t, !cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "base_url: http://localhost:8080\nstore: /tmp/accounts.json\ntimeout: 3s\nmax_age: 120\ndebug: true\n"
	be.Err(t, os.WriteFile(path, []byte(doc), 0600), nil)

	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.BaseURL, "http://localhost:8080")
	be.Equal(t, cfg.Store, "/tmp/accounts.json")
	be.Equal(t, cfg.Timeout, 3*time.Second)
	be.Equal(t, cfg.MaxAge, 120*time.Second)
	be.True(t, cfg.Debug)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	be.Err(t, os.WriteFile(path, []byte("max_age: 30s\n"), 0600), nil)
	t.Setenv("TEMPMAIL_MAX_AGE", "45s")
	t.Setenv("TEMPMAIL_BASE_URL", "http://env.example")

	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.MaxAge, 45*time.Second)
	be.Equal(t, cfg.BaseURL, "http://env.example")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TEMPMAIL_TIMEOUT", "soon")

	_, err := Load("")
	be.True(t, err != nil)
}
