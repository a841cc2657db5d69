package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPath(t *testing.T) {
	t.Run("should fall back to defaults when the file does not exist", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "missing.toml")

		// when
		cfg, err := NewConfigServiceWithPath(path).Load()

		// then
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("should read values from the TOML file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
base_url = "https://git.example.com"
timeout = "5s"
cookie = "JSESSIONID=abc"

[ui]
per_page = 25
theme = "dracula"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		cfg, err := NewConfigServiceWithPath(path).Load()

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://git.example.com", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout.Duration)
		assert.Equal(t, "JSESSIONID=abc", cfg.API.Cookie)
		assert.Equal(t, 25, cfg.UI.PerPage)
		assert.Equal(t, "dracula", cfg.UI.Theme)
		assert.Equal(t, 0.7, cfg.UI.DiffHeightRatio, "unset keys keep their defaults")
	})

	t.Run("should let environment variables override the file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"http://file:1\"\n"), 0o644))
		t.Setenv("COMMITVIEW_API_BASE_URL", "http://env:2")
		t.Setenv("COMMITVIEW_UI_PER_PAGE", "50")

		// when
		cfg, err := NewConfigServiceWithPath(path).Load()

		// then
		require.NoError(t, err)
		assert.Equal(t, "http://env:2", cfg.API.BaseURL)
		assert.Equal(t, 50, cfg.UI.PerPage)
	})

	t.Run("should reject an invalid configuration", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[ui]\nper_page = 0\n"), 0o644))

		// when
		_, err := NewConfigServiceWithPath(path).Load()

		// then
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceWithPath(path)
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://api.internal:9000"
	cfg.API.Timeout = Duration{90 * time.Second}
	cfg.UI.TabSize = 2

	// when
	require.NoError(t, svc.Save(cfg))
	loaded, err := svc.Load()

	// then
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1m30s")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = " " }},
		{name: "relative base url", mutate: func(c *Config) { c.API.BaseURL = "/api" }},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = Duration{-time.Second} }},
		{name: "negative cache size", mutate: func(c *Config) { c.API.CacheSize = -1 }},
		{name: "zero per page", mutate: func(c *Config) { c.UI.PerPage = 0 }},
		{name: "ratio above one", mutate: func(c *Config) { c.UI.DiffHeightRatio = 1.5 }},
		{name: "zero tab size", mutate: func(c *Config) { c.UI.TabSize = 0 }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestThemeForPreset(t *testing.T) {
	assert.Equal(t, DefaultTheme(), ThemeForPreset("no-such-theme", false))
	assert.NotEqual(t, DefaultTheme(), ThemeForPreset(PresetDracula, false))

	boosted := ThemeForPreset(PresetDefault, true)
	assert.NotEqual(t, DefaultTheme().AddedFg, boosted.AddedFg)
	assert.Equal(t, "#ffffff", string(boosted.TitleFg), "channels are clamped at 255")
}
