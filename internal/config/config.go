package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is the prefix for environment overrides, e.g. COMMITVIEW_API_BASE_URL
const EnvPrefix = "COMMITVIEW"

// Config represents the application configuration
type Config struct {
	API APIConfig  `toml:"api" mapstructure:"api"`
	UI  UISettings `toml:"ui" mapstructure:"ui"`
	Log LogConfig  `toml:"log" mapstructure:"log"`
}

// APIConfig describes how to reach the REST API
type APIConfig struct {
	BaseURL string `toml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each request; 0 disables the deadline.
	Timeout Duration `toml:"timeout" mapstructure:"timeout"`
	// Cookie is passed through verbatim as the Cookie header.
	Cookie string `toml:"cookie" mapstructure:"cookie"`
	// CacheSize of 0 disables the response cache.
	CacheSize int      `toml:"cache_size" mapstructure:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" mapstructure:"cache_ttl"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PerPage         int     `toml:"per_page" mapstructure:"per_page"`
	DiffHeightRatio float64 `toml:"diff_height_ratio" mapstructure:"diff_height_ratio"`
	TabSize         int     `toml:"tab_size" mapstructure:"tab_size"`
	Theme           string  `toml:"theme" mapstructure:"theme"`
	HighContrast    bool    `toml:"high_contrast" mapstructure:"high_contrast"`
	AltScreen       bool    `toml:"alt_screen" mapstructure:"alt_screen"`
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// Duration is a time.Duration that reads and writes as "30s" style text
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithPath creates a config service for an explicit file
func NewConfigServiceWithPath(path string) ConfigService {
	if path == "" {
		return NewConfigService()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/commitview/config.toml or a home fallback
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "commitview", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file, falling back to defaults
func (cs *configService) Load() (*Config, error) {
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// A missing file is not an error: defaults plus environment overrides apply.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Encode(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML
func Encode(config *Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout.Duration < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.API.CacheSize < 0 {
		return fmt.Errorf("%w: api.cache_size must not be negative", ErrInvalidConfig)
	}
	if c.UI.PerPage <= 0 {
		return fmt.Errorf("%w: ui.per_page must be positive", ErrInvalidConfig)
	}
	if c.UI.DiffHeightRatio <= 0 || c.UI.DiffHeightRatio > 1 {
		return fmt.Errorf("%w: ui.diff_height_ratio must be in (0, 1]", ErrInvalidConfig)
	}
	if c.UI.TabSize <= 0 {
		return fmt.Errorf("%w: ui.tab_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8080",
			Timeout:   Duration{30 * time.Second},
			CacheSize: 64,
			CacheTTL:  Duration{10 * time.Minute},
		},
		UI: UISettings{
			PerPage:         10,
			DiffHeightRatio: 0.7,
			TabSize:         4,
			Theme:           string(PresetDefault),
			AltScreen:       true,
		},
		Log: LogConfig{
			File:  "commitview.log",
			Level: "info",
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()

	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.timeout", defaults.API.Timeout.String())
	v.SetDefault("api.cookie", defaults.API.Cookie)
	v.SetDefault("api.cache_size", defaults.API.CacheSize)
	v.SetDefault("api.cache_ttl", defaults.API.CacheTTL.String())
	v.SetDefault("ui.per_page", defaults.UI.PerPage)
	v.SetDefault("ui.diff_height_ratio", defaults.UI.DiffHeightRatio)
	v.SetDefault("ui.tab_size", defaults.UI.TabSize)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.high_contrast", defaults.UI.HighContrast)
	v.SetDefault("ui.alt_screen", defaults.UI.AltScreen)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
