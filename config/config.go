// Package config layers defaults, an optional TOML file, POKEDEX_ environment
// variables and command-line flags into one typed Config.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/pokedex/parallax"
)

const (
	appName   = "pokedex"
	envPrefix = "POKEDEX"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// API configures the remote provider
type API struct {
	BaseURL     string        `mapstructure:"baseURL"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// Cache configures the on-disk response cache
type Cache struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// UI configures the terminal front end
type UI struct {
	PageSize  int    `mapstructure:"pageSize"`
	ColorMode string `mapstructure:"colorMode"` // auto, truecolor, 256
}

// Audio configures the reveal chime
type Audio struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// Log configures the log file
type Log struct {
	Level string `mapstructure:"level"` // trace, debug, info, warn, error, off
	File  string `mapstructure:"file"`
}

// Metrics configures the periodic metrics export; an empty File disables it
type Metrics struct {
	File     string        `mapstructure:"file"`
	Interval time.Duration `mapstructure:"interval"`
}

// Config is the fully resolved application configuration
type Config struct {
	API      API             `mapstructure:"api"`
	Cache    Cache           `mapstructure:"cache"`
	Parallax parallax.Config `mapstructure:"parallax"`
	UI       UI              `mapstructure:"ui"`
	Audio    Audio           `mapstructure:"audio"`
	Log      Log             `mapstructure:"log"`
	Metrics  Metrics         `mapstructure:"metrics"`
}

// Color modes
const (
	ColorAuto      = "auto"
	ColorTruecolor = "truecolor"
	Color256       = "256"
)

// SetDefaults registers a default for every key so env overrides and Unmarshal see them
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", "https://pokeapi.co/api/v2")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.concurrency", 8)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", filepath.Join(cacheDir(), "cache.db"))
	v.SetDefault("cache.ttl", 24*time.Hour)

	p := parallax.DefaultConfig()
	v.SetDefault("parallax.maxOffset", p.MaxOffset)
	v.SetDefault("parallax.verticalDamping", p.VerticalDamping)
	v.SetDefault("parallax.smoothing", p.Smoothing)
	v.SetDefault("parallax.scale", p.Scale)
	v.SetDefault("parallax.rotationFactor", p.RotationFactor)
	v.SetDefault("parallax.frameInterval", p.FrameInterval)
	v.SetDefault("parallax.fadeDelay", p.FadeDelay)
	v.SetDefault("parallax.fadeInDuration", p.FadeInDuration)
	v.SetDefault("parallax.bounceScale", p.BounceScale)
	v.SetDefault("parallax.bounceDuration", p.BounceDuration)

	v.SetDefault("ui.pageSize", 30)
	v.SetDefault("ui.colorMode", ColorAuto)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.volume", 0.3)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(cacheDir(), appName+".log"))

	v.SetDefault("metrics.file", "")
	v.SetDefault("metrics.interval", 30*time.Second)
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"api-url":   "api.baseURL",
	"log-level": "log.level",
	"color":     "ui.colorMode",
}

// BindFlags attaches the overridable flags in fs to their keys; --no-cache is inverted by Load
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves configuration from defaults, the file at path (or the default location
// when path is empty), the environment and bound flags
func Load(v *viper.Viper, path string, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(configDir(), appName))
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if fs != nil {
		if err := BindFlags(v, fs); err != nil {
			return nil, err
		}
		if f := fs.Lookup("no-cache"); f != nil && f.Changed && f.Value.String() == "true" {
			v.Set("cache.enabled", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.baseURL %q is not an absolute URL", ErrInvalid, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalid)
	}
	if c.API.Concurrency < 1 {
		return fmt.Errorf("%w: api.concurrency must be at least 1", ErrInvalid)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("%w: ui.pageSize must be at least 1", ErrInvalid)
	}
	switch c.UI.ColorMode {
	case ColorAuto, ColorTruecolor, Color256:
	default:
		return fmt.Errorf("%w: ui.colorMode %q not one of auto, truecolor, 256", ErrInvalid, c.UI.ColorMode)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v not in [0,1]", ErrInvalid, c.Audio.Volume)
	}
	if c.Metrics.Interval <= 0 {
		return fmt.Errorf("%w: metrics.interval must be positive", ErrInvalid)
	}
	if err := c.Parallax.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func configDir() string {
	if d, err := os.UserConfigDir(); err == nil {
		return d
	}
	return "."
}

func cacheDir() string {
	if d, err := os.UserCacheDir(); err == nil {
		return filepath.Join(d, appName)
	}
	return filepath.Join(os.TempDir(), appName)
}
