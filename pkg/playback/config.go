package playback

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxCachedVideos is the default video cache rank cap.
	DefaultMaxCachedVideos = 5

	// DefaultRetentionWindow is how long an idle loaded video is
	// retained before it becomes an eviction candidate.
	DefaultRetentionWindow = 10 * time.Minute
)

// Config holds coordinator tuning and initial playback settings.
//
// MaxCachedVideos and RetentionWindow tune the video cache and may be
// changed live with [Coordinator.ApplyConfig]. AutoPlay and
// GlobalVolume are the initial values of the corresponding runtime
// settings; they are consumed at construction and by
// [Coordinator.Reset], not overwritten by ApplyConfig.
type Config struct {
	MaxCachedVideos int           `yaml:"max_cached_videos"`
	RetentionWindow time.Duration `yaml:"retention_window"`
	AutoPlay        bool          `yaml:"autoplay"`
	GlobalVolume    float64       `yaml:"global_volume"`
}

// DefaultConfig returns the built-in defaults: a five-entry video
// cache, a ten-minute retention window, auto-play on, full volume.
func DefaultConfig() Config {
	return Config{
		MaxCachedVideos: DefaultMaxCachedVideos,
		RetentionWindow: DefaultRetentionWindow,
		AutoPlay:        true,
		GlobalVolume:    1.0,
	}
}

// fileConfig mirrors Config with optional fields so an absent yaml key
// keeps its default instead of zeroing it.
type fileConfig struct {
	MaxCachedVideos *int     `yaml:"max_cached_videos"`
	RetentionWindow *string  `yaml:"retention_window"`
	AutoPlay        *bool    `yaml:"autoplay"`
	GlobalVolume    *float64 `yaml:"global_volume"`
}

// envOverrides carries environment overrides. Pointer fields stay nil
// when the variable is unset.
type envOverrides struct {
	MaxCachedVideos *int           `envconfig:"MAX_CACHED_VIDEOS"`
	RetentionWindow *time.Duration `envconfig:"RETENTION_WINDOW"`
	AutoPlay        *bool          `envconfig:"AUTOPLAY"`
	GlobalVolume    *float64       `envconfig:"GLOBAL_VOLUME"`
}

// LoadOptional reads a yaml config file if present. A missing file is
// not an error and yields the defaults unchanged.
func LoadOptional(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.MaxCachedVideos != nil {
		cfg.MaxCachedVideos = *fc.MaxCachedVideos
	}
	if fc.RetentionWindow != nil {
		d, err := time.ParseDuration(*fc.RetentionWindow)
		if err != nil {
			return cfg, fmt.Errorf("invalid retention_window in %s: %w", path, err)
		}
		cfg.RetentionWindow = d
	}
	if fc.AutoPlay != nil {
		cfg.AutoPlay = *fc.AutoPlay
	}
	if fc.GlobalVolume != nil {
		cfg.GlobalVolume = *fc.GlobalVolume
	}
	return cfg, nil
}

// FromEnv applies PLAYBACK_* environment overrides on top of cfg:
// PLAYBACK_MAX_CACHED_VIDEOS, PLAYBACK_RETENTION_WINDOW,
// PLAYBACK_AUTOPLAY and PLAYBACK_GLOBAL_VOLUME.
func FromEnv(cfg Config) (Config, error) {
	var env envOverrides
	if err := envconfig.Process("playback", &env); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	if env.MaxCachedVideos != nil {
		cfg.MaxCachedVideos = *env.MaxCachedVideos
	}
	if env.RetentionWindow != nil {
		cfg.RetentionWindow = *env.RetentionWindow
	}
	if env.AutoPlay != nil {
		cfg.AutoPlay = *env.AutoPlay
	}
	if env.GlobalVolume != nil {
		cfg.GlobalVolume = *env.GlobalVolume
	}
	return cfg, nil
}

// Resolve loads the optional config file at path, applies environment
// overrides, and validates the result. Precedence: environment > file >
// defaults.
func Resolve(path string) (Config, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return cfg, err
	}
	cfg, err = FromEnv(cfg)
	if err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg.normalized(), nil
}

func (cfg Config) validate() error {
	if cfg.MaxCachedVideos < 1 {
		return fmt.Errorf("max_cached_videos must be at least 1, got %d", cfg.MaxCachedVideos)
	}
	if cfg.RetentionWindow <= 0 {
		return fmt.Errorf("retention_window must be positive, got %s", cfg.RetentionWindow)
	}
	return nil
}

// normalized clamps the value-range fields and substitutes defaults for
// unusable tuning values, keeping coordinator construction total.
func (cfg Config) normalized() Config {
	if cfg.MaxCachedVideos < 1 {
		cfg.MaxCachedVideos = DefaultMaxCachedVideos
	}
	if cfg.RetentionWindow <= 0 {
		cfg.RetentionWindow = DefaultRetentionWindow
	}
	cfg.GlobalVolume = clampUnit(cfg.GlobalVolume)
	return cfg
}

// ApplyConfig installs new cache tuning and re-runs cleanup when the
// budget shrank, so a tightened cap or window takes effect immediately.
// AutoPlay and GlobalVolume in cfg are recorded as the new Reset
// defaults but do not disturb the live runtime settings.
func (c *Coordinator) ApplyConfig(cfg Config) {
	cfg = cfg.normalized()

	c.mu.Lock()
	old := c.cfg
	c.cfg = cfg
	ls := c.listenersLocked()
	c.mu.Unlock()

	if cfg == old {
		return
	}
	deliver(ls, Change{Op: OpConfig})

	if cfg.MaxCachedVideos < old.MaxCachedVideos ||
		cfg.RetentionWindow < old.RetentionWindow {
		c.CleanupVideoCache()
	}
}

// Config returns the coordinator's effective configuration.
func (c *Coordinator) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}
