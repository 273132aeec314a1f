// Package config loads stamp's configuration: built-in defaults, then the
// user's config.toml, then STAMP_* environment overrides.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/stamp-dev/stamp/pkg/errors"
	"github.com/stamp-dev/stamp/pkg/paths"
	"github.com/stamp-dev/stamp/pkg/template/engine"
)

// envPrefix is stripped from environment overrides. A double underscore
// separates nesting levels so key names may themselves contain underscores:
// STAMP_CACHE__TTL_SECONDS → cache.ttl_seconds.
const envPrefix = "STAMP_"

// CacheConfig configures the template compilation cache.
type CacheConfig struct {
	TTLSeconds int `koanf:"ttl_seconds"`
}

// RenderConfig configures the substitution engine.
type RenderConfig struct {
	MissingDefault   string `koanf:"missing_default"`
	Strict           bool   `koanf:"strict"`
	SuppressWarnings bool   `koanf:"suppress_warnings"`
}

// Config is the resolved stamp configuration.
type Config struct {
	TemplatesRoot string       `koanf:"templates_root"`
	Cache         CacheConfig  `koanf:"cache"`
	Render        RenderConfig `koanf:"render"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"templates_root":           "",
		"cache.ttl_seconds":        300,
		"render.missing_default":   "",
		"render.strict":            false,
		"render.suppress_warnings": false,
	}
}

// Load resolves the configuration. The user config file is optional; a
// missing file is not an error, a malformed one is.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	configFile := paths.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %q", configFile)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}

	if cfg.TemplatesRoot == "" {
		cfg.TemplatesRoot = paths.TemplatesRoot()
	}

	return &cfg, nil
}

// CacheTTL converts the configured seconds into a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// EngineOptions maps the render section onto engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		MissingDefault:   c.Render.MissingDefault,
		Strict:           c.Render.Strict,
		SuppressWarnings: c.Render.SuppressWarnings,
	}
}
