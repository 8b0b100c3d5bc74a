// Package config loads front-end settings from defaults, an optional YAML
// file and RSAFRONT_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rsafront/internal/engine"
	"rsafront/internal/errors"
	"rsafront/internal/log"

	"github.com/spf13/viper"
)

// Name is the config file base name and the env prefix, lower-cased.
const Name = "rsafront"

// Config is the full set of settings.
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`

	// Source is the config file that was read, or empty.
	Source string `mapstructure:"-"`
}

// EngineConfig controls discovery and invocation of the engine.
type EngineConfig struct {
	// Path skips discovery when set.
	Path string `mapstructure:"path"`
	// Candidates are tried before the built-in search list.
	Candidates     []string      `mapstructure:"candidates"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	EncryptTimeout time.Duration `mapstructure:"encrypt_timeout"`
}

// LogConfig controls the diagnostics log.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables the diagnostics log when set.
	File string `mapstructure:"file"`
}

// Load reads the configuration. An empty path searches for rsafront.yaml in
// the working directory and the user config directory; finding none is not
// an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, Name))
		}
	}

	v.SetEnvPrefix(strings.ToUpper(Name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.path", "")
	v.SetDefault("engine.candidates", []string{})
	v.SetDefault("engine.probe_timeout", engine.DefaultProbeTimeout)
	v.SetDefault("engine.encrypt_timeout", engine.DefaultEncryptTimeout)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// Validate rejects settings the front-end cannot run with.
func (c *Config) Validate() error {
	if c.Engine.ProbeTimeout <= 0 {
		return errors.NewValidationError("engine.probe_timeout", "must be positive")
	}
	if c.Engine.EncryptTimeout <= 0 {
		return errors.NewValidationError("engine.encrypt_timeout", "must be positive")
	}
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		return errors.NewValidationError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
	return nil
}

// LogLevel is the parsed log.level.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

// SetupLogging enables the diagnostics log: on stderr at debug level when
// debug is set, else in log.file when configured. Otherwise it stays off.
func (c *Config) SetupLogging(debug bool) error {
	switch {
	case debug:
		log.EnableDebugLogging()
	case c.Log.File != "":
		if err := log.EnableFileLogging(c.Log.File, c.LogLevel()); err != nil {
			return err
		}
	default:
		return nil
	}
	log.Info("config loaded", log.String("source", c.Source))
	return nil
}

// Locator builds the engine locator for the working directory.
func (c *Config) Locator() engine.Locator {
	return engine.Locator{Extra: c.Engine.Candidates}
}
