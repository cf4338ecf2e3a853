// Package config provides configuration management for screenhold with
// Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete configuration for screenhold.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Screensaver ScreensaverConfig `mapstructure:"screensaver"`
	Proc        ProcConfig        `mapstructure:"proc"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScreensaverConfig identifies the session-bus object implementing the
// org.freedesktop.ScreenSaver API. Overridable for desktops that expose the
// interface under a different name (e.g. org.kde.screensaver).
type ScreensaverConfig struct {
	Destination string `mapstructure:"destination"`
	ObjectPath  string `mapstructure:"object_path"`
	Interface   string `mapstructure:"interface"`
}

// ProcConfig holds process-table inspection configuration.
type ProcConfig struct {
	Root string `mapstructure:"root"`
}

// Load reads configuration from the optional config file and environment.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("SCREENHOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("screensaver.destination", "org.freedesktop.ScreenSaver")
	v.SetDefault("screensaver.object_path", "/org/freedesktop/ScreenSaver")
	v.SetDefault("screensaver.interface", "org.freedesktop.ScreenSaver")
	v.SetDefault("proc.root", "/proc")
}

// configDir resolves the XDG config directory for screenhold.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "screenhold"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "screenhold"), nil
}
