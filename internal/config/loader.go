package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader reads a settings file with viper.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader creates a new settings loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load reads the settings file at path. An empty path or a missing file
// yields an empty Config. Environment variables and defaults are applied by
// ResolveAll, not here, so sources stay distinguishable.
func (l *Loader) Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding settings path: %w", err)
	}

	l.v.SetConfigFile(expanded)
	l.v.SetConfigType(settingsType(expanded))

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", expanded, err)
	}

	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding settings file %s: %w", expanded, err)
	}
	l.file = expanded
	return &cfg, nil
}

// InFile reports whether key (dotted, case-insensitive) was set by the
// settings file.
func (l *Loader) InFile(key string) bool {
	return l.v.InConfig(strings.ToLower(key))
}

// File returns the settings file that was read, or "" when none was.
func (l *Loader) File() string {
	return l.file
}

func settingsType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}
