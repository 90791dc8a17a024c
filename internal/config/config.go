// Package config loads launcher settings from defaults, an optional YAML
// file and GRINTA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/grinta-launcher/grinta/pkg/history"
	"github.com/grinta-launcher/grinta/pkg/models"
)

const (
	EnvPrefix  = "GRINTA"
	ConfigFile = "config.yaml"
	LogFile    = "grinta.log"
)

// SetDefaults registers every setting with its default value. Keys unknown
// to viper are not picked up from the environment, so all of them are set.
func SetDefaults(v *viper.Viper) {
	d := models.DefaultSettings()

	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.max_entries", d.History.MaxEntries)

	v.SetDefault("search.min_query_length", d.Search.MinQueryLength)
	v.SetDefault("search.files.enabled", d.Search.Files.Enabled)
	v.SetDefault("search.files.debounce", d.Search.Files.Debounce)
	v.SetDefault("search.files.timeout", d.Search.Files.Timeout)
	v.SetDefault("search.files.limit", d.Search.Files.Limit)
	v.SetDefault("search.suggestions.enabled", d.Search.Suggestions.Enabled)
	v.SetDefault("search.suggestions.endpoint", d.Search.Suggestions.Endpoint)
	v.SetDefault("search.suggestions.debounce", d.Search.Suggestions.Debounce)
	v.SetDefault("search.suggestions.timeout", d.Search.Suggestions.Timeout)
	v.SetDefault("search.suggestions.rate_per_second", d.Search.Suggestions.RatePerSecond)

	v.SetDefault("sources.app_dirs", d.Sources.AppDirs)
	v.SetDefault("sources.bookmarks", d.Sources.Bookmarks)
	v.SetDefault("sources.notes", d.Sources.Notes)
	v.SetDefault("sources.shortcuts", d.Sources.Shortcuts)
	v.SetDefault("sources.watch", d.Sources.Watch)

	v.SetDefault("ui.show_help", d.UI.ShowHelp)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.add_source", d.Logging.AddSource)
	v.SetDefault("logging.file", d.Logging.File)
}

// Init enables environment overrides and reads the config file. An explicit
// file must exist; the default one is optional.
func Init(v *viper.Viper, file string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(file) == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
		file = path
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", file, err)
	}
	return nil
}

// Load decodes the settings and fills in path defaults
func Load(v *viper.Viper) (*models.Settings, error) {
	var settings models.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if settings.History.Path == "" {
		path, err := history.DefaultPath()
		if err != nil {
			return nil, err
		}
		settings.History.Path = path
	}
	settings.History.Path = expandHome(settings.History.Path)
	settings.Logging.File = expandHome(settings.Logging.File)
	for i, dir := range settings.Sources.AppDirs {
		settings.Sources.AppDirs[i] = expandHome(dir)
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate rejects settings the launcher cannot run with
func Validate(s *models.Settings) error {
	var errs []error
	if s.History.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("history.max_entries must not be negative, got %d", s.History.MaxEntries))
	}
	if s.Search.MinQueryLength < 1 {
		errs = append(errs, fmt.Errorf("search.min_query_length must be at least 1, got %d", s.Search.MinQueryLength))
	}
	if s.Search.Files.Limit < 1 {
		errs = append(errs, fmt.Errorf("search.files.limit must be at least 1, got %d", s.Search.Files.Limit))
	}
	if s.Search.Files.Timeout <= 0 {
		errs = append(errs, errors.New("search.files.timeout must be positive"))
	}
	if s.Search.Suggestions.Timeout <= 0 {
		errs = append(errs, errors.New("search.suggestions.timeout must be positive"))
	}
	if s.Search.Files.Debounce < 0 || s.Search.Suggestions.Debounce < 0 {
		errs = append(errs, errors.New("search debounce must not be negative"))
	}
	if s.Search.Suggestions.Enabled && strings.TrimSpace(s.Search.Suggestions.Endpoint) == "" {
		errs = append(errs, errors.New("search.suggestions.endpoint is required when suggestions are enabled"))
	}
	return errors.Join(errs...)
}

// DefaultPath returns the config file looked up when --config is not given
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, history.AppDir, ConfigFile), nil
}

// DefaultLogPath is where the TUI logs when logging.file is unset
func DefaultLogPath() (string, error) {
	dir, err := history.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
