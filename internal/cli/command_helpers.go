package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/history"
	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/sources"
)

// CommandContext builds the launcher components a command needs from the
// loaded settings
type CommandContext struct {
	Settings   *models.Settings
	Logger     *slog.Logger
	Home       string
	Runner     sources.Runner
	HTTPClient *http.Client

	notes *sources.Notes
}

// NewCommandContext creates a command context for settings
func NewCommandContext(settings *models.Settings, logger *slog.Logger) (*CommandContext, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if logger == nil {
		logger = slog.Default()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return &CommandContext{
		Settings:   settings,
		Logger:     logger,
		Home:       home,
		Runner:     sources.ExecRunner{},
		HTTPClient: http.DefaultClient,
	}, nil
}

// HistoryStore opens the configured history file
func (c *CommandContext) HistoryStore() *history.Store {
	return history.NewStore(c.Settings.History.Path,
		history.WithMaxEntries(c.Settings.History.MaxEntries),
		history.WithLogger(c.Logger))
}

// AppDirs returns the configured application directories, or the platform
// defaults when none are configured
func (c *CommandContext) AppDirs() []string {
	if len(c.Settings.Sources.AppDirs) > 0 {
		return c.Settings.Sources.AppDirs
	}
	return sources.DefaultAppDirs()
}

// Catalog builds the static catalog. Icon extraction is only worth its cost
// for batch output.
func (c *CommandContext) Catalog(withIcons bool) *sources.Catalog {
	return sources.DefaultCatalog(sources.CatalogOptions{
		Home:      c.Home,
		AppDirs:   c.AppDirs(),
		Bookmarks: c.Settings.Sources.Bookmarks,
		Notes:     c.Settings.Sources.Notes,
		Shortcuts: c.Settings.Sources.Shortcuts,
		Icons:     withIcons,
		Runner:    c.Runner,
	}, c.Logger)
}

// Notes returns the shared Notes adapter
func (c *CommandContext) Notes() *sources.Notes {
	if c.notes == nil {
		c.notes = sources.NewNotes(c.Runner)
	}
	return c.notes
}

// NotesEnabled reports whether note actions are available
func (c *CommandContext) NotesEnabled() bool {
	return c.Settings.Sources.Notes && c.Notes().Supported()
}

// Executor returns the platform executor
func (c *CommandContext) Executor() *sources.Executor {
	return sources.NewExecutor(c.Runner, c.Notes())
}

// Suggestions returns the web suggestion source, or nil when disabled
func (c *CommandContext) Suggestions() *sources.Suggestions {
	s := c.Settings.Search.Suggestions
	if !s.Enabled {
		return nil
	}
	return sources.NewSuggestions(
		sources.WithHTTPClient(c.HTTPClient),
		sources.WithEndpoint(s.Endpoint),
		sources.WithRate(s.RatePerSecond),
	)
}

// Filesystem returns the file search source, or nil when disabled
func (c *CommandContext) Filesystem() *sources.Filesystem {
	f := c.Settings.Search.Files
	if !f.Enabled {
		return nil
	}
	return sources.NewFilesystem(c.Runner, c.Home, f.Limit)
}

// Dispatcher wires the enabled asynchronous sources
func (c *CommandContext) Dispatcher() *dispatch.Dispatcher {
	var srcs []dispatch.Source
	if fs := c.Filesystem(); fs != nil {
		srcs = append(srcs, fs)
	}
	if s := c.Suggestions(); s != nil {
		srcs = append(srcs, s)
	}
	return dispatch.New(dispatch.OptionsFromSettings(c.Settings.Search), c.Logger, srcs...)
}
