package models

import "time"

// Settings represents the application configuration
type Settings struct {
	History HistorySettings `json:"history" yaml:"history" mapstructure:"history"`
	Search  SearchSettings  `json:"search" yaml:"search" mapstructure:"search"`
	Sources SourceSettings  `json:"sources" yaml:"sources" mapstructure:"sources"`
	UI      UISettings      `json:"ui" yaml:"ui" mapstructure:"ui"`
	Logging LoggingSettings `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// HistorySettings controls the persisted usage history
type HistorySettings struct {
	Path       string `json:"path" yaml:"path" mapstructure:"path"`
	MaxEntries int    `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"` // 0 keeps every entry
}

// SearchSettings controls query dispatch to the asynchronous sources
type SearchSettings struct {
	MinQueryLength int                `json:"min_query_length" yaml:"min_query_length" mapstructure:"min_query_length"`
	Files          FileSearchSettings `json:"files" yaml:"files" mapstructure:"files"`
	Suggestions    SuggestionSettings `json:"suggestions" yaml:"suggestions" mapstructure:"suggestions"`
}

// FileSearchSettings controls the filesystem indexer source
type FileSearchSettings struct {
	Enabled  bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	Limit    int           `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// SuggestionSettings controls the web suggestion source
type SuggestionSettings struct {
	Enabled       bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Endpoint      string        `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	Debounce      time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	RatePerSecond float64       `json:"rate_per_second" yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// SourceSettings selects the catalog providers
type SourceSettings struct {
	AppDirs   []string `json:"app_dirs" yaml:"app_dirs" mapstructure:"app_dirs"`
	Bookmarks bool     `json:"bookmarks" yaml:"bookmarks" mapstructure:"bookmarks"`
	Notes     bool     `json:"notes" yaml:"notes" mapstructure:"notes"`
	Shortcuts bool     `json:"shortcuts" yaml:"shortcuts" mapstructure:"shortcuts"`
	Watch     bool     `json:"watch" yaml:"watch" mapstructure:"watch"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowHelp bool `json:"show_help" yaml:"show_help" mapstructure:"show_help"`
}

// LoggingSettings configures the structured logger
type LoggingSettings struct {
	Level     string `json:"level" yaml:"level" mapstructure:"level"`
	Format    string `json:"format" yaml:"format" mapstructure:"format"` // "text" or "json"
	AddSource bool   `json:"add_source" yaml:"add_source" mapstructure:"add_source"`
	File      string `json:"file" yaml:"file" mapstructure:"file"` // empty logs to stderr outside the TUI
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		History: HistorySettings{
			MaxEntries: 500,
		},
		Search: SearchSettings{
			MinQueryLength: 2,
			Files: FileSearchSettings{
				Enabled:  true,
				Debounce: 300 * time.Millisecond,
				Timeout:  2 * time.Second,
				Limit:    10,
			},
			Suggestions: SuggestionSettings{
				Enabled:       true,
				Endpoint:      "https://duckduckgo.com/ac/",
				Debounce:      150 * time.Millisecond,
				Timeout:       500 * time.Millisecond,
				RatePerSecond: 5,
			},
		},
		Sources: SourceSettings{
			Bookmarks: true,
			Notes:     true,
			Shortcuts: true,
			Watch:     true,
		},
		UI: UISettings{
			ShowHelp: true,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}
