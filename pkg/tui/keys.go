package tui

import (
	"runtime"
	"slices"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	switch runtime.GOOS {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations.
// Alternates are accepted everywhere but never shown in help.
type ShortcutKey struct {
	Mac        string
	Linux      string
	Windows    string
	Default    string // Fallback if OS-specific not defined
	Alternates []string
	Help       string
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	return s.getFor(GetOS())
}

func (s ShortcutKey) getFor(os OSType) string {
	switch os {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether a bubbletea key string triggers the shortcut
func (s ShortcutKey) Matches(key string) bool {
	return s.matchesFor(GetOS(), key)
}

func (s ShortcutKey) matchesFor(os OSType, key string) bool {
	return key == s.getFor(os) || slices.Contains(s.Alternates, key)
}

// Shortcuts contains the launcher key bindings
var Shortcuts = struct {
	Quit       ShortcutKey
	Cancel     ShortcutKey
	Up         ShortcutKey
	Down       ShortcutKey
	Execute    ShortcutKey
	Alternate  ShortcutKey
	Assistant  ShortcutKey
	NewNote    ShortcutKey
	DeleteNote ShortcutKey
	Copy       ShortcutKey
	Refresh    ShortcutKey
}{
	Quit: ShortcutKey{
		Default: "ctrl+c",
		Help:    "quit",
	},
	Cancel: ShortcutKey{
		Default: "esc",
		Help:    "close",
	},
	Up: ShortcutKey{
		Default:    "up",
		Alternates: []string{"ctrl+k"},
		Help:       "up",
	},
	Down: ShortcutKey{
		Default:    "down",
		Alternates: []string{"ctrl+j"},
		Help:       "down",
	},
	Execute: ShortcutKey{
		Default: "enter",
		Help:    "open",
	},
	Alternate: ShortcutKey{
		Default: "alt+enter",
		Help:    "reveal",
	},
	Assistant: ShortcutKey{
		Default: "tab",
		Help:    "ask assistant",
	},
	NewNote: ShortcutKey{
		Default: "ctrl+n",
		Help:    "new note",
	},
	DeleteNote: ShortcutKey{
		Default: "ctrl+d",
		Help:    "delete note",
	},
	Copy: ShortcutKey{
		Default: "ctrl+y",
		Help:    "copy",
	},
	Refresh: ShortcutKey{
		Default: "ctrl+r",
		Help:    "refresh",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	return formatShortcutFor(GetOS(), key)
}

func formatShortcutFor(os OSType, key ShortcutKey) string {
	shortcut := key.getFor(os)
	// M- is the usual Alt prefix outside macOS
	if os == OSLinux || os == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")

	switch shortcut {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "enter":
		return "↵"
	}
	shortcut = strings.ReplaceAll(shortcut, "enter", "↵")
	return shortcut
}

// helpEntries lists the bindings shown in the help line, in display order
func helpEntries(notes bool) []ShortcutKey {
	entries := []ShortcutKey{
		Shortcuts.Execute,
		Shortcuts.Alternate,
		Shortcuts.Assistant,
		Shortcuts.Copy,
		Shortcuts.Refresh,
	}
	if notes {
		entries = append(entries, Shortcuts.NewNote, Shortcuts.DeleteNote)
	}
	return append(entries, Shortcuts.Cancel)
}
