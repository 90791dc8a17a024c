//go:build linux

package sources

var currentPlatform = platform{
	name:          "linux",
	appDirs:       []string{"/usr/share/applications", "/usr/local/share/applications", "~/.local/share/applications"},
	appExtension:  ".desktop",
	openCommand:   []string{"xdg-open"},
	browserRoots:  []string{".config/google-chrome", ".config/chromium"},
	fileIndexer:   indexerLocate,
	launchCommand: []string{"gtk-launch"},
}
