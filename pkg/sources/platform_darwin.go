//go:build darwin

package sources

var currentPlatform = platform{
	name:           "darwin",
	appDirs:        []string{"/Applications", "/System/Applications", "/System/Applications/Utilities"},
	appExtension:   ".app",
	openCommand:    []string{"open"},
	revealCommand:  []string{"open", "-R"},
	browserRoots:   []string{"Library/Application Support/Google/Chrome", "Library/Application Support/Chromium"},
	fileIndexer:    indexerSpotlight,
	notes:          true,
	shortcuts:      true,
	iconExtraction: true,
}
