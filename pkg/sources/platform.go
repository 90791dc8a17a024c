package sources

import (
	"os"
	"path/filepath"
	"strings"
)

type indexer int

const (
	indexerNone indexer = iota
	indexerSpotlight
	indexerLocate
)

// platform describes what the current OS offers. The zero value supports
// nothing.
type platform struct {
	name           string
	appDirs        []string
	appExtension   string
	openCommand    []string
	revealCommand  []string // empty falls back to opening the parent directory
	launchCommand  []string // launches a .desktop entry by id
	browserRoots   []string // relative to the home directory
	fileIndexer    indexer
	notes          bool
	shortcuts      bool
	iconExtraction bool
}

// DefaultAppDirs returns the application directories scanned on this platform
func DefaultAppDirs() []string {
	dirs := make([]string, len(currentPlatform.appDirs))
	for i, dir := range currentPlatform.appDirs {
		dirs[i] = expandHome(dir)
	}
	return dirs
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
