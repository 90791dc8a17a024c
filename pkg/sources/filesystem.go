package sources

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/models"
)

const (
	fetchMultiplier = 3
	maxCandidates   = 150
)

// Filesystem searches the platform file index below the home directory
type Filesystem struct {
	runner  Runner
	home    string
	limit   int
	indexer indexer
}

// NewFilesystem creates a filesystem source returning at most limit items
func NewFilesystem(runner Runner, home string, limit int) *Filesystem {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Filesystem{
		runner:  runner,
		home:    home,
		limit:   limit,
		indexer: currentPlatform.fileIndexer,
	}
}

// Category implements dispatch.Source
func (f *Filesystem) Category() dispatch.Category {
	return dispatch.CategoryFiles
}

// Search implements dispatch.Source. Exact name matches come first, then
// prefix matches; the combined candidates are ordered by depth below the
// home directory, shallowest first.
func (f *Filesystem) Search(ctx context.Context, query string) ([]models.Item, error) {
	if query == "" || f.limit <= 0 {
		return []models.Item{}, nil
	}

	want := min(f.limit*fetchMultiplier, maxCandidates)

	var paths []string
	var err error
	switch f.indexer {
	case indexerSpotlight:
		paths, err = f.spotlight(ctx, query, want)
	case indexerLocate:
		paths, err = f.locate(ctx, query, want)
	default:
		return nil, ErrUnsupported
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return f.depth(paths[i]) < f.depth(paths[j])
	})
	if len(paths) > f.limit {
		paths = paths[:f.limit]
	}

	items := make([]models.Item, 0, len(paths))
	for _, path := range paths {
		items = append(items, fileItem(path))
	}
	return items, nil
}

func (f *Filesystem) spotlight(ctx context.Context, query string, want int) ([]string, error) {
	escaped := strings.ReplaceAll(query, `'`, `\'`)

	paths, err := f.run(ctx, want, "mdfind", "-onlyin", f.home, "kMDItemDisplayName == '"+escaped+"'cd")
	if err != nil {
		return nil, err
	}
	if len(paths) < want {
		more, err := f.run(ctx, want-len(paths), "mdfind", "-onlyin", f.home, "kMDItemDisplayName == '"+escaped+"*'cd")
		if err != nil {
			return paths, nil
		}
		paths = appendUnique(paths, more)
	}
	return paths, nil
}

func (f *Filesystem) locate(ctx context.Context, query string, want int) ([]string, error) {
	lines, err := f.run(ctx, want*4, "locate", "-i", "-b", "-l", strconv.Itoa(want*4), query)
	if err != nil {
		// locate exits non-zero when nothing matches
		if ctx.Err() == nil && len(lines) == 0 {
			return nil, nil
		}
		return nil, err
	}

	// locate searches the whole disk; keep what lives below home.
	var paths []string
	prefix := f.home + string(filepath.Separator)
	for _, p := range lines {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
		if len(paths) == want {
			break
		}
	}
	return paths, nil
}

// run executes an indexer command and returns up to limit output lines
func (f *Filesystem) run(ctx context.Context, limit int, name string, args ...string) ([]string, error) {
	stdout, _, err := f.runner.Output(ctx, name, args...)

	var lines []string
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines, err
}

// depth counts path components below home. Paths outside home sort last.
func (f *Filesystem) depth(path string) int {
	rel, err := filepath.Rel(f.home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return math.MaxInt
	}
	if rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func appendUnique(paths, more []string) []string {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}
	for _, p := range more {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

// fileItem maps a path to a File or Folder item
func fileItem(path string) models.Item {
	label := filepath.Base(path)
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return models.NewItem(label, models.VariantFolder, path).WithMeta("type", "folder")
	}
	return models.NewItem(label, models.VariantFile, path).WithMeta("type", "file")
}
