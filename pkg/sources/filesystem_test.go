package sources

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/models"
)

func TestFilesystemSpotlight(t *testing.T) {
	home := t.TempDir()
	deep := filepath.Join(home, "a", "b", "report.pdf")
	shallow := filepath.Join(home, "report")
	middle := filepath.Join(home, "docs", "report-2024.txt")
	require.NoError(t, os.MkdirAll(shallow, 0755))

	runner := newFakeRunner()
	runner.respond("mdfind",
		runResult{stdout: deep + "\n"},
		runResult{stdout: strings.Join([]string{middle, deep, shallow}, "\n") + "\n"},
	)

	fsrc := &Filesystem{runner: runner, home: home, limit: 10, indexer: indexerSpotlight}
	assert.Equal(t, dispatch.CategoryFiles, fsrc.Category())

	items, err := fsrc.Search(context.Background(), "report")
	require.NoError(t, err)

	var values []string
	for _, item := range items {
		values = append(values, item.Value)
	}
	assert.Equal(t, []string{shallow, middle, deep}, values)

	assert.Equal(t, models.VariantFolder, items[0].Variant)
	assert.Equal(t, "folder", items[0].Metadata["type"])
	assert.Equal(t, models.VariantFile, items[1].Variant)
	assert.Equal(t, "report-2024.txt", items[1].Label)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "kMDItemDisplayName == 'report'cd", runner.calls[0][3])
	assert.Equal(t, "kMDItemDisplayName == 'report*'cd", runner.calls[1][3])
}

func TestFilesystemLimit(t *testing.T) {
	home := t.TempDir()
	var lines []string
	for _, name := range []string{"a", "b", "c", "d"} {
		lines = append(lines, filepath.Join(home, name))
	}

	runner := newFakeRunner()
	runner.respond("mdfind", runResult{stdout: strings.Join(lines, "\n")})

	fsrc := &Filesystem{runner: runner, home: home, limit: 1, indexer: indexerSpotlight}
	items, err := fsrc.Search(context.Background(), "x")
	require.NoError(t, err)

	assert.Len(t, items, 1)
	// limit*3 candidates are enough, so the prefix query is skipped
	assert.Len(t, runner.calls, 1)
}

func TestFilesystemLocate(t *testing.T) {
	home := t.TempDir()
	inside := filepath.Join(home, "notes.md")
	outside := "/usr/share/doc/notes.md"

	runner := newFakeRunner()
	runner.respond("locate", runResult{stdout: outside + "\n" + inside + "\n"})

	fsrc := &Filesystem{runner: runner, home: home, limit: 5, indexer: indexerLocate}
	items, err := fsrc.Search(context.Background(), "notes")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, inside, items[0].Value)
}

func TestFilesystemLocateNoMatches(t *testing.T) {
	runner := newFakeRunner()
	runner.respond("locate", runResult{err: assert.AnError})

	fsrc := &Filesystem{runner: runner, home: t.TempDir(), limit: 5, indexer: indexerLocate}
	items, err := fsrc.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFilesystemUnsupportedAndEmpty(t *testing.T) {
	fsrc := &Filesystem{runner: newFakeRunner(), home: t.TempDir(), limit: 5}

	items, err := fsrc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = fsrc.Search(context.Background(), "report")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFilesystemDepth(t *testing.T) {
	fsrc := &Filesystem{home: "/home/me"}

	assert.Equal(t, 1, fsrc.depth("/home/me/file"))
	assert.Equal(t, 3, fsrc.depth("/home/me/a/b/file"))
	assert.Greater(t, fsrc.depth("/etc/hosts"), 100)
}
