package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/grinta-launcher/grinta/internal/cli"
	"github.com/grinta-launcher/grinta/pkg/history"
	"github.com/grinta-launcher/grinta/pkg/models"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Cleanup(func() {
		cli.SetGlobalFlags(false, false, false)
		cli.SetOutput(nil, nil)
	})
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// launcherFixture writes an application directory holding Firefox and a
// config pointing the suggestion source at endpoint
func launcherFixture(t *testing.T, endpoint string) string {
	t.Helper()
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		t.Skip("no application lister on " + runtime.GOOS)
	}

	apps := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(apps, "firefox.desktop"),
		[]byte("[Desktop Entry]\nName=Firefox\nType=Application\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(apps, "Firefox.app"), 0755))

	suggestions := "enabled: false"
	if endpoint != "" {
		suggestions = "endpoint: " + endpoint
	}
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`search:
  suggestions:
    %s
sources:
  app_dirs: [%s]
  bookmarks: false
  notes: false
  shortcuts: false
logging:
  level: error
`, suggestions, apps)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func suggestionServer(t *testing.T, phrases ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]map[string]string, len(phrases))
		for i, p := range phrases {
			body[i] = map[string]string{"phrase": p}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &obj), line)
		lines = append(lines, obj)
	}
	return lines
}

func TestSearchStreamsRankedResults(t *testing.T) {
	isolate(t)
	srv := suggestionServer(t, "firefox download", "fire emblem")
	cfg := launcherFixture(t, srv.URL)

	out, err := execute(t, "--config", cfg, "search", "fire", "--icons=false")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 5)

	assert.Equal(t, "Firefox", lines[0]["label"])
	assert.Equal(t, "App", lines[0]["handler"])
	assert.NotContains(t, lines[0], "base64_icon")

	assert.Equal(t, "fire", lines[1]["label"])
	assert.Equal(t, "Url", lines[1]["handler"])
	assert.Equal(t, "https://duckduckgo.com/?q=fire", lines[1]["value"])

	suggested := []any{lines[2]["label"], lines[3]["label"]}
	assert.ElementsMatch(t, []any{"firefox download", "fire emblem"}, suggested)

	assert.Equal(t, "done", lines[4]["type"])
	assert.Equal(t, "ok", lines[4]["status"])
	assert.Equal(t, float64(4), lines[4]["count"])
}

func TestSearchAbsorbsSuggestionFailure(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	cfg := launcherFixture(t, srv.URL)

	out, err := execute(t, "--config", cfg, "search", "fire", "--icons=false")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 3)
	assert.Equal(t, "Firefox", lines[0]["label"])
	assert.Equal(t, "fire", lines[1]["label"])
	assert.Equal(t, "ok", lines[2]["status"])
}

func TestSearchLimitAndFormats(t *testing.T) {
	isolate(t)
	cfg := launcherFixture(t, "")

	out, err := execute(t, "--config", cfg, "search", "fire", "--icons=false", "-n", "1", "-o", "json")
	require.NoError(t, err)

	var doc SearchResultOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "fire", doc.Query)
	require.Equal(t, 1, doc.Count)
	assert.Equal(t, "Firefox", doc.Results[0].Label)

	out, err = execute(t, "--config", cfg, "search", "fire", "--icons=false", "-o", "yaml")
	require.NoError(t, err)
	var yamlDoc SearchResultOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &yamlDoc))
	assert.Equal(t, 2, yamlDoc.Count)

	out, err = execute(t, "--config", cfg, "search", "fire", "--icons=false", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "Application")
	assert.Contains(t, out, "Website")
}

func TestSearchRejectsBadFlags(t *testing.T) {
	isolate(t)

	_, err := execute(t, "search", "fire", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")

	_, err = execute(t, "search", "fire", "--limit=-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid limit")

	_, err = execute(t, "search")
	assert.Error(t, err)
}

func TestSearchReportsFailureInMarker(t *testing.T) {
	isolate(t)
	t.Setenv("GRINTA_SEARCH_FILES_LIMIT", "0")

	out, err := execute(t, "search", "fire")
	require.Error(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["status"])
	assert.Equal(t, float64(0), lines[0]["count"])
	assert.Contains(t, lines[0]["error"], "search.files.limit")
}

func writeHistory(t *testing.T, labels ...string) {
	t.Helper()
	path, err := history.DefaultPath()
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	minute := 0
	store := history.NewStore(path, history.WithClock(func() time.Time {
		minute++
		return base.Add(time.Duration(minute) * time.Minute)
	}))

	var items []models.Item
	for _, label := range labels {
		items, err = store.Record(items, models.NewItem(label, models.VariantApp, "/Applications/"+label+".app"))
		require.NoError(t, err)
	}
}

func TestHistoryList(t *testing.T) {
	isolate(t)
	writeHistory(t, "Safari", "Mail", "Notes")

	out, err := execute(t, "history", "-n", "2", "-o", "json")
	require.NoError(t, err)

	var doc HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, 2, doc.Count)
	assert.Equal(t, "Notes", doc.Entries[0].Label)
	assert.Equal(t, "Mail", doc.Entries[1].Label)
	assert.Equal(t, "App", doc.Entries[0].Handler)
	require.NotNil(t, doc.Entries[0].RanAt)

	out, err = execute(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WHEN")
	assert.Contains(t, out, "Safari")
}

func TestHistoryListEmpty(t *testing.T) {
	isolate(t)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "History is empty")
}

func TestHistoryClear(t *testing.T) {
	isolate(t)
	writeHistory(t, "Safari")

	out, err := execute(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History left unchanged")

	out, err = execute(t, "history", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 1`)

	out, err = execute(t, "--yes", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared history")
	out, err = execute(t, "history", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 0`)
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv("GRINTA_SEARCH_FILES_LIMIT", "7")

	out, err := execute(t, "config", "--log-level", "debug")
	require.NoError(t, err)

	var settings models.Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &settings))
	assert.Equal(t, 7, settings.Search.Files.Limit)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Contains(t, out, "debounce: 300ms")

	out, err = execute(t, "config", "show", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"limit": 7`)
}

func TestConfigPath(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), home))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), filepath.Join("grinta", "config.yaml")))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "grinta version 1.2.3\n", out)
}

func TestMissingConfigFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
