package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/search"
)

func TestRunTime(t *testing.T) {
	now := time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC)
	at := func(ts time.Time) models.Item {
		item := models.NewItem("Safari", models.VariantApp, "/Applications/Safari.app")
		item.RanAt = &ts
		return item
	}

	tests := []struct {
		name string
		item models.Item
		want string
	}{
		{
			name: "today",
			item: at(time.Date(2024, 3, 12, 9, 5, 0, 0, time.UTC)),
			want: "Today 09:05",
		},
		{
			name: "earlier day",
			item: at(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)),
			want: "Feb 29 23:59",
		},
		{
			name: "never ran",
			item: models.NewItem("Notes", models.VariantNote, "x-coredata://1"),
			want: "Note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runTime(tt.item, now))
		})
	}
}

func resultsOf(n int) []search.Result {
	results := make([]search.Result, n)
	for i := range results {
		results[i] = search.Result{Item: models.NewItem(fmt.Sprintf("Item %02d", i), models.VariantApp, fmt.Sprintf("/a/%d", i))}
	}
	return results
}

func TestResultTableKeepsSelectionVisible(t *testing.T) {
	table := NewResultTable()
	table.SetSize(60, 3)
	results := resultsOf(10)

	out := table.Render(results, 0, false)
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "Item 00")

	out = table.Render(results, 7, false)
	assert.Contains(t, out, "Item 07")
	assert.NotContains(t, out, "Item 00")

	// wrapping back to the top scrolls up again
	out = table.Render(results, 0, false)
	assert.Contains(t, out, "Item 00")
	assert.NotContains(t, out, "Item 07")
}

func TestResultTableColumns(t *testing.T) {
	table := NewResultTable()
	table.SetSize(60, 5)

	results := []search.Result{
		{Item: models.NewItem("Mail", models.VariantApp, "/Applications/Mail.app")},
		{Item: models.NewItem("GitHub (Bookmark)", models.VariantBookmark, "https://github.com")},
	}
	out := table.Render(results, 1, false)

	assert.Contains(t, out, "Application")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "▸")
}

func TestResultTableTruncatesLongLabels(t *testing.T) {
	table := NewResultTable()
	table.SetSize(40, 5)

	long := strings.Repeat("very long label ", 10)
	out := table.Render([]search.Result{{Item: models.NewItem(long, models.VariantFile, "/tmp/x")}}, -1, false)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)
}

func TestResultTableEmpty(t *testing.T) {
	table := NewResultTable()
	table.SetSize(40, 5)

	assert.Contains(t, table.Render(nil, -1, true), "Nothing launched yet")
	assert.Contains(t, table.Render(nil, -1, false), "search the web")
}
