package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/search"
)

const (
	iconWidth    = 2
	contextWidth = 14
)

// ResultTable renders the ranked view as icon, label and context columns
// and keeps the selected row scrolled into view
type ResultTable struct {
	width  int
	height int
	offset int
	now    func() time.Time
}

// NewResultTable creates a result table
func NewResultTable() *ResultTable {
	return &ResultTable{now: time.Now}
}

// SetSize updates the dimensions of the table
func (r *ResultTable) SetSize(width, height int) {
	r.width = width
	r.height = max(height, 1)
}

// Render draws the rows. selected is -1 when nothing is selected. In history
// mode the context column shows when the item last ran.
func (r *ResultTable) Render(results []search.Result, selected int, history bool) string {
	if len(results) == 0 {
		if history {
			return EmptyStyle.Render("  Nothing launched yet. Start typing to search.")
		}
		return EmptyStyle.Render("  No matches. Press enter to search the web.")
	}

	r.scrollTo(selected, len(results))

	labelWidth := max(r.width-iconWidth-contextWidth-4, 8)

	var b strings.Builder
	end := min(r.offset+r.height, len(results))
	for i := r.offset; i < end; i++ {
		item := results[i].Item

		detail := item.Handler().DisplayName()
		if history {
			detail = runTime(item, r.now())
		}

		label := truncate.StringWithTail(item.Label, uint(labelWidth), "…")
		label = label + strings.Repeat(" ", max(labelWidth-lipgloss.Width(label), 0))

		icon := truncate.String(item.Icon, iconWidth)
		icon = icon + strings.Repeat(" ", max(iconWidth-lipgloss.Width(icon), 0))

		column := fmt.Sprintf("%*s", contextWidth, truncate.String(detail, contextWidth))

		if i == selected {
			b.WriteString(SelectedStyle.Render("▸ " + icon + " " + label))
			b.WriteString(SelectedContextStyle.Render(column))
		} else {
			b.WriteString(NormalStyle.Render("  " + icon + " " + label))
			b.WriteString(ContextStyle.Render(column))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// scrollTo moves the window so the selected row is visible
func (r *ResultTable) scrollTo(selected, n int) {
	if r.height <= 0 {
		r.height = 1
	}
	if selected < 0 {
		selected = 0
	}
	if selected < r.offset {
		r.offset = selected
	}
	if selected >= r.offset+r.height {
		r.offset = selected - r.height + 1
	}
	r.offset = max(min(r.offset, n-r.height), 0)
}

// runTime formats when item last ran: the clock time for today, otherwise
// the date
func runTime(item models.Item, now time.Time) string {
	if item.RanAt == nil {
		return item.Handler().DisplayName()
	}
	ran := item.RanAt.In(now.Location())
	y1, m1, d1 := ran.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today " + ran.Format("15:04")
	}
	return ran.Format("Jan 02 15:04")
}
