package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/grinta-launcher/grinta/pkg/dispatch"
	"github.com/grinta-launcher/grinta/pkg/models"
	"github.com/grinta-launcher/grinta/pkg/session"
)

// CatalogSource lists the static catalog
type CatalogSource interface {
	Fetch(ctx context.Context) []models.Item
}

// Config wires the interactive launcher
type Config struct {
	Session  *session.Session
	Catalog  CatalogSource
	Changes  <-chan struct{} // catalog directories changed; may be nil
	ShowHelp bool
	Notes    bool // note bindings are available
	Logger   *slog.Logger
	Copy     func(string) error
}

// App is the bubbletea model of one launcher run. All session mutation
// happens in Update; source tasks and catalog fetches run as commands and
// report back through messages.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	session *session.Session
	catalog CatalogSource
	changes <-chan struct{}
	copy    func(string) error
	logger  *slog.Logger

	search  *SearchBar
	results *ResultTable
	status  *StatusManager

	pending    int
	loading    bool
	catalogGen int
	showHelp   bool
	notes      bool
	width      int
	height     int
	quitting   bool
}

// Messages
type batchMsg struct {
	batch *dispatch.Batch // nil when the task was superseded
}

type catalogMsg struct {
	gen   int
	items []models.Item
}

type catalogChangedMsg struct{}

func NewApp(cfg Config) *App {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	if cfg.Session == nil {
		cfg.Session = session.New(session.Config{Logger: cfg.Logger})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		ctx:      ctx,
		cancel:   cancel,
		session:  cfg.Session,
		catalog:  cfg.Catalog,
		changes:  cfg.Changes,
		copy:     cfg.Copy,
		logger:   cfg.Logger,
		search:   NewSearchBar(),
		results:  NewResultTable(),
		status:   NewStatusManager(),
		showHelp: cfg.ShowHelp,
		notes:    cfg.Notes,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.search.Focus(), a.refreshCatalog(), a.waitForChange())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.SetWidth(msg.Width)
		a.results.SetSize(msg.Width-2, a.resultsHeight())
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case batchMsg:
		a.pending = max(a.pending-1, 0)
		if msg.batch != nil && !a.session.Absorb(*msg.batch) {
			a.logger.Debug("dropped stale batch", "category", msg.batch.Token.Category.String(), "query", msg.batch.Query)
		}
		return a, a.syncSpinner()

	case catalogMsg:
		if msg.gen != a.catalogGen {
			return a, nil
		}
		a.loading = false
		a.session.SetCatalog(msg.items)
		a.logger.Debug("catalog loaded", "items", len(msg.items))
		return a, a.syncSpinner()

	case catalogChangedMsg:
		return a, tea.Batch(a.refreshCatalog(), a.waitForChange())

	case ClearStatusMsg:
		a.status.IsActive()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch {
	case Shortcuts.Quit.Matches(key), Shortcuts.Cancel.Matches(key):
		return a.quit()

	case Shortcuts.Up.Matches(key):
		a.session.Up()
		return nil

	case Shortcuts.Down.Matches(key):
		a.session.Down()
		return nil

	case Shortcuts.Alternate.Matches(key):
		return a.execute(true)

	case Shortcuts.Execute.Matches(key):
		return a.execute(false)

	case Shortcuts.Assistant.Matches(key):
		if err := a.session.AskAssistant(a.ctx); err != nil {
			a.logger.Warn("failed to open assistant", "error", err)
			return nil
		}
		return a.quit()

	case Shortcuts.NewNote.Matches(key):
		err := a.session.CreateNote(a.ctx)
		a.syncQuery()
		if err != nil {
			a.logger.Warn("failed to create note", "error", err)
			return nil
		}
		return tea.Batch(a.status.ShowSuccess("Note created"), a.refreshCatalog())

	case Shortcuts.DeleteNote.Matches(key):
		deleted, err := a.session.DeleteSelectedNote(a.ctx)
		if err != nil {
			a.logger.Warn("failed to delete note", "error", err)
			return nil
		}
		if !deleted {
			return a.status.ShowWarning("Only notes can be deleted")
		}
		return tea.Batch(a.status.ShowSuccess("Note deleted"), a.refreshCatalog())

	case Shortcuts.Copy.Matches(key):
		item, ok := a.session.Selected()
		if !ok {
			return a.status.ShowWarning("Nothing selected")
		}
		if err := a.copy(item.Value); err != nil {
			a.logger.Warn("failed to copy to clipboard", "error", err)
			return a.status.ShowError("Failed to copy: " + err.Error())
		}
		return a.status.ShowSuccess(item.Label + " → clipboard")

	case Shortcuts.Refresh.Matches(key):
		return tea.Batch(a.status.ShowInfo("Refreshing catalog"), a.refreshCatalog())
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if value := a.search.Value(); value != before {
		return tea.Batch(cmd, a.setQuery(value))
	}
	return cmd
}

// setQuery hands an edited query to the session and starts its source tasks
func (a *App) setQuery(query string) tea.Cmd {
	a.session.ClearErr()
	tasks := a.session.SetQuery(query)

	cmds := make([]tea.Cmd, 0, len(tasks)+1)
	for _, task := range tasks {
		a.pending++
		ctx := a.ctx
		cmds = append(cmds, func() tea.Msg {
			return batchMsg{batch: task.Run(ctx)}
		})
	}
	cmds = append(cmds, a.syncSpinner())
	return tea.Batch(cmds...)
}

func (a *App) execute(alternate bool) tea.Cmd {
	if err := a.session.Execute(a.ctx, alternate); err != nil {
		a.logger.Warn("failed to execute", "error", err)
	}
	a.syncQuery()
	return nil
}

// syncQuery mirrors a query reset by the session into the input
func (a *App) syncQuery() {
	if a.search.Value() != a.session.Query() {
		a.search.SetValue(a.session.Query())
	}
}

func (a *App) refreshCatalog() tea.Cmd {
	if a.catalog == nil {
		return nil
	}
	a.catalogGen++
	a.loading = true

	gen, ctx, catalog := a.catalogGen, a.ctx, a.catalog
	fetch := func() tea.Msg {
		return catalogMsg{gen: gen, items: catalog.Fetch(ctx)}
	}
	return tea.Batch(fetch, a.syncSpinner())
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ctx, changes := a.ctx, a.changes
	return func() tea.Msg {
		select {
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return catalogChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) syncSpinner() tea.Cmd {
	return a.search.SetBusy(a.pending > 0 || a.loading)
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.cancel()
	return tea.Quit
}

func (a *App) resultsHeight() int {
	// search bar (3), error/status line, help line, spacing
	reserved := 5
	if a.showHelp {
		reserved++
	}
	return max(a.height-reserved, 1)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	selected := -1
	if i, ok := a.session.Cursor().Index(); ok {
		selected = i
	}

	sections := []string{
		a.search.View(),
		ContentPaddingStyle.Render(a.results.Render(a.session.View(), selected, a.session.Query() == "")),
		"",
		a.statusLine(),
	}
	if a.showHelp {
		sections = append(sections, a.helpLine())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusLine shows the transient session error, otherwise the status message
func (a *App) statusLine() string {
	width := uint(max(a.width-2, 1))
	if err := a.session.Err(); err != nil {
		return ContentPaddingStyle.Render(ErrorStyle.Render(truncate.StringWithTail("× "+err.Error(), width, "…")))
	}
	if text, statusType, ok := a.status.GetStatus(); ok {
		return GetStatusStyle(statusType).Render(truncate.StringWithTail(text, width, "…"))
	}
	return ""
}

func (a *App) helpLine() string {
	parts := make([]string, 0, 8)
	for _, key := range helpEntries(a.notes) {
		parts = append(parts, HelpKeyStyle.Render(FormatShortcutForHelp(key))+" "+HelpDescStyle.Render(key.Help))
	}
	line := strings.Join(parts, HelpDescStyle.Render(" · "))
	return ContentPaddingStyle.Render(truncate.StringWithTail(line, uint(max(a.width-2, 1)), "…"))
}
