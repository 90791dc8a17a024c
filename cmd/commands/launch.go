package commands

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grinta-launcher/grinta/internal/config"
	"github.com/grinta-launcher/grinta/pkg/search"
	"github.com/grinta-launcher/grinta/pkg/session"
	"github.com/grinta-launcher/grinta/pkg/sources"
	"github.com/grinta-launcher/grinta/pkg/tui"
)

// runLaunch starts the interactive launcher. The terminal belongs to the
// TUI, so logs go to a file.
func runLaunch(cmd *cobra.Command, opts *rootOptions) error {
	if opts.v.GetString("logging.file") == "" {
		if path, err := config.DefaultLogPath(); err == nil {
			opts.v.Set("logging.file", path)
		}
	}

	cc, closer, err := commandContext(opts, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess := session.New(session.Config{
		Store:      cc.HistoryStore(),
		Dispatcher: cc.Dispatcher(),
		Executor:   cc.Executor(),
		Notes:      cc.Notes(),
		Weights:    search.InteractiveWeights,
		Logger:     cc.Logger,
	})

	var changes <-chan struct{}
	if cc.Settings.Sources.Watch {
		watcher, err := sources.NewWatcher(cc.AppDirs(), sources.DefaultWatchDelay, cc.Logger)
		if err != nil {
			cc.Logger.Warn("catalog watcher disabled", "error", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
			changes = watcher.Changes()
		}
	}

	app := tui.NewApp(tui.Config{
		Session:  sess,
		Catalog:  cc.Catalog(false),
		Changes:  changes,
		ShowHelp: cc.Settings.UI.ShowHelp,
		Notes:    cc.NotesEnabled(),
		Logger:   cc.Logger,
	})

	cc.Logger.Info("launcher started", "history", cc.Settings.History.Path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}
