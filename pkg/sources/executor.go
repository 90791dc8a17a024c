package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Executor performs the platform action behind an item
type Executor struct {
	runner   Runner
	notes    *Notes
	platform platform
}

// NewExecutor creates an executor. Note items are shown through notes.
func NewExecutor(runner Runner, notes *Notes) *Executor {
	if runner == nil {
		runner = ExecRunner{}
	}
	if notes == nil {
		notes = NewNotes(runner)
	}
	return &Executor{runner: runner, notes: notes, platform: currentPlatform}
}

// Execute launches item. alternate only changes File and Folder items, which
// are revealed in the file manager instead of opened.
func (e *Executor) Execute(ctx context.Context, item models.Item, alternate bool) error {
	switch item.Handler() {
	case models.HandlerNote:
		return e.notes.Open(ctx, item.Value)
	case models.HandlerAutomation:
		if !e.platform.shortcuts {
			return fmt.Errorf("run shortcut %q: %w", item.Value, ErrUnsupported)
		}
		return e.runner.Start("shortcuts", "run", item.Value)
	case models.HandlerApp:
		if len(e.platform.launchCommand) > 0 && strings.HasSuffix(item.Value, ".desktop") {
			id := strings.TrimSuffix(filepath.Base(item.Value), ".desktop")
			return e.start(e.platform.launchCommand, id)
		}
		return e.open(item.Value)
	case models.HandlerFile, models.HandlerFolder:
		if alternate {
			return e.reveal(item.Value)
		}
		return e.open(item.Value)
	default:
		return e.open(item.Value)
	}
}

// OpenURL opens target with the platform default handler
func (e *Executor) OpenURL(target string) error {
	return e.open(target)
}

func (e *Executor) open(target string) error {
	return e.start(e.platform.openCommand, target)
}

func (e *Executor) reveal(path string) error {
	if len(e.platform.revealCommand) > 0 {
		return e.start(e.platform.revealCommand, path)
	}
	return e.open(filepath.Dir(path))
}

func (e *Executor) start(command []string, arg string) error {
	if len(command) == 0 {
		return ErrUnsupported
	}
	args := append(append([]string{}, command[1:]...), arg)
	return e.runner.Start(command[0], args...)
}
