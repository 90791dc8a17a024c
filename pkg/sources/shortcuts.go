package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Shortcuts lists the user's Shortcuts automations
type Shortcuts struct {
	runner    Runner
	supported bool
}

// NewShortcuts creates a Shortcuts adapter
func NewShortcuts(runner Runner) *Shortcuts {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Shortcuts{runner: runner, supported: currentPlatform.shortcuts}
}

// List runs `shortcuts list`. Shortcuts rank like applications.
func (s *Shortcuts) List(ctx context.Context) ([]models.Item, error) {
	if !s.supported {
		return nil, ErrUnsupported
	}

	stdout, _, err := s.runner.Output(ctx, "shortcuts", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}

	var items []models.Item
	for _, line := range strings.Split(string(stdout), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		items = append(items, models.NewItem(name, models.VariantShortcut, name).WithMeta("type", "shortcut"))
	}
	return items, nil
}
