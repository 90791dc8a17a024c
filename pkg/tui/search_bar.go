package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the query input with a spinner that replaces the search icon
// while sources are still running
type SearchBar struct {
	input   textinput.Model
	spinner spinner.Model
	busy    bool
	width   int
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search apps, files, bookmarks and the web..."
	ti.CharLimit = 256
	ti.Width = 50 // Default width, will be adjusted
	ti.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &SearchBar{
		input:   ti,
		spinner: s,
	}
}

// SetWidth sets the width for the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// borders, outer padding, icon and the space after it
	s.input.Width = max(width-12, 1)
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue sets the search text
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// SetBusy switches between the search icon and the spinner. It returns the
// spinner's first tick when the spinner starts.
func (s *SearchBar) SetBusy(busy bool) tea.Cmd {
	if busy == s.busy {
		return nil
	}
	s.busy = busy
	if busy {
		return s.spinner.Tick
	}
	return nil
}

// Busy reports whether the spinner is showing
func (s *SearchBar) Busy() bool {
	return s.busy
}

// Update handles tea messages for the search bar
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s *SearchBar) View() string {
	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Width(max(s.width-4, 1)).
		Padding(0, 1)

	icon := lipgloss.NewStyle().
		Background(lipgloss.Color(ColorActive)).
		Foreground(lipgloss.Color(ColorWhite)).
		Bold(true).
		Padding(0, 1).
		Render("⌕")
	if s.busy {
		icon = " " + s.spinner.View() + " "
	}

	searchContent := lipgloss.JoinHorizontal(lipgloss.Center, icon, " ", s.input.View())

	return ContentPaddingStyle.Render(searchStyle.Render(searchContent))
}

// Focus focuses the search input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}
