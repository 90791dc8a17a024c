package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorError    = "196" // Red for errors
)

var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	// Context column (handler name or run time)
	ContextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	SelectedContextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorNormal)).
				Background(lipgloss.Color(ColorSelected))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive))
)

// GetStatusStyle returns the status bar style for a status type
func GetStatusStyle(statusType StatusType) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	switch statusType {
	case StatusTypeSuccess:
		return style.Foreground(lipgloss.Color(ColorSuccess))
	case StatusTypeWarning:
		return style.Foreground(lipgloss.Color(ColorWarning))
	case StatusTypeError:
		return style.Foreground(lipgloss.Color(ColorError))
	default:
		return style.Foreground(lipgloss.Color(ColorNormal))
	}
}
