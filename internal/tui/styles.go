package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow
}

// Styles holds the styles for the TUI.
type Styles struct {
	App         lipgloss.Style
	Header      lipgloss.Style
	AuthOK      lipgloss.Style
	AuthMissing lipgloss.Style
	Selected    lipgloss.Style
	Normal      lipgloss.Style
	Index       lipgloss.Style
	Empty       lipgloss.Style
	Status      lipgloss.Style
	Loading     lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		AuthOK: lipgloss.NewStyle().
			Foreground(Colors.Success),
		AuthMissing: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),
		Normal: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
		Index: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
		Loading: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Italic(true),
		Success: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Error: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),
		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
	}
}
