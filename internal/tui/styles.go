package tui

import "github.com/charmbracelet/lipgloss"

// Palette colours, Dracula-like.
const (
	colorText    = "#F8F8F2"
	colorMuted   = "#6272A4"
	colorAccent  = "#BD93F9"
	colorSuccess = "#50FA7B"
	colorWarning = "#F1FA8C"
	colorDanger  = "#FF5555"
	colorSelect  = "#44475A"
)

type styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Star      lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	Loading   lipgloss.Style
	Detail    lipgloss.Style
	HelpKey   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)).
			Background(lipgloss.Color(colorSelect)).
			Bold(true).
			Padding(0, 1),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)).
			Background(lipgloss.Color(colorSelect)),
		Star: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Italic(true),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)),
	}
}
