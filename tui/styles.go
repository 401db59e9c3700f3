package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#1A73E8"
	colorError   = "#D93025"
	colorSuccess = "#188038"

	colorTextDark   = "#E8EAED"
	colorMutedDark  = "#9AA0A6"
	colorBorderDark = "#5F6368"

	colorTextLight   = "#202124"
	colorMutedLight  = "#5F6368"
	colorBorderLight = "#DADCE0"
)

// Styles holds the rendering styles for one theme.
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Chip       lipgloss.Style
	ActiveChip lipgloss.Style
	Item       lipgloss.Style
	Selected   lipgloss.Style
	Meta       lipgloss.Style
	Body       lipgloss.Style
	Summary    lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Help       lipgloss.Style
	Box        lipgloss.Style
}

// NewStyles returns the dark or light theme.
func NewStyles(dark bool) Styles {
	text, muted, border := colorTextLight, colorMutedLight, colorBorderLight
	if dark {
		text, muted, border = colorTextDark, colorMutedDark, colorBorderDark
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginBottom(1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		ActiveChip: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(colorPrimary)).
			PaddingLeft(1),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			PaddingLeft(2),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)),
		Summary: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(colorSuccess)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			MarginTop(1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(1, 2),
	}
}
