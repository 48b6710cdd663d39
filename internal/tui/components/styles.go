package components

import "github.com/charmbracelet/lipgloss"

// Styles are the styles shared by components and views. The tui package
// builds them from the active theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Focus    lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style

	TableHeader lipgloss.Style
	Row         lipgloss.Style
	RowAlt      lipgloss.Style
	Selected    lipgloss.Style
	Border      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
}

// DefaultStyles returns the clinic palette.
func DefaultStyles() Styles {
	return NewStyles(
		lipgloss.Color("#4FD1C5"),
		lipgloss.Color("#81A1B5"),
		lipgloss.Color("#E6FFFA"),
		lipgloss.Color("#5A6B78"),
		lipgloss.Color("#FF6B6B"),
		lipgloss.Color("#F6C453"),
		lipgloss.Color("#68D391"),
	)
}

// NewStyles builds component styles from a palette.
func NewStyles(primary, secondary, accent, muted, errorColor, warningColor, successColor lipgloss.Color) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(secondary),
		Value:    lipgloss.NewStyle().Foreground(primary),
		Focus:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Help:     lipgloss.NewStyle().Foreground(secondary),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Warning:  lipgloss.NewStyle().Foreground(warningColor),
		Success:  lipgloss.NewStyle().Foreground(successColor),

		TableHeader: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Row:         lipgloss.NewStyle().Foreground(primary),
		RowAlt:      lipgloss.NewStyle().Foreground(secondary),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(primary),
		Border:      lipgloss.NewStyle().Foreground(secondary),
		Tab:         lipgloss.NewStyle().Foreground(secondary).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(primary).Bold(true).Padding(0, 1),
	}
}

// Tabs renders a tab strip with the active tab highlighted.
func (s Styles) Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			parts[i] = s.TabActive.Render(label)
		} else {
			parts[i] = s.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
