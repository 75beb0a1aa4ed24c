package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	active  lipgloss.Style
	graph   lipgloss.Style
	panel   lipgloss.Style
	help    lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	warning lipgloss.Style
	canvas  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		active:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		graph:   lipgloss.NewStyle().Foreground(t.Trace).Padding(1, 0),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(44),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Trace),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		warning: lipgloss.NewStyle().Foreground(t.Warn),
		canvas:  lipgloss.NewStyle().Foreground(t.Trace).Padding(1, 2),
	}
}
