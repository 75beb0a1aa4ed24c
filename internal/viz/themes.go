package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the monitor.
type Theme struct {
	Name   string
	Trace  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "phosphor",
		Trace:  lipgloss.Color("#00ff88"),
		Accent: lipgloss.Color("#00ccff"),
		Text:   lipgloss.Color("#e0e0e0"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ffaa00"),
	},
	{
		Name:   "amber",
		Trace:  lipgloss.Color("#ffb000"),
		Accent: lipgloss.Color("#ffd27f"),
		Text:   lipgloss.Color("#fff0d0"),
		Muted:  lipgloss.Color("#7a5a20"),
		Warn:   lipgloss.Color("#ff4444"),
	},
	{
		Name:   "mono",
		Trace:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
	},
}

// ThemeIndex returns the index of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
