package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the live viewer.
type Theme struct {
	Name    string
	Bars    lipgloss.Color
	Header  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Bars:    lipgloss.Color("#ff00ff"),
		Header:  lipgloss.Color("#00ffff"),
		Label:   lipgloss.Color("#888899"),
		Value:   lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Bars:    lipgloss.Color("#00ff00"),
		Header:  lipgloss.Color("#88ff88"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Bars:    lipgloss.Color("#00a8cc"),
		Header:  lipgloss.Color("#ffd700"),
		Label:   lipgloss.Color("#4488aa"),
		Value:   lipgloss.Color("#e0f0ff"),
		Warning: lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func nextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// styles holds the lipgloss styles derived from a theme.
type styles struct {
	bars, header, label, value, warning, help lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		bars:    lipgloss.NewStyle().Foreground(t.Bars),
		header:  lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Label).Width(14),
		value:   lipgloss.NewStyle().Foreground(t.Value),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		help:    lipgloss.NewStyle().Foreground(t.Label).MarginTop(1),
	}
}
