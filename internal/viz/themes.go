package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the play view.
type Theme struct {
	Name    string
	Surface lipgloss.Color
	Hole    lipgloss.Color
	Ball    lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeFelt = Theme{
		Name:    "felt",
		Surface: lipgloss.Color("#2e7d32"),
		Hole:    lipgloss.Color("#1b1b1b"),
		Ball:    lipgloss.Color("#fafafa"),
		Accent:  lipgloss.Color("#ffd54f"),
		Text:    lipgloss.Color("#e8f5e9"),
		Muted:   lipgloss.Color("#6b8f6d"),
		Warning: lipgloss.Color("#ff8a65"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Surface: lipgloss.Color("#00ff00"),
		Hole:    lipgloss.Color("#005500"),
		Ball:    lipgloss.Color("#88ff88"),
		Accent:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Surface: lipgloss.Color("#cccccc"),
		Hole:    lipgloss.Color("#666666"),
		Ball:    lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Surface: lipgloss.Color("#0077be"),
		Hole:    lipgloss.Color("#001a33"),
		Ball:    lipgloss.Color("#ffd700"),
		Accent:  lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeFelt, ThemeRetroGreen, ThemeMinimal, ThemeOcean}
)

// GetTheme returns the named theme, falling back to felt.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFelt
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
