package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func headerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1)
}

func phaseStyle(t Theme, frozen bool) lipgloss.Style {
	if frozen {
		return lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(t.Text).Bold(true)
}

// PowerBar renders level out of max as a filled meter.
func PowerBar(level, max int) string {
	if level < 0 {
		level = 0
	}
	if level > max {
		level = max
	}
	bar := strings.Repeat("█", level) + strings.Repeat("░", max-level)
	frac := float64(level) / float64(max)
	switch {
	case frac > 0.7:
		return SparkLow.Render(bar)
	case frac > 0.3:
		return SparkMid.Render(bar)
	}
	return SparkHigh.Render(bar)
}

// AimArrow picks the arrow glyph closest to the angle in degrees,
// measured clockwise from screen right.
func AimArrow(deg float64) string {
	arrows := []string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}
	i := int((deg+22.5)/45) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}
