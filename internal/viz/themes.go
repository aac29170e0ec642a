package viz

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme colours the live view. Trails fade from the body colour toward
// Background.
type Theme struct {
	Name       string
	Title      lipgloss.Color
	Highlight  lipgloss.Color
	Background lipgloss.Color
}

// Themes in cycle order; the first is the default.
var Themes = []Theme{
	{Name: "void", Title: "#00ffff", Highlight: "#ffcc33", Background: "#000000"},
	{Name: "nebula", Title: "#cc88ff", Highlight: "#ff5599", Background: "#140a24"},
	{Name: "solar", Title: "#ff9933", Highlight: "#fff176", Background: "#1f0f00"},
	{Name: "phosphor", Title: "#00ff00", Highlight: "#88ff88", Background: "#001100"},
}

// themeIndex falls back to the default theme for unknown names.
func themeIndex(name string) int {
	return max(slices.IndexFunc(Themes, func(t Theme) bool { return t.Name == name }), 0)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
