package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a color scheme. Gradient runs from the slowest trail segment to
// the fastest.
type Theme struct {
	Name     string
	Gradient []lipgloss.Color
	Head     lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:     "neon",
		Gradient: []lipgloss.Color{"#3a0ca3", "#4361ee", "#4cc9f0", "#f72585", "#ff00ff"},
		Head:     "#ffffff",
		Accent:   "#00ffff",
		Text:     "#e0e0ff",
		Muted:    "#666688",
		Warning:  "#ff8800",
	}

	ThemeEmber = Theme{
		Name:     "ember",
		Gradient: []lipgloss.Color{"#370617", "#9d0208", "#dc2f02", "#f48c06", "#ffba08"},
		Head:     "#fff3b0",
		Accent:   "#ff9f1c",
		Text:     "#fff5f5",
		Muted:    "#8b6b6c",
		Warning:  "#ffc048",
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Gradient: []lipgloss.Color{"#03045e", "#0077b6", "#00b4d8", "#90e0ef", "#caf0f8"},
		Head:     "#ffd700",
		Accent:   "#00a8cc",
		Text:     "#e0f0ff",
		Muted:    "#4488aa",
		Warning:  "#ffcc00",
	}

	ThemeRetro = Theme{
		Name:     "retro",
		Gradient: []lipgloss.Color{"#003300", "#005500", "#00aa00", "#00dd00", "#88ff88"},
		Head:     "#ccffcc",
		Accent:   "#00ff00",
		Text:     "#00ff00",
		Muted:    "#005500",
		Warning:  "#ffff00",
	}

	ThemeMono = Theme{
		Name:     "mono",
		Gradient: []lipgloss.Color{"#444444", "#777777", "#aaaaaa", "#dddddd", "#ffffff"},
		Head:     "#ffffff",
		Accent:   "#0088ff",
		Text:     "#ffffff",
		Muted:    "#888888",
		Warning:  "#ffaa00",
	}

	Themes = []Theme{ThemeNeon, ThemeEmber, ThemeOcean, ThemeRetro, ThemeMono}
)

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme cycles through Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
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

// Palette returns canvas styles: one per gradient stop, then the head.
func (t Theme) Palette() []lipgloss.Style {
	out := make([]lipgloss.Style, 0, len(t.Gradient)+1)
	for _, c := range t.Gradient {
		out = append(out, lipgloss.NewStyle().Foreground(c))
	}
	return append(out, lipgloss.NewStyle().Foreground(t.Head).Bold(true))
}

// HeadLevel is the canvas level reserved for the current point.
func (t Theme) HeadLevel() int { return len(t.Gradient) }
