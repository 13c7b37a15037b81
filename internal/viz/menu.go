package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/session"
)

var modelInfo = map[string]string{
	"lorenz":        "butterfly convection",
	"rossler":       "folded spiral band",
	"chen":          "dual of lorenz",
	"chua":          "piecewise diode circuit",
	"double_scroll": "twin-scroll, weak damping",
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// App shows a picker over the catalog and hands off to the live view.
type App struct {
	entries []catalog.Entry
	cursor  int
	inSim   bool
	live    Model
}

func NewApp(sess *session.Session, opts Options) App {
	return App{
		entries: sess.Registry().List(),
		cursor:  sess.Index(),
		live:    NewModel(sess, opts),
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.inSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "enter", " ":
		if a.cursor != a.live.sess.Index() {
			if err := a.live.sess.SwitchTo(a.cursor); err != nil {
				return a, nil
			}
		}
		a.inSim = true
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.inSim {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("CHAOSSIM") + "\n    " + menuSub.Render("strange attractor explorer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range a.entries {
		desc := modelInfo[e.Key]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%d %-14s", i+1, e.Name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %d %-14s", i+1, e.Name)), menuIdle.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive starts at the picker.
func RunInteractive(sess *session.Session, opts Options) error {
	_, err := tea.NewProgram(NewApp(sess, opts), tea.WithAltScreen()).Run()
	return err
}
