package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/events"
	"github.com/san-kum/chaossim/internal/session"
)

const historyCapacity = 120

type TickMsg time.Time

type Options struct {
	FPS         int
	TrailLength int
	Theme       string
	// Canvas size in terminal cells.
	Width, Height int
}

func DefaultOptions() Options {
	return Options{
		FPS:         30,
		TrailLength: 1500,
		Theme:       "neon",
		Width:       72,
		Height:      24,
	}
}

// history keeps one sample per frame for the axis plots.
type history struct {
	axes  [3][]float64
	speed []float64
}

func (h *history) push(x dynamo.State, speed float64) {
	for i := range h.axes {
		h.axes[i] = appendCapped(h.axes[i], x[i])
	}
	h.speed = appendCapped(h.speed, speed)
}

func (h *history) reset() {
	for i := range h.axes {
		h.axes[i] = h.axes[i][:0]
	}
	h.speed = h.speed[:0]
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// Model is the live bubbletea view over a session. Each tick feeds the
// elapsed wall-clock time to the session, then redraws.
type Model struct {
	sess     *session.Session
	opts     Options
	canvas   *Canvas
	trail    *Trail
	camera   *Camera
	hist     *history
	theme    Theme
	running  bool
	lastTick time.Time
	selected int
	dropped  int
	notice   string
	showHelp bool
}

// NewModel wires a view to sess: it records every sub-step into the trail
// and clears the trail whenever the session says trails are stale.
func NewModel(sess *session.Session, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	trail := NewTrail(opts.TrailLength)
	hist := &history{}

	sess.AddObserver(dynamo.ObserverFunc(func(x dynamo.State, t float64) {
		trail.Push(x, dynamo.Speed(sess.Model(), x))
	}))
	events.Subscribe(sess.Bus(), func(events.TrailsCleared) {
		trail.Clear()
		hist.reset()
	})

	return Model{
		sess:    sess,
		opts:    opts,
		canvas:  NewCanvas(opts.Width, opts.Height),
		trail:   trail,
		camera:  NewCamera(),
		hist:    hist,
		theme:   GetTheme(opts.Theme),
		running: true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance(now time.Time) {
	if m.running && !m.lastTick.IsZero() {
		rep := m.sess.Advance(now.Sub(m.lastTick).Seconds())
		m.dropped += rep.Dropped
		snap := m.sess.Snapshot()
		m.hist.push(snap.State, snap.Speed)
	}
	m.lastTick = now
	m.camera.Tick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.sess.Reset()
	case "n":
		m.sess.SetInitialState(m.sess.CurrentState())
		m.notice = "re-seeded from current state"
	case "tab":
		if names := m.sess.ParamNames(); len(names) > 0 {
			m.selected = (m.selected + 1) % len(names)
		}
	case "up", "k":
		m.adjustParam(1.05)
	case "down", "j":
		m.adjustParam(0.95)
	case "]":
		m.scaleTimeStep(1.25)
	case "[":
		m.scaleTimeStep(0.8)
	case "i":
		next := "euler"
		if m.sess.IntegratorName() == "euler" {
			next = "rk4"
		}
		if err := m.sess.SetIntegrator(next); err != nil {
			m.notice = err.Error()
		}
	case "left", "h":
		m.camera.Rotate(-0.1, 0)
	case "right", "l":
		m.camera.Rotate(0.1, 0)
	case "w":
		m.camera.Rotate(0, 0.1)
	case "s":
		m.camera.Rotate(0, -0.1)
	case "a":
		if m.camera.AutoRotate == 0 {
			m.camera.AutoRotate = NewCamera().AutoRotate
		} else {
			m.camera.AutoRotate = 0
		}
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.switchTo(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) switchTo(idx int) {
	if err := m.sess.SwitchTo(idx); err != nil {
		m.notice = err.Error()
		return
	}
	m.selected = 0
	m.dropped = 0
}

func (m *Model) adjustParam(factor float64) {
	names := m.sess.ParamNames()
	if len(names) == 0 {
		return
	}
	m.selected %= len(names)
	key := names[m.selected]
	val := m.sess.Params()[key]
	next := val * factor
	if val == 0 {
		next = 0.1
		if factor < 1 {
			next = -0.1
		}
	}
	if err := m.sess.SetParam(key, next); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) scaleTimeStep(factor float64) {
	if err := m.sess.SetTimeStep(m.sess.TimeStep() * factor); err != nil {
		m.notice = err.Error()
	}
}

// draw projects the trail onto the canvas, colored by speed.
func (m *Model) draw() {
	m.canvas.Clear()
	if lo, hi, ok := m.trail.Bounds(); ok {
		m.camera.Fit(lo, hi)
	}

	sw, sh := m.canvas.Dots()
	slow, fast := m.trail.SpeedRange()
	levels := len(m.theme.Gradient)

	px, py, pvis := 0, 0, false
	for i := 0; i < m.trail.Len(); i++ {
		p, speed := m.trail.At(i)
		x, y, _, vis := m.camera.Project(p, sw, sh)
		lvl := speedLevel(speed, slow, fast, levels)
		if vis && pvis {
			m.canvas.DrawLine(px, py, x, y, lvl)
		} else if vis {
			m.canvas.Plot(x, y, lvl)
		}
		px, py, pvis = x, y, vis
	}

	if p, _, ok := m.trail.Last(); ok {
		x, y, _, vis := m.camera.Project(p, sw, sh)
		if vis {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					m.canvas.Plot(x+dx, y+dy, m.theme.HeadLevel())
				}
			}
		}
	}
}

// speedLevel buckets speed into [0, levels).
func speedLevel(speed, slow, fast float64, levels int) int {
	if levels <= 1 || fast <= slow {
		return 0
	}
	lvl := int((speed - slow) / (fast - slow) * float64(levels))
	return max(0, min(lvl, levels-1))
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	m.draw()
	snap := m.sess.Snapshot()
	th := m.theme

	canvasView := canvasStyle.Render(m.canvas.Render(th.Palette()))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(snap.Name), th.Gradient[0], th.Head) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", snap.Time))
	row("Steps", fmt.Sprintf("%d", snap.Steps))
	row("Step", fmt.Sprintf("%.4f (%s)", snap.TimeStep, snap.Integrator))
	row("State", fmt.Sprintf("%7.2f %7.2f %7.2f", snap.State[0], snap.State[1], snap.State[2]))
	row("Speed", fmt.Sprintf("%.2f", snap.Speed))
	row("Trail", fmt.Sprintf("%d/%d", m.trail.Len(), m.trail.Capacity()))
	if m.dropped > 0 {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render(fmt.Sprintf("dropped %d sub-steps", m.dropped)) + "\n")
	}

	if len(m.hist.axes[0]) > 1 {
		chart := asciigraph.PlotMany(m.hist.axes[:],
			asciigraph.Height(6),
			asciigraph.Width(34),
			asciigraph.Precision(1),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.Caption("x y z"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	defaults := m.defaultParams()
	for i, k := range snap.ParamNames {
		val := snap.Params[k]
		ratio := 0.5
		if d := defaults[k]; d != 0 {
			ratio = val / (2 * d)
		}
		line := fmt.Sprintf("%-6s %s %8.3f", k, ProgressBar(ratio, 10), val)
		if i == m.selected%len(snap.ParamNames) {
			s.WriteString(activeParamStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.notice != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Warning).Render(m.notice) + "\n")
	}
	s.WriteString("\n" + Separator(36, th.Muted))
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit ?:Help\n1-5:Model TAB/↑↓:Tune [ ]:Step"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) defaultParams() map[string]float64 {
	e, ok := m.sess.Registry().Entry(m.sess.Index())
	if !ok {
		return nil
	}
	return e.New().GetParams()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1-5      - Switch attractor         ║
║  Space    - Pause/Resume             ║
║  R        - Reset to seed            ║
║  N        - Re-seed from here        ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [ ]      - Shrink/grow time step    ║
║  I        - Toggle RK4/Euler         ║
║  H/L W/S  - Rotate camera            ║
║  A        - Toggle auto-rotate       ║
║  +/-      - Zoom                     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive runs the live view until the user quits.
func RunLive(sess *session.Session, opts Options) error {
	_, err := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen()).Run()
	return err
}
