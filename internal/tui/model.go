package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viewport"
	"github.com/san-kum/ballpit/internal/viz"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 44
	historyCapacity = 300
	frameRate       = 50
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the terminal frontend. Terminals report key presses only, so
// the mode keys latch: the first press turns a mode on, the next turns it
// off.
type Model struct {
	world  *sim.World
	view   *viewport.Viewport
	field  *particles.Field
	logger *zap.Logger

	canvas        *viz.Canvas
	width, height int
	theme         viz.Theme
	styles        viz.Styles

	energy     []float64
	population []float64
	paused     bool
	showHelp   bool
}

// NewModel wires a frontend to w. field may be nil.
func NewModel(w *sim.World, view *viewport.Viewport, field *particles.Field, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		world:  w,
		view:   view,
		field:  field,
		logger: logger,
		theme:  viz.ThemeNight,
		styles: viz.ThemeNight.Styles(),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.world.HandleEvent(input.FocusLost())

	case TickMsg:
		if !m.paused {
			m.world.Step()
			m.energy = appendCapped(m.energy, m.world.KineticEnergy())
			m.population = appendCapped(m.population, float64(m.world.Len()))
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) resize(termW, termH int) {
	m.width = max(termW-panelWidth-2*viz.CanvasPadX, 10)
	m.height = max(termH-2*viz.CanvasPadY, 5)
	m.canvas = viz.NewCanvas(m.width, m.height)

	cw, ch := m.canvas.Size()
	m.view.Resize(float64(cw), float64(ch))
	m.world.SetBounds(m.view)
	if m.field != nil {
		m.field.SetBounds(m.view)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "?":
		m.showHelp = !m.showHelp
		return m, nil
	case " ", "space":
		m.paused = !m.paused
		return m, nil
	case "tab":
		m.theme = viz.NextTheme(m.theme)
		m.styles = m.theme.Styles()
		return m, nil
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	code, ok := input.RuneCode(msg.Runes[0])
	if !ok {
		return m, nil
	}

	keys := m.world.Keymap()
	mode := m.world.Mode()
	switch code {
	case keys.Fix:
		m.latch(code, mode.Fixed)
	case keys.Constrain:
		m.latch(code, mode.Constrained)
	case keys.Pull:
		m.latch(code, mode.Pulling)
	case keys.Push:
		m.latch(code, mode.Pushing)
	case keys.Grow, keys.Shrink:
		m.world.HandleEvent(input.KeyDown(code))
		m.world.HandleEvent(input.KeyUp(code))
	}
	return m, nil
}

func (m *Model) latch(code string, on bool) {
	if on {
		m.world.HandleEvent(input.KeyUp(code))
	} else {
		m.world.HandleEvent(input.KeyDown(code))
	}
	m.logger.Debug("mode key", zap.String("code", code), zap.Bool("on", !on))
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.world.HandleEvent(input.PointerMove(m.toWorld(msg.X, msg.Y)))

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.world.HandleEvent(input.PointerDown(input.ButtonPrimary))
		case tea.MouseButtonRight:
			m.world.HandleEvent(input.PointerDown(input.ButtonSecondary))
		case tea.MouseButtonMiddle:
			m.world.HandleEvent(input.PointerDown(1))
		}
	case tea.MouseActionRelease:
		m.world.HandleEvent(input.PointerUp())
	}
}

func (m *Model) draw() {
	m.canvas.DrawScene(m.view, viz.SceneOf(m.world, m.field))
}

// toWorld maps a terminal cell to the world point under the middle of
// that cell.
func (m *Model) toWorld(x, y int) dynamo.Vec2 {
	cw, ch := m.canvas.Size()
	px := dynamo.V2(float64((x-viz.CanvasPadX)*2+1), float64((y-viz.CanvasPadY)*4+2))
	return m.view.ScreenToWorld(px, float64(cw), float64(ch))
}

func (m Model) View() string {
	s := m.styles
	canvasView := s.Canvas.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(s.Header.Render("BALLPIT") + "\n")
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	b.WriteString(status + "\n\n")

	row := func(label, value string) {
		b.WriteString(s.Label.Render(label) + s.Value.Render(value) + "\n")
	}
	b.WriteString(s.Label.Render("Mode") + s.Mode.Render(viz.ModeLabel(m.world.Mode())) + "\n")
	row("Bodies", fmt.Sprintf("%d", m.world.Len()))
	row("Time", fmt.Sprintf("%.2fs", m.world.Time()))
	energy := 0.0
	if n := len(m.energy); n > 0 {
		energy = m.energy[n-1]
	}
	row("Energy", fmt.Sprintf("%.2f", energy))
	p := m.world.Pointer().Pos
	row("Cursor", fmt.Sprintf("%.1f, %.1f", p.X, p.Y))

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		b.WriteString(s.Graph.Render(chart) + "\n")
	}
	b.WriteString(s.Label.Render("Population") + viz.Sparkline(m.population, 24) + "\n")

	b.WriteString(s.Help.Render("ESC:Help SPACE:Pause TAB:Theme Q:Quit"))

	panel := b.String()
	if m.showHelp {
		panel = s.Header.Render("KEYS") + "\n" + s.Box.Render(m.helpText())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, s.Panel.Render(panel))
}

func (m Model) helpText() string {
	k := m.world.Keymap()
	lines := []string{
		"click    spawn a ball",
		"r-drag   delete balls",
		keyLine(k.Fix, "fix"),
		keyLine(k.Constrain, "tether"),
		keyLine(k.Pull, "pull"),
		keyLine(k.Push, "push"),
		keyLine(k.Grow, "grow"),
		keyLine(k.Shrink, "shrink"),
	}
	return strings.Join(lines, "\n")
}

func keyLine(code, what string) string {
	r, ok := input.CodeRune(code)
	label := code
	if ok {
		label = string(r)
	}
	return fmt.Sprintf("%-9s%s", label, what)
}

// Run starts the full-screen program and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
