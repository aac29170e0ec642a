package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	minZoom         = 0.125
	maxZoom         = 8
)

// TickMsg drives one frame. Gen ties it to the model that scheduled it;
// ticks from an earlier launch are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// Model steps a World once per frame and draws it on a braille canvas.
type Model struct {
	name  string
	specs []dynamo.BodySpec
	vp    dynamo.Viewport
	opts  []sim.Option

	world   *sim.World
	canvas  *Canvas
	target  TargetFPS
	meter   FPSMeter
	running bool
	zoom    float64
	theme   int
	frame   int
	energy  []float64
	gen     int
}

// NewModel builds the world the model animates. The specs are kept so the
// world can be rebuilt on reset.
func NewModel(name string, specs []dynamo.BodySpec, vp dynamo.Viewport, fps TargetFPS, opts ...sim.Option) (Model, error) {
	w, err := sim.New(specs, vp, opts...)
	if err != nil {
		return Model{}, err
	}
	return Model{
		name:    name,
		specs:   specs,
		vp:      vp,
		opts:    opts,
		world:   w,
		canvas:  NewCanvas(width, height),
		target:  fps,
		running: true,
		zoom:    1,
		energy:  make([]float64, 0, historyCapacity),
	}, nil
}

// WithTheme selects the named colour theme.
func (m Model) WithTheme(name string) Model {
	m.theme = themeIndex(name)
	return m
}

func (m Model) World() *sim.World { return m.world }

// Canvas draws the current world and returns the canvas.
func (m Model) Canvas() *Canvas {
	m.draw()
	return m.canvas
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.target.Interval(), func(t time.Time) tea.Msg { return TickMsg{Time: t, Gen: m.gen} })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.zoom = math.Min(m.zoom*2, maxZoom)
		case "-", "_":
			m.zoom = math.Max(m.zoom/2, minZoom)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "f":
			m.target = m.target.Next()
			m.meter.Reset()
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsStyle.GetWidth()-6, 10)
		h := max(msg.Height-3, 5)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.meter.Tick(msg.Time)
		m.frame++
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.Step()

	e := m.world.Gravity().TotalEnergy(m.world.Snapshot())
	m.energy = append(m.energy, e)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// reset rebuilds the world from the original specs; those were validated
// when the model was created.
func (m *Model) reset() {
	w, err := sim.New(m.specs, m.vp, m.opts...)
	if err != nil {
		return
	}
	m.world = w
	m.energy = m.energy[:0]
}

// project maps world coordinates onto canvas sub-pixels, keeping the
// viewport centre at the canvas centre.
func (m *Model) project(p dynamo.Vec2) (int, int) {
	cw, ch := m.canvas.PixelSize()
	scale := m.scale()
	c := m.vp.Center()
	x := float64(cw)/2 + (p.X-c.X)*scale
	y := float64(ch)/2 + (p.Y-c.Y)*scale
	return int(math.Round(x)), int(math.Round(y))
}

func (m *Model) scale() float64 {
	cw, ch := m.canvas.PixelSize()
	if m.vp.Width <= 0 || m.vp.Height <= 0 {
		return m.zoom
	}
	return math.Min(float64(cw)/m.vp.Width, float64(ch)/m.vp.Height) * m.zoom
}

// draw paints trails, oldest first, then the bodies on top.
func (m *Model) draw() {
	m.canvas.Clear()
	bg := string(Themes[m.theme].Background)
	bodies := m.world.Snapshot()

	for _, b := range bodies {
		for i, p := range b.Trail {
			alpha := dynamo.TrailAlpha(i, b.TrailCap)
			x, y := m.project(p)
			m.canvas.SetColor(x, y, Fade(b.Color, bg, alpha))
		}
	}

	scale := m.scale()
	for _, b := range bodies {
		x, y := m.project(b.Position)
		m.canvas.FillCircle(x, y, int(b.Radius*scale), b.Color)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	theme := Themes[m.theme]

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), theme.Title, theme.Highlight) + "\n\n")

	switch {
	case m.running:
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.frame)+" RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energy) > 1 {
		chart := Plot("Energy", 30, 4, m.energy)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.world.Tick()))
	row("Time", fmt.Sprintf("%.2f", m.world.Time()))
	row("Bodies", fmt.Sprintf("%d", m.world.Len()))
	row("Contacts", fmt.Sprintf("%d", m.world.Contacts()))
	if len(m.energy) > 0 {
		row("Energy", fmt.Sprintf("%.3f", m.energy[len(m.energy)-1]))
	}
	row("FPS", fmt.Sprintf("%.1f / %d", m.meter.FPS(), m.target))
	row("Zoom", fmt.Sprintf("%gx", m.zoom))
	row("Theme", theme.Name)

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause .:Step R:Reset\n+/-:Zoom T:Theme F:FPS Q:Quit"))

	canvasView := canvasStyle.Background(theme.Background).Render(m.canvas.Render())
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
