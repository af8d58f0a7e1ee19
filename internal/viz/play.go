package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/engine"
)

const (
	canvasWidth     = 40
	canvasHeight    = 24
	speedCapacity   = 240
	maxPower        = 9
	powerStep       = 400.0
	aimStep         = 15.0
	eventLogLength  = 4
	defaultAimAngle = 270.0
)

type TickMsg time.Time

// feed collects controller events between frames. It is shared by every
// copy of Model so the observer registered at construction stays valid.
type feed struct {
	events  []engine.Event
	bounces int
}

func (f *feed) OnEvent(e engine.Event) {
	if e.Kind == engine.EventHandoff {
		f.bounces++
	}
	f.events = append(f.events, e)
	if len(f.events) > eventLogLength {
		f.events = f.events[len(f.events)-eventLogLength:]
	}
}

func (f *feed) OnFrame(engine.Snapshot) {}

// Model drives a controller from the keyboard at a fixed frame rate.
type Model struct {
	ctrl     *engine.Controller
	aim      *control.Aim
	feed     *feed
	canvas   *Canvas
	theme    Theme
	dt       float64
	angle    float64
	power    int
	running  bool
	autoplay bool
	speeds   []float64
}

// NewPlay wraps ctrl, which must already be measured. aim drives autoplay.
func NewPlay(ctrl *engine.Controller, aim *control.Aim, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	f := &feed{}
	ctrl.AddObserver(f)
	return Model{
		ctrl:    ctrl,
		aim:     aim,
		feed:    f,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		theme:   ThemeFelt,
		dt:      1.0 / float64(fps),
		angle:   defaultAimAngle,
		power:   5,
		running: true,
		speeds:  make([]float64, 0, speedCapacity),
	}
}

// WithTheme returns a copy of m drawn in the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.angle = math.Mod(m.angle-aimStep+360, 360)
		case "right", "l":
			m.angle = math.Mod(m.angle+aimStep, 360)
		case "up", "k":
			m.power = min(m.power+1, maxPower)
		case "down", "j":
			m.power = max(m.power-1, 1)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.power = int(msg.String()[0] - '0')
		case " ":
			m.fling()
		case "a":
			m.autoplay = !m.autoplay
		case "p":
			m.running = !m.running
		case "r":
			m.ctrl.ForceReset()
			m.speeds = m.speeds[:0]
		case "t":
			m.theme = NextTheme(m.theme)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Velocity is the gesture the current aim and power would produce.
func (m Model) Velocity() (float64, float64) {
	rad := m.angle * math.Pi / 180
	speed := float64(m.power) * powerStep
	return speed * math.Cos(rad), speed * math.Sin(rad)
}

func (m *Model) fling() bool {
	vx, vy := m.Velocity()
	m.ctrl.GestureDown()
	return m.ctrl.OnFlingGesture(vx, vy)
}

func (m *Model) step() {
	if m.autoplay && m.aim != nil {
		snap := m.ctrl.Snapshot()
		if vx, vy, ok := m.aim.Next(snap, snap.Time); ok {
			m.ctrl.GestureDown()
			m.ctrl.OnFlingGesture(vx, vy)
		}
	}
	m.ctrl.Step(m.dt)
	m.speeds = append(m.speeds, m.ctrl.Snapshot().Speed())
	if len(m.speeds) > speedCapacity {
		m.speeds = m.speeds[1:]
	}
}

// project maps surface units onto canvas dots, preserving aspect ratio.
func (m *Model) project(s engine.Snapshot) func(x, y float64) (int, int) {
	cw, ch := m.canvas.Dots()
	k := 1.0
	if s.Surface.X > 0 && s.Surface.Y > 0 {
		k = math.Min(float64(cw-1)/s.Surface.X, float64(ch-1)/s.Surface.Y)
	}
	return func(x, y float64) (int, int) {
		return int(math.Round(x * k)), int(math.Round(y * k))
	}
}

func (m *Model) draw(s engine.Snapshot) {
	m.canvas.Clear()
	p := m.project(s)

	x1, y1 := p(s.Surface.X, s.Surface.Y)
	m.canvas.DrawRect(0, 0, x1, y1)

	for _, z := range s.Zones {
		c := z.Rect.Center()
		cx, cy := p(c.X, c.Y)
		rx, _ := p(z.Rect.Width/2, 0)
		m.canvas.DrawCircle(cx, cy, rx)
	}

	if s.Visual.Alpha <= 0 {
		return
	}
	c := s.VisualPosition()
	cx, cy := p(c.X+s.BallSize.X/2, c.Y+s.BallSize.Y/2)
	r, _ := p(s.BallSize.X/2*s.Visual.Scale.X, 0)
	if s.Visual.Alpha < 0.5 {
		m.canvas.DrawCircle(cx, cy, r)
		return
	}
	m.canvas.FillCircle(cx, cy, r)

	if s.Phase == engine.PhaseIdle {
		rad := m.angle * math.Pi / 180
		reach := float64(r+2) + float64(m.power)
		m.canvas.DrawLine(cx, cy, cx+int(reach*math.Cos(rad)), cy+int(reach*math.Sin(rad)))
	}
}

func (m Model) View() string {
	s := m.ctrl.Snapshot()
	m.draw(s)
	canvas := lipgloss.NewStyle().Foreground(m.theme.Surface).Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(headerStyle(m.theme).Render("HOLESIM") + "\n")
	status := strings.ToUpper(s.Phase.String())
	if !m.running {
		status = "PAUSED"
	}
	if m.autoplay {
		status += " · AUTO"
	}
	b.WriteString(phaseStyle(m.theme, s.Frozen).Render(status) + "\n")

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", s.Time))
	row("Position", s.Position.String())
	row("Speed", fmt.Sprintf("%.0f", s.Speed()))
	row("Aim", fmt.Sprintf("%s %3.0f°", AimArrow(m.angle), m.angle))
	row("Power", PowerBar(m.power, maxPower))
	row("Captures", fmt.Sprintf("%d", m.ctrl.Captures()))
	row("Bounces", fmt.Sprintf("%d", m.feed.bounces))

	if len(m.feed.events) > 0 {
		b.WriteString("\n")
		for _, e := range m.feed.events {
			line := fmt.Sprintf("%6.2fs %s", e.Time, e.Kind)
			if e.Reason != "" {
				line += " (" + e.Reason + ")"
			}
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render(line) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("←→:Aim ↑↓/1-9:Power SP:Fling\nA:Auto P:Pause R:Reset T:Theme Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(canvas), statsStyle.Render(b.String()))
}
