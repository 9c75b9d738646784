package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-henkel/solarsystem/internal/gravity"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	trailLength  = 400
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps a gravitational system in real time and draws body trails on
// a braille canvas with a stats sidebar.
type Model struct {
	sys           *gravity.System
	scenario      string
	dt, g         float64
	t             float64
	stepsPerFrame int
	frameRate     int
	canvas        *Canvas
	trails        [][2]float64
	paused        bool
	err           error
}

func NewModel(sys *gravity.System, scenario string, dt, g float64, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		sys:           sys,
		scenario:      scenario,
		dt:            dt,
		g:             g,
		stepsPerFrame: stepsPerFrame,
		frameRate:     30,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trails:        make([][2]float64, 0, trailLength),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "f":
			if err := m.sys.FixMomentum(); err != nil {
				m.err = err
			}
		}
		return m, nil

	case TickMsg:
		if !m.paused && m.err == nil {
			for i := 0; i < m.stepsPerFrame; i++ {
				if err := m.sys.StepInPlace(m.dt, m.g); err != nil {
					m.err = err
					break
				}
				m.t += m.dt
			}
			m.recordTrail()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) recordTrail() {
	pos := m.sys.Positions()
	d := m.sys.Dim()
	for i := 0; i < m.sys.Len(); i++ {
		x := pos[i*d]
		y := 0.0
		if d > 1 {
			y = pos[i*d+1]
		}
		m.trails = append(m.trails, [2]float64{x, y})
	}
	if over := len(m.trails) - trailLength; over > 0 {
		m.trails = m.trails[over:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()

	scale := 1.0
	for _, p := range m.trails {
		scale = math.Max(scale, math.Max(math.Abs(p[0]), math.Abs(p[1])))
	}
	scale *= 1.2

	for _, p := range m.trails {
		m.canvas.PlotPoint(p[0], p[1], scale)
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(m.scenario) + "\n")
	stats.WriteString(row("time", fmt.Sprintf("%.3g", m.t)))
	stats.WriteString(row("bodies", fmt.Sprintf("%d", m.sys.Len())))
	stats.WriteString(row("dt", fmt.Sprintf("%.3g", m.dt)))

	p := m.sys.Momentum()
	pNorm := 0.0
	for _, v := range p {
		pNorm += v * v
	}
	stats.WriteString(row("|momentum|", fmt.Sprintf("%.3e", math.Sqrt(pNorm))))
	stats.WriteString(row("energy", fmt.Sprintf("%.4e", m.sys.Energy(m.g))))

	if com, err := m.sys.CenterOfMass(); err == nil {
		stats.WriteString(row("center", fmt.Sprintf("%.3g", com)))
	}

	if m.err != nil {
		stats.WriteString("\n" + errorStyle.Render(m.err.Error()))
	} else if m.paused {
		stats.WriteString("\n" + valueStyle.Render("paused"))
	}

	stats.WriteString(helpStyle.Render("\nspace pause · f fix momentum · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Run starts the live view and blocks until the user quits.
func Run(sys *gravity.System, scenario string, dt, g float64, stepsPerFrame int) error {
	p := tea.NewProgram(NewModel(sys, scenario, dt, g, stepsPerFrame))
	_, err := p.Run()
	return err
}
