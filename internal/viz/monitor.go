package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/neuron"
)

const (
	canvasWidth     = 40
	canvasHeight    = 16
	historyCapacity = 240
	frameInterval   = time.Second / 30
	maxTicksFrame   = 500
	// InputStep is the synaptic input change per key press.
	InputStep       = 0.1
)

var varNames = [hr.NumVars]string{"x", "y", "z"}

// Engine is the neuron the monitor drives. Both *neuron.Neuron and
// *neuron.Realtime satisfy it.
type Engine interface {
	Process() int
	SetInput(in neuron.Input, v float64)
	Reset()
	Vars() hr.Vars
	Timing() neuron.Timing
	Params() hr.Params
}

type TickMsg time.Time

// Monitor is the Bubble Tea model of the live view.
type Monitor struct {
	eng     Engine
	name    string
	running bool
	iSyn    float64
	plotVar int
	theme   int
	st      styles
	help    bool

	ticks    int
	substeps int
	lastStep int
	history  [hr.NumVars][]float64
	canvas   *Canvas
}

func NewMonitor(eng Engine, name string) Monitor {
	m := Monitor{
		eng:     eng,
		name:    name,
		running: true,
		st:      newStyles(Themes[0]),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
	for i := range m.history {
		m.history[i] = make([]float64, 0, historyCapacity)
	}
	return m
}

// WithTheme selects a theme by name.
func (m Monitor) WithTheme(name string) Monitor {
	m.theme = ThemeIndex(name)
	m.st = newStyles(Themes[m.theme])
	return m
}

func (m Monitor) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// TicksPerFrame is how many neuron ticks one frame covers at the
// configured period.
func (m Monitor) TicksPerFrame() int {
	period := m.eng.Timing().PeriodSeconds
	if !(period > 0) {
		return 1
	}
	n := int(math.Round(frameInterval.Seconds() / period))
	if n < 1 {
		return 1
	}
	if n > maxTicksFrame {
		return maxTicksFrame
	}
	return n
}

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.setInput(m.iSyn + InputStep)
		case "down", "j":
			m.setInput(m.iSyn - InputStep)
		case "tab":
			m.plotVar = (m.plotVar + 1) % hr.NumVars
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.st = newStyles(Themes[m.theme])
		case "r":
			m.eng.Reset()
			m.clearHistory()
		case "?":
			m.help = !m.help
		}
	case TickMsg:
		if m.running {
			m.advance(m.TicksPerFrame())
		}
		return m, tick()
	}
	return m, nil
}

func (m *Monitor) setInput(v float64) {
	// Keep the input on the step grid.
	m.iSyn = math.Round(v*1e6) / 1e6
	m.eng.SetInput(neuron.InputSyn, m.iSyn)
}

func (m *Monitor) advance(n int) {
	for i := 0; i < n; i++ {
		m.lastStep = m.eng.Process()
		m.substeps += m.lastStep
		m.ticks++
		v := m.eng.Vars()
		for j := range m.history {
			m.history[j] = push(m.history[j], v[j])
		}
	}
}

func push(buf []float64, v float64) []float64 {
	if len(buf) == historyCapacity {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, v)
}

func (m *Monitor) clearHistory() {
	for i := range m.history {
		m.history[i] = m.history[i][:0]
	}
}

// Ticks returns the number of ticks run so far.
func (m Monitor) Ticks() int        { return m.ticks }
func (m Monitor) Input() float64    { return m.iSyn }
func (m Monitor) Running() bool     { return m.running }
func (m Monitor) PlotVar() string   { return varNames[m.plotVar] }
func (m Monitor) ThemeName() string { return Themes[m.theme].Name }
func (m Monitor) History(i int) []float64 {
	return append([]float64(nil), m.history[i]...)
}

func (m Monitor) drawPhase() string {
	m.canvas.Clear()
	xs, zs := m.history[hr.X], m.history[hr.Z]
	m.canvas.FitWindow(xs, zs)
	for i := 1; i < len(xs); i++ {
		m.canvas.Line(xs[i-1], zs[i-1], xs[i], zs[i])
	}
	return m.canvas.String()
}

func (m Monitor) View() string {
	var s strings.Builder
	s.WriteString(m.st.header.Render(strings.ToUpper(m.name)) + "\n")

	if m.running {
		s.WriteString(m.st.running.Render("RUNNING"))
	} else {
		s.WriteString(m.st.paused.Render("PAUSED"))
	}
	s.WriteString("\n")

	hist := m.history[m.plotVar]
	if len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(6), asciigraph.Width(36),
			asciigraph.Caption(varNames[m.plotVar]))
		s.WriteString(m.st.graph.Render(chart) + "\n")
	}

	v := m.eng.Vars()
	t := m.eng.Timing()
	p := m.eng.Params()
	row := func(label, value string) {
		s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}
	for i, name := range varNames {
		line := fmt.Sprintf("%.5f", v[i])
		if i == m.plotVar {
			s.WriteString(m.st.active.Render(fmt.Sprintf("%-12s%s", "> "+name, line)) + "\n")
			continue
		}
		row("  "+name, line)
	}
	row("i_syn", fmt.Sprintf("%.3f", m.iSyn))
	row("ticks", fmt.Sprintf("%d", m.ticks))
	row("dt", fmt.Sprintf("%.4g", t.Dt))
	row("substeps", fmt.Sprintf("%d", m.lastStep))
	row("mode", t.Mode.String())
	row("e", fmt.Sprintf("%.3f", p.E))
	if t.Mode == neuron.ModeBurst && !t.Matched {
		s.WriteString(m.st.warning.Render("no calibration match") + "\n")
	}
	s.WriteString(m.st.help.Render("SP:Pause ↑↓:i_syn Tab:Var\nT:Theme R:Reset ?:Help Q:Quit"))

	panel := m.st.panel.Render(s.String())
	phase := m.st.canvas.Render(m.drawPhase())
	view := lipgloss.JoinHorizontal(lipgloss.Top, phase, panel)
	if m.help {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `Space    pause or resume
Up/K     raise i_syn by 0.1
Down/J   lower i_syn by 0.1
Tab      cycle plotted variable
T        cycle theme
R        reset state variables
Q        quit`

// Run starts the monitor on the terminal.
func Run(eng Engine, name, theme string) error {
	p := tea.NewProgram(NewMonitor(eng, name).WithTheme(theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
