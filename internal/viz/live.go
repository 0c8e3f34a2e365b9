package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dtqw/internal/analysis"
	"github.com/san-kum/dtqw/internal/walk"
)

const (
	canvasWidth     = 60
	canvasHeight    = 16
	historyCapacity = 600
	defaultFPS      = 20
)

type TickMsg time.Time

// Model is a live step-by-step viewer. It owns its state and advances it
// with the stepper one step per tick, keeping a bounded history for replay.
type Model struct {
	title    string
	op       walk.Stepper
	initial  walk.State
	state    walk.State
	step     int
	maxSteps int
	running  bool
	err      error

	canvas   *Canvas
	theme    Theme
	styles   styles
	fps      int
	showHelp bool

	history  []walk.State
	entropy  []float64
	playHead int
}

// NewModel creates a viewer that walks x0 for at most maxSteps steps.
func NewModel(title string, op walk.Stepper, x0 walk.State, maxSteps int) Model {
	return Model{
		title:    title,
		op:       op,
		initial:  x0.Clone(),
		state:    x0.Clone(),
		maxSteps: maxSteps,
		running:  true,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    Themes[0],
		styles:   newStyles(Themes[0]),
		fps:      defaultFPS,
		history:  []walk.State{x0.Clone()},
		entropy:  make([]float64, 0, historyCapacity),
		playHead: -1,
	}
}

func (m Model) Step() int         { return m.step }
func (m Model) State() walk.State { return m.state }
func (m Model) Running() bool     { return m.running }
func (m Model) Err() error        { return m.err }
func (m Model) Done() bool        { return m.step >= m.maxSteps }
func (m Model) WithFPS(fps int) Model {
	if fps > 0 {
		m.fps = fps
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.advance()
			}
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.playHead == -1 && !m.Done() && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	next, err := m.op.Step(m.state)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = next
	m.step++

	m.history = append(m.history, next)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	if d, err := walk.Measure(next); err == nil {
		m.entropy = append(m.entropy, analysis.Entropy(d))
		if len(m.entropy) > historyCapacity {
			m.entropy = m.entropy[1:]
		}
	}
}

// scrub moves the replay head through history. Moving past the newest
// state returns to live mode.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.state = m.initial.Clone()
	m.step = 0
	m.err = nil
	m.history = []walk.State{m.initial.Clone()}
	m.entropy = m.entropy[:0]
	m.playHead = -1
}

// shown returns the state on screen and its step number.
func (m Model) shown() (walk.State, int) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead], m.step - (len(m.history) - 1 - m.playHead)
	}
	return m.state, m.step
}

func (m Model) View() string {
	state, step := m.shown()
	d, err := walk.Measure(state)
	if err != nil {
		return m.styles.warning.Render(err.Error())
	}

	m.canvas.DrawDistribution(d)
	axis := fmt.Sprintf("%-*d%*d", canvasWidth/2, -d.Lattice.N, canvasWidth-canvasWidth/2, d.Lattice.N)
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.styles.bars.Render(m.canvas.String()) + axis)

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "ERROR"
	case m.playHead != -1:
		status = fmt.Sprintf("REPLAY (%d)", step-m.step)
	case m.Done():
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("step", fmt.Sprintf("%d / %d", step, m.maxSteps))
	row("total", fmt.Sprintf("%.12f", d.Total()))
	row("std dev", fmt.Sprintf("%.3f", analysis.StdDev(d)))
	row("entropy", fmt.Sprintf("%.3f", analysis.Entropy(d)))
	row("asymmetry", fmt.Sprintf("%.2e", analysis.Asymmetry(d)))

	if len(m.entropy) > 1 {
		s.WriteString("\n" + m.styles.label.Render("entropy") + Sparkline(m.entropy, 24) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + m.styles.warning.Render(m.err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(m.styles.help.Render("SPACE pause  N step  R reset\n[ ] replay  T theme  Q quit"))
	} else {
		s.WriteString(m.styles.help.Render("? help"))
	}

	statsView := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Label).
		Padding(1, 2).
		Width(40).
		Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func walkStart(op walk.Stepper, phi, phase float64) walk.State {
	return walk.LocalizedStateWithPhase(op.Lattice(), phi, phase)
}
