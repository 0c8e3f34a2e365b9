package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dtqw/internal/config"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	stateMenu = iota
	stateLive
)

// App lets the user pick a preset and then watch it walk.
type App struct {
	state   int
	cursor  int
	presets []string
	live    Model
	err     error
	fps     int
}

func NewApp(fps int) App {
	return App{presets: config.ListPresets(), fps: fps}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateLive {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "b" {
			a.state = stateMenu
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		m, err := ModelFromConfig(a.presets[a.cursor], config.GetPreset(a.presets[a.cursor]))
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		a.live = m.WithFPS(a.fps)
		a.state = stateLive
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View() + "\n" + dim.Render("B back to presets")
	}

	var b strings.Builder
	b.WriteString(cyan.Render("dtqw presets") + "\n\n")
	for i, name := range a.presets {
		cfg := config.GetPreset(name)
		line := fmt.Sprintf("%-12s N=%-4d steps=%-4d %s", name, cfg.N, cfg.Steps, cfg.Boundary)
		if i == a.cursor {
			b.WriteString(cyan.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n" + red.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("↑↓ select  ENTER run  Q quit"))
	return b.String()
}

// ModelFromConfig builds a live viewer for a config.
func ModelFromConfig(title string, cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	p, err := cfg.Params()
	if err != nil {
		return Model{}, err
	}
	op, err := p.Stepper()
	if err != nil {
		return Model{}, err
	}
	x0 := walkStart(op, p.Phi, p.Phase)
	return NewModel(title, op, x0, p.Steps), nil
}
