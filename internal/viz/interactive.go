package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PresetInfo describes the bundled scenarios in the picker.
var PresetInfo = map[string]string{
	"binary":    "light companion orbiting a heavy primary",
	"collision": "head-on pair, momentum exchange on contact",
	"trio":      "star with two planets on circular starts",
	"ring":      "ring of moons around a hub",
	"cluster":   "scattered bodies collapsing under gravity",
}

// Launcher builds the live model for a scenario name.
type Launcher func(name string) (Model, error)

const (
	stateMenu = iota
	stateSim
)

// Picker lists scenarios and hands the chosen one to a live Model.
type Picker struct {
	state     int
	cursor    int
	names     []string
	launch    Launcher
	live      Model
	launches  int
	err       error
	winWidth  int
	winHeight int
}

func NewPicker(names []string, launch Launcher) Picker {
	return Picker{names: names, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.state = stateMenu
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.winWidth, p.winHeight = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.names)-1 {
				p.cursor++
			}
		case "enter":
			if len(p.names) == 0 {
				return p, nil
			}
			live, err := p.launch(p.names[p.cursor])
			if err != nil {
				p.err = err
				return p, nil
			}
			p.err = nil
			p.launches++
			live.gen = p.launches
			p.live = live
			p.state = stateSim
			cmds := []tea.Cmd{live.Init()}
			if p.winWidth > 0 {
				size := tea.WindowSizeMsg{Width: p.winWidth, Height: p.winHeight}
				cmds = append(cmds, func() tea.Msg { return size })
			}
			return p, tea.Batch(cmds...)
		}
	}
	return p, nil
}

func (p Picker) View() string {
	if p.state == stateSim {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString(cyan.Render("gravsim") + dim.Render("  pick a scenario") + "\n\n")
	for i, name := range p.names {
		cursor := "  "
		line := white.Render(fmt.Sprintf("%-10s", name))
		if i == p.cursor {
			cursor = yellow.Render("> ")
			line = yellow.Render(fmt.Sprintf("%-10s", name))
		}
		b.WriteString(cursor + line + " " + dim.Render(PresetInfo[name]) + "\n")
	}
	if p.err != nil {
		b.WriteString("\n" + red.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("↑↓ select  enter run  esc back  q quit"))
	return b.String()
}
