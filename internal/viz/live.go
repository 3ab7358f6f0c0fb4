package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numint/internal/experiment"
)

var (
	liveCanvasStyle = lipgloss.NewStyle().Padding(1, 2)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// LiveModel replays a finished integration level by level: each tick
// reveals one more refinement estimate, showing how the rule closed in
// on the result.
type LiveModel struct {
	res      *experiment.Result
	shown    int
	interval time.Duration
	paused   bool
	done     bool
}

func NewLiveModel(res *experiment.Result, interval time.Duration) *LiveModel {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &LiveModel{res: res, shown: 1, interval: interval}
}

func (m *LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m *LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
		case "r":
			m.shown = 1
			m.done = false
			if !m.paused {
				return m, m.tick()
			}
		}
	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		if m.shown < len(m.res.Estimates) {
			m.shown++
			return m, m.tick()
		}
		m.done = true
	}
	return m, nil
}

func (m *LiveModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("refining ∫ %s over [%g, %g]",
		m.res.Job.Function, m.res.Job.Lower, m.res.Job.Upper)))
	b.WriteString("\n")

	if m.shown >= 2 {
		plot := asciigraph.Plot(m.res.Estimates[:m.shown],
			asciigraph.Width(defaultWidth),
			asciigraph.Height(defaultHeight),
		)
		b.WriteString(graphStyle.Render(plot))
		b.WriteString("\n")
	}

	level := m.shown
	b.WriteString(labelStyle.Render("level"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d/%d", level, len(m.res.Estimates))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("estimate"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.12g", m.res.Estimates[level-1])))
	b.WriteString("\n")

	if m.done {
		if m.res.Err != nil {
			b.WriteString(labelStyle.Render("failed"))
			b.WriteString(errStyle.Render(m.res.Err.Error()))
		} else {
			b.WriteString(labelStyle.Render("converged"))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.12g", m.res.Value)))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r replay · q quit"))
	return liveCanvasStyle.Render(b.String())
}

// RunLive runs the replay view to completion.
func RunLive(res *experiment.Result, interval time.Duration) error {
	if len(res.Estimates) == 0 {
		return fmt.Errorf("viz: no refinement history to replay")
	}
	p := tea.NewProgram(NewLiveModel(res, interval))
	_, err := p.Run()
	return err
}
