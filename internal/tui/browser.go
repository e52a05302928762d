package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/indigodrigo/rk4-wind-solution/internal/viz"
	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

const (
	canvasWidth  = 64
	canvasHeight = 18
)

// Browser is a bubbletea model for paging through the solution branches of
// one run.
type Browser struct {
	model      *wind.Model
	sols       []wind.Solution
	idx        int
	normalized bool
	overlay    bool // all branches on one canvas
}

func NewBrowser(m *wind.Model, sols []wind.Solution, normalized bool) Browser {
	return Browser{model: m, sols: sols, normalized: normalized, overlay: true}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "left", "h":
			b.overlay = false
			b.idx = (b.idx + len(b.sols) - 1) % len(b.sols)
		case "right", "l":
			b.overlay = false
			b.idx = (b.idx + 1) % len(b.sols)
		case "a":
			b.overlay = !b.overlay
		case "n":
			b.normalized = !b.normalized
		}
	}
	return b, nil
}

func (b Browser) View() string {
	if len(b.sols) == 0 {
		return "no solutions\n"
	}

	shown := b.sols
	title := "all branches"
	if !b.overlay {
		shown = b.sols[b.idx : b.idx+1]
		title = shown[0].Branch.String()
	}

	plot := viz.PlotSolutions(b.model, shown, b.normalized, canvasWidth, canvasHeight)

	header := viz.HeaderStyle.Render("isothermal wind solutions - " + title)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		viz.CanvasStyle.Render(plot),
		viz.StatsStyle.Render(b.stats()),
	)
	help := viz.HelpStyle.Render("h/l branch, a overlay, n units, q quit")

	return header + "\n" + body + "\n" + help + "\n"
}

func (b Browser) stats() string {
	a := b.model.SoundSpeed()
	rc := b.model.CriticalRadius()
	sol := b.sols[b.idx]
	min, max := wind.VelocityRange(wind.ClampNegative(sol))

	row := func(label, value string) string {
		return viz.LabelStyle.Render(label) + viz.ValueStyle.Render(value) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(row("sound speed", fmt.Sprintf("%.2f km/s", a/1000)))
	sb.WriteString(row("critical r", fmt.Sprintf("%.3e km", rc/1000)))
	sb.WriteString(row("branch", fmt.Sprintf("%d/%d", b.idx+1, len(b.sols))))
	sb.WriteString(row("samples", fmt.Sprintf("%d", len(sol.Points))))
	if b.normalized {
		sb.WriteString(row("v range", fmt.Sprintf("%.3f .. %.3f v/a", min/a, max/a)))
	} else {
		sb.WriteString(row("v range", fmt.Sprintf("%.2f .. %.2f km/s", min/1000, max/1000)))
	}
	if sol.Truncated {
		sb.WriteString(viz.TruncatedStyle.Render("truncated") + "\n")
	}
	return sb.String()
}

// Run starts the browser and blocks until the user quits.
func Run(m *wind.Model, sols []wind.Solution, normalized bool) error {
	p := tea.NewProgram(NewBrowser(m, sols, normalized))
	_, err := p.Run()
	return err
}
