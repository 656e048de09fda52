package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"sierpinski/internal/demo"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	w, h := m.canvasSize()

	// Header
	header := m.chrome.title.Render(" sierpinski ─ triangle render benchmark ")
	header = lipgloss.NewStyle().Width(w).Render(header)

	// Canvas
	canvas := lipgloss.NewStyle().Width(w).Height(h).Render(m.scene.render(m.theme))

	// Footer / help
	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, canvas, footer)
	return m.chrome.app.Width(w).Height(m.height).Render(ui)
}

func (m Model) renderStatus() string {
	st := m.tree.Stats()
	counter, _ := demo.Content(m.frame)
	parts := []string{
		m.status,
		"counter " + counter,
		fmt.Sprintf("scale %.2f", demo.Scale(m.sw.Elapsed())),
		fmt.Sprintf("renders %d reused %d", st.Renders, st.Reused),
		"pass " + st.Duration.Round(time.Microsecond).String(),
	}
	status := m.chrome.dim.Render(" " + strings.Join(parts, "  ") + " ")
	if m.opts.SlowDown {
		status += m.chrome.warn.Render(fmt.Sprintf(" slow-down %v/node", m.opts.Delay))
	}
	return status
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.View(m.keys)
}
