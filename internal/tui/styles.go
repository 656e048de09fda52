package tui

import (
	"github.com/charmbracelet/lipgloss"

	"sierpinski/internal/theme"
)

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	warnFg    = lipgloss.Color("#F59E0B")
)

// chrome holds the styles of everything around the canvas.
type chrome struct {
	app   lipgloss.Style
	title lipgloss.Style
	dim   lipgloss.Style
	warn  lipgloss.Style
}

// newChrome takes its accents from the theme: the title in the dot colour,
// warnings in the hover colour.
func newChrome(th *theme.Theme) chrome {
	c := chrome{
		app:   lipgloss.NewStyle().Foreground(baseFg),
		title: lipgloss.NewStyle().Foreground(accentFg).Bold(true),
		dim:   lipgloss.NewStyle().Foreground(baseDimFg),
		warn:  lipgloss.NewStyle().Foreground(warnFg),
	}
	if fg, ok := themeColor(th, theme.Dot); ok {
		c.title = c.title.Foreground(fg)
	}
	if fg, ok := themeColor(th, theme.Hover); ok {
		c.warn = c.warn.Foreground(fg)
	}
	return c
}

func themeColor(th *theme.Theme, key string) (lipgloss.TerminalColor, bool) {
	classes := th.Classes(key)
	if len(classes) == 0 {
		return nil, false
	}
	fg := th.Fill(classes).GetForeground()
	if _, unset := fg.(lipgloss.NoColor); unset {
		return nil, false
	}
	return fg, true
}
