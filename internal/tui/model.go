package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"

	"sierpinski/internal/demo"
	"sierpinski/internal/theme"
	"sierpinski/internal/vdom"
)

// Config configures the terminal host.
type Config struct {
	Options demo.Options
	Frame   time.Duration
	Theme   *theme.Theme
	Logger  *slog.Logger
}

type Model struct {
	width  int
	height int

	helpVisible bool
	status      string

	opts   demo.Options
	theme  *theme.Theme
	chrome chrome
	log    *slog.Logger

	tree  *vdom.Tree
	sched *teaScheduler
	frame vdom.Node
	scene scene

	// elapsed time source; its ticks drive animation frames
	sw stopwatch.Model

	// last pointer cell on the canvas
	px, py  int
	pointed bool

	// element under the pointer, by path
	hoverPath string

	keys keyMap
	help help.Model
}

// New builds the model and renders the first frame, which mounts the
// application and arms its counter timer.
func New(cfg Config) Model {
	if cfg.Theme == nil {
		cfg.Theme = theme.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Frame <= 0 {
		cfg.Frame = time.Second / 60
	}
	m := Model{
		helpVisible: true,
		status:      "sierpinski ready",
		opts:        cfg.Options,
		theme:       cfg.Theme,
		chrome:      newChrome(cfg.Theme),
		log:         cfg.Logger,
		sched:       newTeaScheduler(),
		sw:          stopwatch.NewWithInterval(cfg.Frame),
		keys:        defaultKeys(),
		help:        help.New(),
	}
	m.tree = vdom.New(m.app(),
		vdom.WithScheduler(m.sched),
		vdom.WithTheme(m.theme),
		vdom.WithLogger(m.log))
	m.frame = m.tree.Render()
	return m
}

func (m Model) app() demo.ExampleApplication {
	return demo.ExampleApplication{Elapsed: m.sw.Elapsed(), Options: m.opts}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sw.Init(), m.sched.drain())
}

// Close tears the widget tree down, cancelling its timers. Safe to call
// more than once.
func (m Model) Close() {
	m.tree.Unmount()
}
