package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	footerHeight = 2
)

func (m Model) canvasSize() (int, int) {
	return max(10, m.width), max(4, m.height-headerHeight-footerHeight)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds  []tea.Cmd
		moved bool
	)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		moved = true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			total := m.tree.Total()
			m.log.Info("quit", "passes", total.Passes, "renders", total.Renders, "render_time", total.Duration)
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			cmds = append(cmds, m.sw.Toggle())
			// Running still reports the state before the toggle lands
			if m.sw.Running() {
				m.status = "paused"
			} else {
				m.status = "running"
			}
		case key.Matches(msg, m.keys.SlowDown):
			m.opts.SlowDown = !m.opts.SlowDown
			m.status = fmt.Sprintf("slow-down: %v", m.opts.SlowDown)
			m.log.Info("slow-down toggled", "enabled", m.opts.SlowDown, "delay", m.opts.Delay)
			m.tree.SetRoot(m.app())
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		}
	case tea.MouseMsg:
		m.px, m.py, m.pointed = msg.X, msg.Y-headerHeight, true
		moved = true
	case timerMsg:
		m.sched.fire(msg.id)
	default:
		var cmd tea.Cmd
		m.sw, cmd = m.sw.Update(msg)
		cmds = append(cmds, cmd)
		m.tree.SetRoot(m.app())
	}
	m.settle(moved)
	cmds = append(cmds, m.sched.drain())
	return m, tea.Batch(cmds...)
}

// settle renders pending invalidations and re-targets the pointer. Frames
// move dots under a resting pointer, so a new layout counts as a move.
func (m *Model) settle(moved bool) {
	if m.tree.Dirty() {
		m.frame = m.tree.Render()
		m.relayout()
		moved = true
	}
	if !moved || !m.pointed {
		return
	}
	m.pointer(m.px, m.py)
	// enter and leave only restyle dots; the layout is unchanged
	if m.tree.Dirty() {
		m.frame = m.tree.Render()
		m.relayout()
	}
}

func (m *Model) relayout() {
	w, h := m.canvasSize()
	m.scene = buildScene(m.frame, w, h)
}

// pointer moves the pointer to canvas cell (x, y), sending leave to the
// element it was over and enter to the one it is now over.
func (m *Model) pointer(x, y int) {
	path := ""
	if s := m.scene.hit(x, y); s != nil {
		path = s.path
	}
	if path == m.hoverPath {
		return
	}
	if prev := m.scene.find(m.hoverPath); prev != nil && prev.el.OnMouseLeave != nil {
		prev.el.OnMouseLeave()
	}
	m.hoverPath = path
	if cur := m.scene.find(path); cur != nil && cur.el.OnMouseEnter != nil {
		m.log.Debug("pointer enter", "path", path)
		cur.el.OnMouseEnter()
	}
}
