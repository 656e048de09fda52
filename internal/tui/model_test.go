package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sierpinski/internal/demo"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(Config{Options: demo.Options{Tick: time.Second}})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)
	require.NotEmpty(t, m.scene.shapes)
	return m
}

func counter(m Model) string {
	c, _ := demo.Content(m.frame)
	return c
}

func TestNewMountsApplication(t *testing.T) {
	m := New(Config{Options: demo.Options{Tick: time.Second}})
	assert.Equal(t, 1, m.sched.active())
	assert.Equal(t, "0", counter(m))
	assert.NotNil(t, m.Init())
	assert.Empty(t, m.View(), "no view before the first size message")
}

func TestTimerMessageAdvancesCounter(t *testing.T) {
	m := newTestModel(t)
	for n := 1; n <= 12; n++ {
		next, _ := m.Update(timerMsg{id: 1})
		m = next.(Model)
	}
	assert.Equal(t, "2", counter(m))
	assert.Len(t, m.scene.shapes, 729)
}

func TestPointerHoverEntersAndLeaves(t *testing.T) {
	m := newTestModel(t)
	w, h := m.canvasSize()
	var target *shape
	for y := 0; y < h && target == nil; y++ {
		for x := 0; x < w; x++ {
			if s := m.scene.hit(x, y); s != nil {
				next, _ := m.Update(tea.MouseMsg{X: x, Y: y + headerHeight, Action: tea.MouseActionMotion})
				m = next.(Model)
				target = s
				break
			}
		}
	}
	require.NotNil(t, target)
	assert.Equal(t, target.path, m.hoverPath)
	hovered := m.scene.find(target.path)
	require.NotNil(t, hovered)
	assert.Equal(t, "*0*", hovered.label)

	next, _ := m.Update(tea.MouseMsg{X: -5, Y: -5, Action: tea.MouseActionMotion})
	m = next.(Model)
	assert.Empty(t, m.hoverPath)
	assert.Equal(t, "0", m.scene.find(target.path).label)
}

func TestQuitReleasesTimer(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, m.sched.active())

	m.Close()
}

func TestSlowDownToggleRerendersTriangles(t *testing.T) {
	m := New(Config{Options: demo.Options{Tick: time.Second, Delay: time.Microsecond}})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = next.(Model)
	assert.True(t, m.opts.SlowDown)
	// the application and every triangle see a new delay; dots are reused
	assert.Equal(t, 1+1093, m.tree.Stats().Renders)
	assert.Equal(t, 729, m.tree.Stats().Reused)
	assert.Contains(t, m.View(), "slow-down")
}

func TestViewFitsWindow(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "sierpinski")
	assert.Contains(t, out, "counter 0")
}

func TestHoverFollowsLayoutUnderRestingPointer(t *testing.T) {
	m := newTestModel(t)
	w, h := m.canvasSize()

	// rightmost covered cell: widening the container moves a different dot there
	px, py := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.scene.hit(x, y) != nil && x > px {
				px, py = x, y
			}
		}
	}
	require.GreaterOrEqual(t, px, 0)
	next, _ := m.Update(tea.MouseMsg{X: px, Y: py + headerHeight, Action: tea.MouseActionMotion})
	m = next.(Model)
	require.NotEmpty(t, m.hoverPath)

	m.tree.SetRoot(demo.ExampleApplication{Elapsed: 5 * time.Second, Options: m.opts})
	next, _ = m.Update(timerMsg{id: 99})
	m = next.(Model)

	want := ""
	if s := m.scene.hit(px, py); s != nil {
		want = s.path
	}
	assert.Equal(t, want, m.hoverPath)

	var hovered []string
	for _, s := range m.scene.shapes {
		if strings.HasPrefix(s.label, "*") {
			hovered = append(hovered, s.path)
		}
	}
	if want == "" {
		assert.Empty(t, hovered)
	} else {
		assert.Equal(t, []string{want}, hovered)
	}
}
