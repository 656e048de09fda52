package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerMsg struct {
	id int
}

// teaScheduler delivers timer callbacks as bubbletea messages, so they run
// inside Update alongside every other event.
type teaScheduler struct {
	next    int
	timers  map[int]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	every time.Duration
	fn    func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: map[int]*teaTimer{}}
}

func (s *teaScheduler) Every(d time.Duration, fn func()) func() {
	if d <= 0 || fn == nil {
		return func() {}
	}
	s.next++
	id := s.next
	s.timers[id] = &teaTimer{every: d, fn: fn}
	s.pending = append(s.pending, wait(id, d))
	return func() { delete(s.timers, id) }
}

func wait(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} })
}

// fire runs the callback of timer id and re-arms it. Cancelled timers are
// dropped.
func (s *teaScheduler) fire(id int) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	s.pending = append(s.pending, wait(id, t.every))
	t.fn()
	return true
}

func (s *teaScheduler) active() int {
	return len(s.timers)
}

// drain returns the commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
