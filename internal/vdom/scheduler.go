package vdom

import "time"

// ManualScheduler is a Scheduler driven by an explicit clock. Timers fire
// only from Advance, on the caller's goroutine.
type ManualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	every   time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements Scheduler. Non-positive intervals never fire.
func (s *ManualScheduler) Every(d time.Duration, fn func()) func() {
	t := &manualTimer{every: d, next: s.now + d, fn: fn, stopped: d <= 0 || fn == nil}
	if !t.stopped {
		s.timers = append(s.timers, t)
	}
	return func() { t.stopped = true }
}

// Now returns the time advanced so far.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Active returns the number of timers that have not been cancelled.
func (s *ManualScheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in time order and
// registration order on ties. It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for {
		var due *manualTimer
		for _, t := range s.timers {
			if t.stopped || t.next > target {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			break
		}
		s.now = due.next
		due.next += due.every
		due.fn()
		fired++
	}
	s.now = target
	s.prune()
	return fired
}

func (s *ManualScheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
