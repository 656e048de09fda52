package vdom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualSchedulerFiresInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Every(300*time.Millisecond, func() { got = append(got, "slow") })
	s.Every(100*time.Millisecond, func() { got = append(got, "fast") })

	n := s.Advance(350 * time.Millisecond)

	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"fast", "fast", "slow", "fast"}, got)
	assert.Equal(t, 350*time.Millisecond, s.Now())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ticks := 0
	cancel := s.Every(time.Second, func() { ticks++ })
	s.Advance(2 * time.Second)
	cancel()
	s.Advance(5 * time.Second)

	assert.Equal(t, 2, ticks)
	assert.Equal(t, 0, s.Active())
}

func TestManualSchedulerCancelFromCallback(t *testing.T) {
	s := NewManualScheduler()
	ticks := 0
	var cancel func()
	cancel = s.Every(time.Second, func() {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	s.Advance(10 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestManualSchedulerIgnoresNonPositiveInterval(t *testing.T) {
	s := NewManualScheduler()
	s.Every(0, func() { t.Fatal("must not fire") })
	assert.Equal(t, 0, s.Advance(time.Hour))
	assert.Equal(t, 0, s.Active())
}
