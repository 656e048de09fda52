package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTeaSchedulerFireAndCancel(t *testing.T) {
	s := newTeaScheduler()
	ticks := 0
	cancel := s.Every(time.Second, func() { ticks++ })
	assert.NotNil(t, s.drain())
	assert.Nil(t, s.drain(), "drained commands are not repeated")

	assert.True(t, s.fire(1))
	assert.Equal(t, 1, ticks)
	assert.NotNil(t, s.drain(), "firing re-arms the timer")

	cancel()
	assert.False(t, s.fire(1))
	assert.Equal(t, 1, ticks)
	assert.Nil(t, s.drain())
	assert.Equal(t, 0, s.active())
}

func TestTeaSchedulerIgnoresInvalidTimers(t *testing.T) {
	s := newTeaScheduler()
	s.Every(0, func() {})
	s.Every(time.Second, nil)
	assert.Equal(t, 0, s.active())
	assert.Nil(t, s.drain())
}
