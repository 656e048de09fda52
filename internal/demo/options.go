package demo

import "time"

// Options tunes the benchmark.
type Options struct {
	// SlowDown enables the per-node busy-wait in SierpinskiTriangle.
	SlowDown bool
	// Delay is how long each subdividing triangle spins when SlowDown is set.
	Delay time.Duration
	// Tick is the period of the application counter.
	Tick time.Duration
}

// DefaultOptions returns the stock benchmark settings.
func DefaultOptions() Options {
	return Options{
		SlowDown: true,
		Delay:    800 * time.Microsecond,
		Tick:     time.Second,
	}
}

func (o Options) nodeDelay() time.Duration {
	if !o.SlowDown {
		return 0
	}
	return o.Delay
}

func (o Options) tick() time.Duration {
	if o.Tick <= 0 {
		return time.Second
	}
	return o.Tick
}

// BusyWait spins on the monotonic clock until d has passed. It never yields.
func BusyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}
