// Package bench runs the demo without a terminal and measures render passes.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sierpinski/internal/demo"
	"sierpinski/internal/vdom"
)

// Config describes a headless run.
type Config struct {
	Options demo.Options
	Frames  int
	Frame   time.Duration
	Theme   vdom.ClassResolver
	Logger  *slog.Logger
}

// Result summarises a run. Durations other than Simulated are wall time
// spent inside render passes.
type Result struct {
	Frames    int
	Simulated time.Duration
	Renders   int
	Reused    int
	Total     time.Duration
	Mean      time.Duration
	Max       time.Duration
	Counter   string
}

// Run renders cfg.Frames frames, advancing a simulated clock by cfg.Frame
// before each one so the counter timer fires as it would live.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Frames <= 0 {
		return Result{}, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.Frame <= 0 {
		return Result{}, fmt.Errorf("frame interval must be positive, got %v", cfg.Frame)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sched := vdom.NewManualScheduler()
	opts := []vdom.Option{vdom.WithScheduler(sched), vdom.WithLogger(log)}
	if cfg.Theme != nil {
		opts = append(opts, vdom.WithTheme(cfg.Theme))
	}
	tree := vdom.New(demo.ExampleApplication{Options: cfg.Options}, opts...)
	defer tree.Unmount()

	var res Result
	var root vdom.Node
	for i := 0; i < cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if i > 0 {
			sched.Advance(cfg.Frame)
		}
		tree.SetRoot(demo.ExampleApplication{Elapsed: sched.Now(), Options: cfg.Options})
		root = tree.Render()

		st := tree.Stats()
		res.Frames++
		res.Renders += st.Renders
		res.Reused += st.Reused
		res.Total += st.Duration
		res.Max = max(res.Max, st.Duration)
		if st.Renders > 1 {
			log.Info("full pass", "frame", i, "renders", st.Renders, "duration", st.Duration)
		}
	}
	res.Simulated = sched.Now()
	res.Mean = res.Total / time.Duration(res.Frames)
	res.Counter, _ = demo.Content(root)
	return res, nil
}

// Table renders the result as a bordered two-column table.
func (r Result) Table() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#243141"))).
		Headers("metric", "value").
		Row("frames", strconv.Itoa(r.Frames)).
		Row("simulated time", r.Simulated.String()).
		Row("widget renders", strconv.Itoa(r.Renders)).
		Row("reused instances", strconv.Itoa(r.Reused)).
		Row("render time", r.Total.String()).
		Row("mean per frame", r.Mean.String()).
		Row("slowest frame", r.Max.String()).
		Row("counter", r.Counter)
	return t.String()
}
