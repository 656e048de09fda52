package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"sierpinski/internal/bench"
	"sierpinski/internal/config"
	"sierpinski/internal/demo"
	"sierpinski/internal/dom"
	"sierpinski/internal/theme"
	"sierpinski/internal/tui"
	"sierpinski/internal/vdom"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run parses args and runs the selected mode. Deferred cleanups (the log
// file, the widget tree) complete before it returns.
func run(args []string, stdout io.Writer) (err error) {
	fs := flag.NewFlagSet("sierpinski", flag.ContinueOnError)
	var (
		configPath = fs.String("config", config.FileName, "configuration file")
		themePath  = fs.String("theme", "", "stylesheet overriding the built-in theme")
		logPath    = fs.String("log", "", "write debug logs to this file")
		headless   = fs.Bool("headless", false, "run the benchmark without a terminal UI")
		frames     = fs.Int("frames", 600, "frames rendered by -headless")
		htmlPath   = fs.String("html", "", "write an HTML snapshot to this file and exit")
		elapsed    = fs.Duration("elapsed", 0, "simulated time of the -html snapshot")
		slowDown   = fs.Bool("slowdown", true, "busy-wait in every subdividing triangle")
		delay      = fs.Duration("delay", 0, "busy-wait per triangle (default from config)")
		tick       = fs.Duration("tick", 0, "counter period (default from config)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		return err
	}
	res := cfg.Resolve()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "slowdown":
			res.Options.SlowDown = *slowDown
		case "delay":
			res.Options.Delay = *delay
		case "tick":
			res.Options.Tick = *tick
		case "theme":
			res.Theme = *themePath
		}
	})

	th := theme.Default()
	if res.Theme != "" {
		if th, err = theme.Load(res.Theme); err != nil {
			return err
		}
	}

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "sierpinski")
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer func() {
			// LogToFile redirected the standard logger too
			log.SetOutput(os.Stderr)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch {
	case *htmlPath != "":
		return writeSnapshot(*htmlPath, res.Options, *elapsed, th, logger)
	case *headless || !isTerminal(stdout):
		return runHeadless(stdout, res, *frames, th, logger)
	}
	m := tui.New(tui.Config{Options: res.Options, Frame: res.Frame, Theme: th, Logger: logger})
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func runHeadless(w io.Writer, res config.Resolved, frames int, th *theme.Theme, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	r, err := bench.Run(ctx, bench.Config{
		Options: res.Options,
		Frames:  frames,
		Frame:   res.Frame,
		Theme:   th,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, r.Table())
	return err
}

// writeSnapshot renders the application as it looks after elapsed and
// writes it as a standalone HTML document.
func writeSnapshot(path string, opts demo.Options, elapsed time.Duration, th *theme.Theme, logger *slog.Logger) error {
	sched := vdom.NewManualScheduler()
	tree := vdom.New(demo.ExampleApplication{Options: opts},
		vdom.WithScheduler(sched),
		vdom.WithTheme(th),
		vdom.WithLogger(logger))
	defer tree.Unmount()
	tree.Render()
	sched.Advance(elapsed)
	tree.SetRoot(demo.ExampleApplication{Elapsed: elapsed, Options: opts})
	root := tree.Render()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := dom.Render(f, root, th, "Sierpinski triangle"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return f.Close()
}
