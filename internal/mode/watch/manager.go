// Package watch runs the directory observer: a watcher publishing the directory content, and a printer or a terminal
// browser consuming it, all owned by one event loop.
package watch

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	promcollectors "github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nginx/state-observer/internal/dirwatch"
	"github.com/nginx/state-observer/internal/framework/events"
	"github.com/nginx/state-observer/internal/framework/runnables"
	"github.com/nginx/state-observer/internal/mode/watch/config"
	"github.com/nginx/state-observer/internal/mode/watch/metrics"
	"github.com/nginx/state-observer/internal/mode/watch/metrics/collectors"
	"github.com/nginx/state-observer/internal/printer"
	"github.com/nginx/state-observer/internal/style"
	"github.com/nginx/state-observer/internal/tui"
	"github.com/nginx/state-observer/pkg/observer"
)

// StartManager watches cfg.Dir and shows its content until the ctx is closed or, with the TUI, the user quits.
func StartManager(ctx context.Context, cfg config.Config) error {
	var recorder observer.Recorder
	var rs []runnables.Runnable

	if cfg.MetricsConfig.Enabled {
		registry := prometheus.NewRegistry()
		collector := collectors.NewSubjectCollector(map[string]string{"version": cfg.Version})

		if err := registry.Register(collector); err != nil {
			return fmt.Errorf("cannot register subject metrics: %w", err)
		}
		if err := registry.Register(promcollectors.NewGoCollector()); err != nil {
			return fmt.Errorf("cannot register go metrics: %w", err)
		}

		recorder = collector
		rs = append(rs, metrics.NewServer(cfg.MetricsConfig.Port, registry, cfg.Logger.WithName("metrics")))
	}

	obsCtx := observer.NewContext(cfg.Logger.WithName("observer"), recorder)
	subjectOptions := []observer.Option{observer.WithContext(obsCtx)}

	loop := events.NewLoop(cfg.Logger.WithName("eventLoop"))

	watcher := dirwatch.NewWatcher(dirwatch.Config{
		Poster:         loop,
		Logger:         cfg.Logger.WithName("dirwatch"),
		Dir:            cfg.Dir,
		Period:         cfg.Period,
		SubjectOptions: append(subjectOptions, observer.WithName("files")),
		ShowHidden:     cfg.ShowHidden,
	})

	rs = append(rs, loop, watcher)

	// The subjects and their consumers are created before the loop starts, so that the loop's goroutine
	// is their only user once it runs.
	var out runnables.Runnable

	switch cfg.Output {
	case config.OutputTUI:
		model, err := style.NewModel(cfg.Palette, subjectOptions...)
		if err != nil {
			return err
		}
		defer model.Close()

		out = newBrowserRunnable(cfg, loop, watcher.Files(), model)
	default:
		p, err := printer.New(watcher.Files(), cfg.Out, printer.Format(cfg.Output), cfg.Logger.WithName("printer"))
		if err != nil {
			return err
		}
		defer p.Close()
	}

	if out != nil {
		rs = append(rs, out)
	}

	cfg.Logger.Info("Watching directory", "dir", cfg.Dir, "period", cfg.Period, "output", cfg.Output)

	if err := runnables.Run(ctx, rs...); err != nil {
		return err
	}

	cfg.Logger.Info("Stopped watching directory", "dir", cfg.Dir)
	return nil
}

// newBrowserRunnable runs the terminal browser. Returning stops the others, so quitting the browser stops the
// manager.
func newBrowserRunnable(
	cfg config.Config,
	loop *events.Loop,
	files *observer.MapSubject[string, dirwatch.FileInfo],
	model *style.Model,
) runnables.Runnable {
	return runnables.RunnableFunc(func(ctx context.Context) error {
		logger := cfg.Logger.WithName("tui")

		nextPalette := func() {
			if err := loop.Post(ctx, model.NextPalette); err != nil {
				logger.V(1).Info("Dropped palette change", "reason", err.Error())
			}
		}

		program := tea.NewProgram(
			tui.NewBrowser(cfg.Dir, nextPalette),
			tea.WithContext(ctx),
			tea.WithAltScreen(),
		)

		// Bind sends the current state right away, which blocks until the program runs.
		var binding *tui.Binding
		bound := make(chan error, 1)
		go func() {
			bound <- loop.Do(ctx, func() {
				binding = tui.Bind(program, files, model.Style())
			})
		}()

		_, err := program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("terminal browser failed: %w", err)
		}

		if bindErr := <-bound; bindErr != nil {
			// the ctx is closed and the loop is stopping
			return nil //nolint:nilerr
		}

		if err := loop.Do(ctx, binding.Close); err != nil {
			logger.V(1).Info("Did not release the browser binding", "reason", err.Error())
		}

		return nil
	})
}
