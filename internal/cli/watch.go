package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/config"
	"github.com/aretw0/sceneflow/pkg/ports"
)

const (
	// settleDelay lets editors finish writing before the catalog is re-read.
	settleDelay = 100 * time.Millisecond

	// retryDelay is the pause before retrying a catalog that failed to load.
	retryDelay = 2 * time.Second
)

// RunWatch executes the installation in development mode: the flow restarts
// from the entry scene every time a scene file changes. A broken catalog is
// reported and retried instead of stopping the host.
func RunWatch(ctx context.Context, cfg config.Config, s *surfaces, out io.Writer) error {
	s.logger.Info("starting watcher", "catalog", cfg.Catalog)
	for {
		reload, err := runWatchIteration(ctx, cfg, s, out)
		if !reload {
			return err
		}
		s.logger.Info("watcher restarting")
	}
}

func runWatchIteration(ctx context.Context, cfg config.Config, s *surfaces, out io.Writer) (bool, error) {
	r, err := newRun(cfg, s)
	if err != nil {
		s.logger.Error("engine initialization failed", "err", err)
		select {
		case <-ctx.Done():
			return false, nil
		case <-s.quit:
			return false, nil
		case <-time.After(retryDelay):
			return true, nil
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloadCh := make(chan string, 1)
	events, err := r.Director().Engine().Watch(runCtx)
	if err != nil {
		s.logger.Warn("catalog cannot be watched, running without reload", "err", err)
	} else {
		go func() {
			select {
			case <-runCtx.Done():
			case event, ok := <-events:
				if !ok {
					return
				}
				time.Sleep(settleDelay)
				reloadCh <- event
				cancel()
			}
		}()
	}

	err = r.Run(runCtx)
	select {
	case event := <-reloadCh:
		printSystemMessage(out, "Change detected in '%s'.", event)
		return true, nil
	default:
		return false, err
	}
}

// Validate checks the catalog and prints a report to w. Unreachable scenes are
// warnings; configuration problems fail.
func Validate(cfg config.Config, logger *slog.Logger, w io.Writer) error {
	engine, err := OpenEngine(cfg, logger)
	if err != nil {
		return err
	}

	unreachable, err := engine.Unreachable()
	if err != nil {
		return err
	}
	for _, name := range unreachable {
		fmt.Fprintf(w, "warning: scene %q is unreachable from %q\n", name, engine.EntryScene())
	}
	fmt.Fprintln(w, "Catalog is valid! ✅")
	return nil
}

// ValidateWatch runs Validate now and on every change of the catalog until ctx is done.
func ValidateWatch(ctx context.Context, cfg config.Config, logger *slog.Logger, w io.Writer) error {
	catalog, err := sceneflow.OpenCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	watchable, ok := catalog.(ports.Watchable)
	if !ok {
		return fmt.Errorf("catalog %s cannot be watched", cfg.Catalog)
	}
	events, err := watchable.Watch(ctx)
	if err != nil {
		return err
	}

	report := func() {
		if err := Validate(cfg, logger, w); err != nil {
			fmt.Fprintf(w, "Validation failed: %v\n", err)
		}
	}

	report()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			time.Sleep(settleDelay)
			printSystemMessage(w, "Change detected in '%s'.", event)
			report()
		}
	}
}
