package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alvmarrod/wiki-hops/internal/config"
	"github.com/alvmarrod/wiki-hops/internal/fetcher"
	"github.com/alvmarrod/wiki-hops/internal/links"
	"github.com/alvmarrod/wiki-hops/internal/metrics"
	"github.com/alvmarrod/wiki-hops/internal/report"
	"github.com/alvmarrod/wiki-hops/internal/search"
	"github.com/alvmarrod/wiki-hops/internal/storage"
	"github.com/alvmarrod/wiki-hops/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runSearch(cmd *cobra.Command, opts *options, start string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}

	out := report.New(cmd.OutOrStdout(), cfg.SiteName, cfg.TargetURL)

	if err := cfg.ValidateStart(start); err != nil {
		logrus.Debugf("Rejected start URL: %v", err)
		out.InvalidStart(start)
		return &exitError{code: exitInvalidInput}
	}

	logrus.Infof("wikihops v%s: %s -> %s (max %d hops)", version.Version, start, cfg.TargetURL, cfg.MaxHops)

	tracker := metrics.NewTracker()
	run := &storage.Run{
		StartURL:  start,
		TargetURL: cfg.TargetURL,
		MaxHops:   cfg.MaxHops,
		StartedAt: time.Now(),
	}

	// the trivial case never touches the network
	if start == cfg.TargetURL {
		res := search.Result{Path: search.NewPath(start)}
		finish(cfg, run, tracker, res, storage.ReasonTrivial)
		out.Found(res.Path)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := newEngine(cfg, out, tracker)
	res, err := engine.Search(ctx, start)

	switch {
	case err != nil && ctx.Err() != nil:
		logrus.Infof("Search cancelled after exploring %d URLs", res.Explored)
		finish(cfg, run, tracker, res, storage.ReasonInterrupted)
		out.Interrupted()
		return &exitError{code: exitInterrupted}

	case err != nil:
		finish(cfg, run, tracker, res, storage.ReasonError)
		return fmt.Errorf("search failed: %w", err)

	case !res.Found():
		finish(cfg, run, tracker, res, storage.ReasonNotFound)
		out.Explored(res.Explored)
		out.NotFound(engine.MaxHops())
		return &exitError{code: exitNotFound}
	}

	finish(cfg, run, tracker, res, storage.ReasonFound)
	out.Explored(res.Explored)
	out.Found(res.Path)
	return nil
}

// newEngine wires the colly transport, retry policy, extractor and observers
func newEngine(cfg *config.Config, reporter search.Observer, tracker *metrics.Tracker) *search.Engine {
	transport := fetcher.NewCollyFetcher(cfg.RequestTimeout(), cfg.UserAgent)
	retrier := fetcher.NewRetrier(transport, fetcher.RetryPolicy{
		Attempts:    cfg.RetryAttempts,
		Delay:       cfg.RetryDelay(),
		MaxDelay:    cfg.RetryMaxDelay(),
		AcceptEmpty: cfg.AcceptEmptyBody,
	}).OnAttempt(tracker.RecordAttempt)

	extractor := links.NewExtractor(cfg.Origin, cfg.ArticlePrefix, cfg.Exclusions()...)

	return search.New(retrier, extractor, cfg.TargetURL,
		search.WithMaxHops(cfg.MaxHops),
		search.WithObserver(search.Observers(reporter, tracker)),
	)
}

// finish records the outcome in the metrics file and run database when configured.
// Failures are logged; they never change the search outcome.
func finish(cfg *config.Config, run *storage.Run, tracker *metrics.Tracker, res search.Result, reason string) {
	tracker.RecordResult(res)
	logrus.Info("Final stats: " + tracker.LogProgress())

	if cfg.MetricsPath != "" {
		if err := tracker.WriteToFile(cfg.MetricsPath, reason); err != nil {
			logrus.Errorf("Failed to write metrics: %v", err)
		} else {
			logrus.Infof("Metrics written to %s", cfg.MetricsPath)
		}
	}

	if cfg.DBPath == "" {
		return
	}

	run.Found = res.Found()
	run.Hops = res.Hops()
	run.Explored = res.Explored
	run.Path = res.Path.IDs()
	run.TerminationReason = reason
	run.FinishedAt = time.Now()

	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		logrus.Errorf("Failed to open run database: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(run); err != nil {
		logrus.Errorf("Failed to record run: %v", err)
		return
	}
	logrus.Infof("Run #%d recorded in %s", run.RunID, cfg.DBPath)
}
