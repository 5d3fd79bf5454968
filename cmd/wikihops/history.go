package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/alvmarrod/wiki-hops/internal/report"
	"github.com/alvmarrod/wiki-hops/internal/storage"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches recorded in the run database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *options, limit int) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return errors.New("no run database configured: pass --db or set db_path")
	}
	if limit < 1 {
		return fmt.Errorf("limit must be >= 1, got %d", limit)
	}

	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "#%d  %s  %s -> %s  [%s]\n",
			run.RunID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			report.ArticleName(run.StartURL),
			report.ArticleName(run.TargetURL),
			run.TerminationReason,
		)
		if run.Found {
			fmt.Fprintf(out, "    %d hops, %d URLs explored in %s\n", run.Hops, run.Explored, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
			for _, url := range run.Path {
				fmt.Fprintf(out, "    %s\n", url)
			}
		} else {
			fmt.Fprintf(out, "    no path, %d URLs explored (limit %d hops)\n", run.Explored, run.MaxHops)
		}
	}
	return nil
}
