// wikihops finds how many article links separate a Wikipedia page from
// Philosophy, by breadth-first search over the article link graph.
//
// Usage:
//
//	wikihops https://en.wikipedia.org/wiki/Kevin_Bacon
//	wikihops --config wikihops.json --db runs.db https://en.wikipedia.org/wiki/Plato
//	wikihops history --db runs.db
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alvmarrod/wiki-hops/internal/config"
	"github.com/alvmarrod/wiki-hops/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	exitNotFound     = 1
	exitInvalidInput = 2
	exitInterrupted  = 130
)

// exitError carries a process exit status for outcomes already reported on stdout
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// options holds flag values; only flags set on the command line override the config file
type options struct {
	configPath  string
	maxHops     int
	target      string
	retries     int
	acceptEmpty bool
	dbPath      string
	metricsPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wikihops <start-url>",
		Short: "Find a hop path from a Wikipedia article to Philosophy",
		Long: `Follows article links breadth-first from the given page until the target
article (Philosophy by default) is reached, printing per-hop statistics and
the shortest path found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON config file")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database recording run history")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.IntVar(&opts.maxHops, "max-hops", 0, "Maximum number of hops to explore (default 100)")
	f.StringVar(&opts.target, "target", "", "Target article URL")
	f.IntVar(&opts.retries, "retries", 0, "Attempts per page before giving up, 0 retries forever")
	f.BoolVar(&opts.acceptEmpty, "accept-empty", false, "Treat empty pages as pages without links instead of retrying")
	f.StringVar(&opts.metricsPath, "metrics", "", "Write run metrics as JSON to this file")

	cmd.AddCommand(newHistoryCmd(opts))
	return cmd
}

// loadConfig reads the config file if given and applies explicitly set flags
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("max-hops") {
		cfg.MaxHops = opts.maxHops
	}
	if flags.Changed("target") {
		cfg.TargetURL = opts.target
	}
	if flags.Changed("retries") {
		cfg.RetryAttempts = opts.retries
	}
	if flags.Changed("accept-empty") {
		cfg.AcceptEmptyBody = opts.acceptEmpty
	}
	if flags.Changed("metrics") {
		cfg.MetricsPath = opts.metricsPath
	}
	if flags.Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(out io.Writer, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
