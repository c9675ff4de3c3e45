package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mkarlsen/plansum/config"
	"github.com/mkarlsen/plansum/history"
	"github.com/mkarlsen/plansum/report"
	"github.com/mkarlsen/plansum/scanner"
	"github.com/mkarlsen/plansum/summarize"
	"github.com/mkarlsen/plansum/types"
)

// SummarizeCommand implements the 'plansum summarize' command
type SummarizeCommand struct {
	Root       string
	PlanFile   string
	Output     string
	ConfigPath string
	HistoryDB  string
	Jobs       int
	NoDrift    bool
}

// Run executes the summarize command
func (cmd *SummarizeCommand) Run(ctx context.Context) error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	log.Info().Str("root", cfg.Root).Str("plan_file", cfg.PlanFile).Msg("looking for plan artifacts")

	targets, err := scanner.Discover(cfg.Root, cfg.PlanFile)
	if err != nil {
		return err
	}

	runner := summarize.NewRunner(log.Logger, cfg.Parallelism, cfg.WarnDrift)
	rep := runner.Run(ctx, targets)

	report.Render(os.Stdout, rep)

	if len(rep.Rows) == 0 {
		log.Warn().Msg("no plan artifacts found, nothing summarized")
		return nil
	}

	if err := report.WriteMarkdown(cfg.Output, rep); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output).Msg("markdown summary written")

	if cfg.HistoryDB != "" {
		cmd.recordHistory(cfg.HistoryDB, rep)
	}

	if n := rep.FailureCount(); n > 0 {
		log.Warn().Int("accounts", n).Msg("some plan artifacts could not be decoded")
	}

	return nil
}

// loadConfig merges defaults, the optional config file, and flags.
// Flags win over the file.
func (cmd *SummarizeCommand) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if cmd.ConfigPath != "" {
		loaded, err := config.LoadConfig(cmd.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Root != "" {
		cfg.Root = cmd.Root
	}
	if cmd.PlanFile != "" {
		cfg.PlanFile = cmd.PlanFile
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}
	if cmd.HistoryDB != "" {
		cfg.HistoryDB = cmd.HistoryDB
	}
	if cmd.Jobs > 0 {
		cfg.Parallelism = cmd.Jobs
	}
	if cmd.NoDrift {
		cfg.WarnDrift = false
	}

	return cfg, nil
}

// recordHistory appends the report to the history database. History
// is best-effort; a failure here never fails the run.
func (cmd *SummarizeCommand) recordHistory(path string, rep types.Report) {
	store, err := history.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to open history database")
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(rep); err != nil {
		log.Warn().Err(err).Msg("failed to record run")
	}
}
