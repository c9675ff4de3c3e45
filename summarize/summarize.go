// Package summarize classifies decoded resource changes and reduces
// them to per-account add/change/destroy counts.
package summarize

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mkarlsen/plansum/planfile"
	"github.com/mkarlsen/plansum/scanner"
	"github.com/mkarlsen/plansum/types"
)

// ChangeClass buckets a resource change for counting
type ChangeClass int

const (
	ClassIgnore ChangeClass = iota
	ClassAdd
	ClassChange
	ClassDestroy
	ClassReplace
)

// Classify maps a change's action list to exactly one class.
// A replacement (delete and create together, either order) classifies
// as Replace: the plan really destroys one instance and creates
// another, so it counts toward both Add and Destroy. No-op, read,
// empty, and unknown action sets are ignored.
func Classify(rc types.ResourceChange) ChangeClass {
	var create, del, update bool
	for _, a := range rc.Actions {
		switch a {
		case types.ActionCreate:
			create = true
		case types.ActionDelete:
			del = true
		case types.ActionUpdate:
			update = true
		}
	}

	switch {
	case create && del:
		return ClassReplace
	case del:
		return ClassDestroy
	case create:
		return ClassAdd
	case update:
		return ClassChange
	default:
		return ClassIgnore
	}
}

// Aggregate reduces one account's changes to its summary counts
func Aggregate(account string, changes []types.ResourceChange) types.AccountSummary {
	summary := types.AccountSummary{Account: account}
	for _, rc := range changes {
		switch Classify(rc) {
		case ClassAdd:
			summary.Add++
		case ClassChange:
			summary.Change++
		case ClassDestroy:
			summary.Destroy++
		case ClassReplace:
			summary.Add++
			summary.Destroy++
		}
	}
	return summary
}

// BuildReport collects account rows into a report sorted by account
// name, independent of discovery order
func BuildReport(rows []types.AccountSummary) types.Report {
	out := make([]types.AccountSummary, len(rows))
	copy(out, rows)
	report := types.Report{Rows: out}
	report.Sort()
	return report
}

// Runner decodes and aggregates plan artifacts account by account
type Runner struct {
	logger      zerolog.Logger
	parallelism int
	warnDrift   bool
}

// NewRunner creates a runner. Parallelism <= 0 means unbounded.
func NewRunner(logger zerolog.Logger, parallelism int, warnDrift bool) *Runner {
	return &Runner{
		logger:      logger,
		parallelism: parallelism,
		warnDrift:   warnDrift,
	}
}

// Run summarizes every target and merges the rows into a sorted
// report. Each target is independent: one task per artifact, each
// writing to its own result slot. A target that fails to decode gets
// an error row and never stops its siblings.
func (r *Runner) Run(ctx context.Context, targets []scanner.Target) types.Report {
	rows := make([]types.AccountSummary, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			rows[i] = r.summarizeTarget(ctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return BuildReport(rows)
}

// summarizeTarget reads, validates, and aggregates one artifact
func (r *Runner) summarizeTarget(ctx context.Context, target scanner.Target) types.AccountSummary {
	if err := ctx.Err(); err != nil {
		return types.AccountSummary{Account: target.Account, Err: err.Error()}
	}
	if target.Err != nil {
		r.logger.Error().Err(target.Err).Str("account", target.Account).Msg("account skipped")
		return types.AccountSummary{Account: target.Account, Err: target.Err.Error()}
	}

	plan, err := planfile.Read(target.Path)
	if err != nil {
		r.logger.Error().Err(err).Str("account", target.Account).Msg("plan artifact unreadable")
		return types.AccountSummary{Account: target.Account, Err: err.Error()}
	}
	if err := plan.Validate(); err != nil {
		r.logger.Error().Err(err).Str("account", target.Account).Msg("plan artifact rejected")
		return types.AccountSummary{Account: target.Account, Err: err.Error()}
	}

	summary := Aggregate(target.Account, plan.Changes)

	if r.warnDrift {
		r.checkDrift(target.Account, plan.Drift)
	}

	r.logger.Debug().
		Str("account", target.Account).
		Int("add", summary.Add).
		Int("change", summary.Change).
		Int("destroy", summary.Destroy).
		Msg("account summarized")

	return summary
}

// checkDrift warns when the plan recorded drift against the last
// applied state. Drift may not result in a change, but reviewers
// should know the account diverged.
func (r *Runner) checkDrift(account string, drift []types.ResourceChange) {
	summary := Aggregate(account, drift)
	if !summary.HasChanges() {
		return
	}
	r.logger.Warn().
		Str("account", account).
		Int("add", summary.Add).
		Int("change", summary.Change).
		Int("destroy", summary.Destroy).
		Msg("drift detected, might not result in change")
}
