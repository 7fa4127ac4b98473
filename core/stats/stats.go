// Package stats folds commit records into per-author aggregates and
// derives the contribution metrics from them.
package stats

import (
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/core/classify"
	"github.com/gitpulse/gitpulse/core/streak"
	"github.com/gitpulse/gitpulse/schema"
)

// Options configures one aggregation pass.
type Options struct {
	// Aliases maps raw author names to canonical identities. Lookups
	// happen before any other processing, so skip decisions and window
	// checks always see the canonical name.
	Aliases map[string]string

	// Start and End bound the analysis window. A zero value leaves the
	// corresponding side unbounded. Both bounds are inclusive instants;
	// date-level semantics such as end-of-day are the caller's job.
	Start time.Time
	End   time.Time

	// Rules drive the per-commit classifier.
	Rules classify.Rules

	// Now anchors current-streak evaluation. Zero means time.Now.
	Now time.Time

	// RequireStats skips commits whose file stats are missing instead of
	// counting them with commit-level metrics only.
	RequireStats bool
}

// accumulator is the mutable per-author state owned by one pass.
type accumulator struct {
	commits   int
	files     int
	additions int
	deletions int

	testChanges int
	docChanges  int
	codeChanges int

	fixCommits      int
	refactorCommits int
	featureCommits  int
	prCommits       int
	atomicCommits   int

	sizes      []int
	timestamps []time.Time
	days       map[time.Time]struct{}
	weeks      map[int]struct{}
	extensions map[string]struct{}
	weekdays   [7]int
	hours      [24]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		days:       make(map[time.Time]struct{}),
		weeks:      make(map[int]struct{}),
		extensions: make(map[string]struct{}),
	}
}

// Aggregator folds commit records into per-author accumulators.
// Processing is strictly sequential and accumulators are created lazily,
// one per canonical author, on that author's first commit.
type Aggregator struct {
	opts   Options
	accs   map[string]*accumulator
	report schema.ProcessingReport
}

// New creates an aggregator for one analysis pass.
func New(opts Options) *Aggregator {
	opts.Rules = opts.Rules.Normalized()
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Aggregator{
		opts: opts,
		accs: make(map[string]*accumulator),
	}
}

// Fold processes a single commit, records its outcome in the processing
// report and returns it.
func (a *Aggregator) Fold(c schema.Commit) schema.Outcome {
	outcome := a.fold(c)
	a.report.Observe(outcome)
	return outcome
}

// FoldAll processes a full commit sequence in order.
func (a *Aggregator) FoldAll(commits []schema.Commit) {
	for _, c := range commits {
		a.Fold(c)
	}
}

func (a *Aggregator) fold(c schema.Commit) schema.Outcome {
	author := strings.TrimSpace(c.Author)
	if canonical, ok := a.opts.Aliases[author]; ok {
		author = canonical
	}
	if author == "" {
		return schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonMissingAuthor}
	}
	if !a.opts.Start.IsZero() && c.Timestamp.Before(a.opts.Start) {
		return schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonOutsideWindow}
	}
	if !a.opts.End.IsZero() && c.Timestamp.After(a.opts.End) {
		return schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonOutsideWindow}
	}
	if c.StatsMissing && a.opts.RequireStats {
		return schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonMissingStats}
	}

	acc, ok := a.accs[author]
	if !ok {
		acc = newAccumulator()
		a.accs[author] = acc
	}

	acc.commits++
	acc.timestamps = append(acc.timestamps, c.Timestamp)
	acc.days[streak.Day(c.Timestamp)] = struct{}{}
	_, week := c.Timestamp.ISOWeek()
	acc.weeks[week] = struct{}{}
	acc.weekdays[int(c.Timestamp.Weekday())]++
	acc.hours[c.Timestamp.Hour()]++

	sig := classify.Commit(c, a.opts.Rules)
	if sig.IsFix {
		acc.fixCommits++
	}
	if sig.IsRefactor {
		acc.refactorCommits++
	}
	if sig.IsFeature {
		acc.featureCommits++
	}
	if sig.IsPR {
		acc.prCommits++
	}

	if c.StatsMissing {
		// Commit-level metrics only; the file list is untrustworthy.
		return schema.Outcome{Status: schema.OutcomePartial, Reason: schema.ReasonMissingStats}
	}

	acc.files += sig.Files
	acc.additions += sig.Additions
	acc.deletions += sig.Deletions
	acc.testChanges += sig.TestChanges
	acc.docChanges += sig.DocChanges
	acc.codeChanges += sig.CodeChanges
	acc.sizes = append(acc.sizes, sig.Size)
	if sig.Size <= a.opts.Rules.AtomicThreshold {
		acc.atomicCommits++
	}
	for _, ext := range sig.Extensions {
		acc.extensions[ext] = struct{}{}
	}

	return schema.Outcome{Status: schema.OutcomeCounted}
}

// Report returns a copy of the processing report so far.
func (a *Aggregator) Report() schema.ProcessingReport {
	return a.report
}
