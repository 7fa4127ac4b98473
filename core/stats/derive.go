package stats

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/gitpulse/gitpulse/core/streak"
	"github.com/gitpulse/gitpulse/schema"
)

// Finalize derives the per-author metrics and returns the ranked result.
// The aggregator can keep folding afterwards, but callers normally treat
// Finalize as the end of the pass.
func (a *Aggregator) Finalize() *schema.AnalysisResult {
	total := a.report.Analyzed()

	authors := make([]schema.AuthorStats, 0, len(a.accs))
	totalAdditions, totalDeletions := 0, 0
	for name, acc := range a.accs {
		authors = append(authors, deriveAuthor(name, acc, total, a.opts.Now))
		totalAdditions += acc.additions
		totalDeletions += acc.deletions
	}
	Rank(authors)

	return &schema.AnalysisResult{
		Authors:        authors,
		TotalCommits:   total,
		TotalAuthors:   len(authors),
		TotalAdditions: totalAdditions,
		TotalDeletions: totalDeletions,
		Report:         a.report,
	}
}

// deriveAuthor computes every AuthorStats field from one accumulator.
// Ratio denominators of zero yield zero rather than NaN.
func deriveAuthor(name string, acc *accumulator, totalCommits int, now time.Time) schema.AuthorStats {
	s := schema.AuthorStats{
		Author:          name,
		Commits:         acc.commits,
		FilesChanged:    acc.files,
		Additions:       acc.additions,
		Deletions:       acc.deletions,
		NetLines:        acc.additions - acc.deletions,
		CodeChurn:       acc.additions + acc.deletions,
		TestChanges:     acc.testChanges,
		DocChanges:      acc.docChanges,
		CodeChanges:     acc.codeChanges,
		FixCommits:      acc.fixCommits,
		RefactorCommits: acc.refactorCommits,
		FeatureCommits:  acc.featureCommits,
		PRCommits:       acc.prCommits,
		AtomicCommits:   acc.atomicCommits,
	}

	if totalCommits > 0 {
		s.CommitPercentage = float64(acc.commits) / float64(totalCommits) * 100
	}
	if acc.commits > 0 {
		n := float64(acc.commits)
		s.AvgFilesPerCommit = float64(acc.files) / n
		s.AvgLinesPerCommit = float64(s.CodeChurn) / n
		s.FixRatio = float64(acc.fixCommits) / n
		s.RefactorRatio = float64(acc.refactorCommits) / n
		s.FeatureRatio = float64(acc.featureCommits) / n
		s.PRRatio = float64(acc.prCommits) / n
		s.AtomicCommitRatio = float64(acc.atomicCommits) / n
	}
	if s.CodeChurn > 0 {
		s.ImpactRatio = float64(s.NetLines) / float64(s.CodeChurn)
	}
	if acc.additions > 0 {
		s.TestRatio = float64(acc.testChanges) / float64(acc.additions)
		s.DocRatio = float64(acc.docChanges) / float64(acc.additions)
	}

	s.MedianCommitSize = median(acc.sizes)
	s.MeanCommitSize = mean(acc.sizes)
	s.StdevCommitSize = stdev(acc.sizes)

	s.LongestStreak, s.CurrentStreak = streak.Calculate(acc.timestamps, now)
	s.ActiveDays = len(acc.days)
	if s.ActiveDays > 0 {
		s.CommitsPerActiveDay = float64(acc.commits) / float64(s.ActiveDays)
	}
	s.ActiveWeeks = len(acc.weeks)
	s.MostActiveDay = peakWeekday(acc.weekdays)
	s.PeakHour = peakHour(acc.hours)

	s.FileTypes = lo.Keys(acc.extensions)
	slices.Sort(s.FileTypes)

	return s
}

// peakWeekday returns the name of the weekday with the most commits.
// Ties resolve to the earlier weekday, Sunday first, so results do not
// depend on input order.
func peakWeekday(counts [7]int) string {
	best, bestCount := -1, 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return ""
	}
	return time.Weekday(best).String()
}

// peakHour returns the hour of day with the most commits, with ties
// resolving to the smaller hour.
func peakHour(counts [24]int) int {
	best, bestCount := 0, 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	return best
}
