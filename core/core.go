// Package core has the top-level entry points that tie commit sources,
// aggregation and output writers together.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/core/classify"
	"github.com/gitpulse/gitpulse/core/gitlog"
	"github.com/gitpulse/gitpulse/core/stats"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/githost"
	"github.com/gitpulse/gitpulse/internal/outwriter"
	"github.com/gitpulse/gitpulse/internal/ui"
	"github.com/gitpulse/gitpulse/schema"
)

// ExecuteRepoAuthors runs the per-author analysis against a local repository
// and prints the ranked results. It serves as the main entry point for the
// 'repo' mode.
func ExecuteRepoAuthors(ctx context.Context, cfg *contract.Config) error {
	return executeRepoAuthors(ctx, cfg, contract.NewLocalGitClient())
}

// executeRepoAuthors is the injectable core of ExecuteRepoAuthors, so tests
// can run against a mock client instead of a git binary.
func executeRepoAuthors(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	start := time.Now()

	// The hash only decorates the header; an unreadable HEAD surfaces as a
	// log fetch error right after.
	if hash, hashErr := client.GetRepoHash(ctx, cfg.RepoPath); hashErr == nil {
		cfg.RepoHash = hash
	}

	contract.LogAnalysisHeader(cfg)

	out, err := client.GetCommitLog(ctx, cfg.RepoPath, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return err
	}
	commits := gitlog.Parse(out)

	// Local history legitimately carries commits whose stat block cannot be
	// parsed; they still count with commit-level metrics only.
	result := aggregate(commits, cfg, time.Now(), false)
	result.Authors = stats.Top(result.Authors, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.WriteAuthorResults(result, cfg, duration)
}

// ExecuteGitHubAuthors runs the per-author analysis against a GitHub-hosted
// repository. It serves as the main entry point for the 'github' mode.
func ExecuteGitHubAuthors(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	token, err := contract.GitHubToken()
	if err != nil {
		return err
	}
	client := githost.NewClient(token)

	branch, err := client.ResolveBranch(ctx, cfg.Owner, cfg.Repo, cfg.Branch)
	if err != nil {
		return err
	}
	cfg.Branch = branch

	contract.LogHostedHeader(cfg)

	sp := ui.NewSpinner("Fetching commits...")
	sp.Start()
	commits, err := client.FetchCommits(ctx, cfg.Owner, cfg.Repo, branch, cfg.StartTime, func(fetched int) {
		sp.UpdateMessage(fmt.Sprintf("Fetching commits... %d", fetched))
	})
	sp.Stop()
	if err != nil {
		return err
	}

	// API commits whose detail fetch failed carry no trustworthy stats, so
	// they are skipped outright instead of half-counted.
	result := aggregate(commits, cfg, time.Now(), true)
	result.Authors = stats.Top(result.Authors, cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.WriteAuthorResults(result, cfg, duration)
}

// aggregate folds the commit stream with the configured classification rules
// and derives the final per-author metrics.
func aggregate(commits []schema.Commit, cfg *contract.Config, now time.Time, requireStats bool) *schema.AnalysisResult {
	agg := stats.New(stats.Options{
		Aliases: cfg.Aliases,
		Start:   cfg.StartTime,
		End:     cfg.EndTime,
		Rules: classify.Rules{
			FixKeywords:      cfg.FixKeywords,
			RefactorKeywords: cfg.RefactorKeywords,
			FeatureKeywords:  cfg.FeatureKeywords,
			PRKeywords:       cfg.PRKeywords,
			AtomicThreshold:  cfg.AtomicThreshold,
			Excludes:         cfg.Excludes,
		},
		Now:          now,
		RequireStats: requireStats,
	})
	agg.FoldAll(commits)
	return agg.Finalize()
}
