// Package githost fetches commit history from the GitHub API for hosted
// repository analysis.
package githost

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"
)

const (
	// requestsPerSecond keeps the client well under the authenticated
	// REST quota even when every commit needs a detail lookup.
	requestsPerSecond = 5
	requestBurst      = 5
	pageSize          = 100
)

// ProgressFunc receives the running number of fetched commits.
type ProgressFunc func(fetched int)

// Client wraps the GitHub API client with rate limiting.
type Client struct {
	gh      *github.Client
	limiter *rate.Limiter
}

// NewClient creates a new GitHub client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{
		gh:      github.NewClient(nil).WithAuthToken(token),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// ResolveBranch returns the branch to analyze. An empty request resolves to
// the repository default branch; an unknown branch fails with the list of
// branches that do exist.
func (c *Client) ResolveBranch(ctx context.Context, owner, repo, requested string) (string, error) {
	if requested == "" {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
		r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return "", fmt.Errorf("fetch repository %s/%s: %w", owner, repo, err)
		}
		return r.GetDefaultBranch(), nil
	}

	names, err := c.listBranchNames(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("list branches for %s/%s: %w", owner, repo, err)
	}
	if slices.Contains(names, requested) {
		return requested, nil
	}
	return "", fmt.Errorf("branch %q not found in %s/%s. Available branches: %s",
		requested, owner, repo, strings.Join(names, ", "))
}

// FetchCommits retrieves commits on a branch since the given cutoff and
// converts them for aggregation. The listing endpoint carries no file stats,
// so each commit needs a detail lookup; commits without a linked author login
// skip that lookup since aggregation drops them anyway.
func (c *Client) FetchCommits(ctx context.Context, owner, repo, branch string, since time.Time, progress ProgressFunc) ([]schema.Commit, error) {
	opts := &github.CommitsListOptions{
		SHA:   branch,
		Since: since,
		ListOptions: github.ListOptions{
			PerPage: pageSize,
		},
	}

	var all []schema.Commit

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list commits for %s/%s: %w", owner, repo, err)
		}

		for _, rc := range commits {
			commit := convertCommit(rc)

			if commit.Author == "" {
				slog.Warn("commit has no linked author login", "sha", commit.ShortSHA())
				all = append(all, commit)
				if progress != nil {
					progress(len(all))
				}
				continue
			}

			detail, err := c.fetchDetail(ctx, owner, repo, commit.SHA)
			if err != nil {
				// Cancellation is fatal; an API hiccup only costs the stats.
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				slog.Debug("dropping file stats after detail fetch failure",
					"sha", commit.ShortSHA(), "error", err)
				commit.StatsMissing = true
			} else {
				commit.Files = convertFiles(detail.Files)
			}

			all = append(all, commit)
			if progress != nil {
				progress(len(all))
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (c *Client) fetchDetail(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	detail, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch commit %s: %w", sha, err)
	}
	return detail, nil
}

func (c *Client) listBranchNames(ctx context.Context, owner, repo string) ([]string, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	var names []string
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		branches, resp, err := c.gh.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			names = append(names, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// convertCommit maps the listing payload onto the shared commit model. The
// author is the platform login, not the raw commit name, so aliases keyed on
// logins behave the same as on local names. Only the subject line is kept,
// matching what the local log format emits.
func convertCommit(rc *github.RepositoryCommit) schema.Commit {
	return schema.Commit{
		SHA:       rc.GetSHA(),
		Author:    rc.GetAuthor().GetLogin(),
		Timestamp: rc.GetCommit().GetAuthor().GetDate().Time,
		Message:   subjectLine(rc.GetCommit().GetMessage()),
	}
}

// subjectLine returns the first line of a full commit message.
func subjectLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimRight(message, "\r")
}

func convertFiles(files []*github.CommitFile) []schema.FileChange {
	changes := make([]schema.FileChange, 0, len(files))
	for _, f := range files {
		changes = append(changes, schema.FileChange{
			Path:      f.GetFilename(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
		})
	}
	return changes
}
