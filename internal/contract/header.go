package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogAnalysisHeader prints a concise, 2-line header for a local analysis
// run. Headers go to stderr so that piped table, CSV and JSON output stays
// machine-readable.
func LogAnalysisHeader(cfg *Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	// Line 1: the repository under analysis, pinned to its HEAD when known
	if cfg.RepoHash != "" {
		fmt.Fprintf(os.Stderr, "🔎 Repo: %s @ %.7s\n", repoName, cfg.RepoHash)
	} else {
		fmt.Fprintf(os.Stderr, "🔎 Repo: %s\n", repoName)
	}

	// Line 2: the actual date range being analyzed
	fmt.Fprintf(os.Stderr, "📅 Range: %s → %s\n",
		formatTimeBound(cfg.StartTime, "start of history"),
		formatTimeBound(cfg.EndTime, "now"))
}

// LogHostedHeader prints the header for a hosted repository run.
func LogHostedHeader(cfg *Config) {
	fmt.Fprintf(os.Stderr, "🔎 Repo: %s/%s (branch: %s)\n", cfg.Owner, cfg.Repo, cfg.Branch)
	fmt.Fprintf(os.Stderr, "📅 Range: %s → now (%d days back)\n",
		cfg.StartTime.Format(DateTimeFormat), cfg.DaysBack)
}

// formatTimeBound renders one side of the analysis window, substituting a
// placeholder for an unbounded side.
func formatTimeBound(t time.Time, unbounded string) string {
	if t.IsZero() {
		return unbounded
	}
	return t.Format(DateTimeFormat)
}
