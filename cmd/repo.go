package cmd

import (
	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/spf13/cobra"
)

// repoCmd performs per-author analysis against a local repository.
var repoCmd = &cobra.Command{
	Use:   "repo [repo-path]",
	Short: "Show the top contributors of a local repository.",
	Long: `Perform deep Git analysis and rank authors by contribution.

Walks the commit history of a local clone to compute per-author metrics,
helping you:
- See who carries the bulk of the work and who drops by occasionally
- Understand each author's mix of code, test and documentation changes
- Spot bug-fix heavy contributors versus feature builders
- Measure commit discipline through atomic commit ratios and sizes
- Follow activity rhythms: streaks, active days and peak hours

Authors are ranked by commit count and labeled by their share of the
analyzed commits.

Examples:
  # Analyze the repository in the current directory
  gitpulse repo

  # Analyze the last six months of another clone
  gitpulse repo ~/src/linux --start "6 months ago"

  # Show everything the analysis knows about each author
  gitpulse repo --detail --limit 10

  # Export findings to CSV for tracking
  gitpulse repo --output csv --output-file authors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRepoAuthors(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run author analysis", err)
		}
	},
}
