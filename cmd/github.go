package cmd

import (
	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/spf13/cobra"
)

// githubCmd performs per-author analysis against a GitHub-hosted repository.
var githubCmd = &cobra.Command{
	Use:   "github <owner>/<repo>",
	Short: "Show the top contributors of a GitHub repository.",
	Long: `Fetch commit history from the GitHub API and rank authors by contribution.

No local clone is needed; commits and per-file stats come straight from
the API. Requests are rate limited and an API token is required: set
GITPULSE_GITHUB_TOKEN or GITHUB_TOKEN in the environment or a .env file.

Authors are identified by their GitHub login, so aliases defined in
.gitpulse.yaml should map logins rather than commit names. Commits whose
file stats cannot be fetched are skipped rather than half-counted.

Examples:
  # Analyze the default branch over the last 30 days
  gitpulse github golang/go

  # Analyze a release branch over the last quarter
  gitpulse github kubernetes/kubernetes --branch release-1.30 --days-back 90

  # Export findings to JSON
  gitpulse github golang/go --output json --output-file authors.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: hostedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGitHubAuthors(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run GitHub analysis", err)
		}
	},
}
