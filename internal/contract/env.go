package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// envSearchDepth bounds the upward .env search so deeply nested working
// directories do not walk the whole filesystem.
const envSearchDepth = 5

// GitHubTokenEnvs lists the environment variables consulted for the
// GitHub API token, in priority order.
var GitHubTokenEnvs = []string{"GITPULSE_GITHUB_TOKEN", "GITHUB_TOKEN"}

// LoadDotEnv loads environment variables from the nearest .env file,
// searching upward from the working directory. Variables already set in
// the environment keep their values. Missing files are fine.
func LoadDotEnv() {
	path := findEnvFile()
	if path == "" {
		return
	}
	_ = godotenv.Load(path)
}

// findEnvFile walks up from the working directory looking for a .env file.
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for range envSearchDepth {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// GitHubToken returns the configured GitHub API token, or an error with
// setup guidance when none is set.
func GitHubToken() (string, error) {
	LoadDotEnv()
	for _, key := range GitHubTokenEnvs {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("no GitHub token found. Set %s in the environment or a .env file", strings.Join(GitHubTokenEnvs, " or "))
}
