// Package schema has models and shared constants for all parts of gitpulse.
package schema

import "time"

// FileChange is one changed file within a commit, with per-file line
// counts as reported by the commit source.
type FileChange struct {
	Path      string // Path relative to the repository root
	Additions int    // Lines added to this file
	Deletions int    // Lines deleted from this file
}

// Commit is a single commit record produced by a commit source. Records
// are immutable once fetched; alias normalization and window filtering
// happen later, inside the aggregation pass.
type Commit struct {
	SHA          string       // Full commit hash
	Author       string       // Raw committer name (local) or platform login (hosted)
	Timestamp    time.Time    // Author timestamp, retaining its original UTC offset
	Message      string       // Commit subject, used for intent classification
	Files        []FileChange // Per-file stats; untrustworthy when StatsMissing is set
	StatsMissing bool         // File-level stats could not be fully extracted
}

// ShortSHA returns the truncated commit identifier used in log lines.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 8 {
		return c.SHA[:8]
	}
	return c.SHA
}
