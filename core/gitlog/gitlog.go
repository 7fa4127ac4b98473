// Package gitlog parses git log numstat output into commit records.
package gitlog

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

const (
	// headerPrefix marks commit header lines in the activity log format
	// (--SHA|author|date|subject).
	headerPrefix = "--"

	// headerFieldCount is the number of pipe-separated header fields. The
	// subject comes last so it may itself contain pipes.
	headerFieldCount = 4

	renameArrow = " => "
)

// Parse converts raw activity log output into commit records. Unparseable
// lines never fail the whole run: a bad header drops its block, a bad
// stat line marks the current commit as missing stats.
func Parse(out []byte) []schema.Commit {
	var commits []schema.Commit
	var cur *schema.Commit

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.Trim(line, " \t\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, headerPrefix) {
			c, ok := parseHeader(line)
			if !ok {
				slog.Debug("dropping malformed commit header", "line", line)
				cur = nil
				continue
			}
			commits = append(commits, c)
			cur = &commits[len(commits)-1]
			continue
		}

		if cur == nil {
			continue
		}
		fc, ok := parseStatLine(line)
		if !ok {
			cur.StatsMissing = true
			slog.Debug("dropping malformed stat line", "commit", cur.ShortSHA(), "line", line)
			continue
		}
		cur.Files = append(cur.Files, fc)
	}
	return commits
}

// parseHeader extracts one commit from a header line. The timestamp must
// be ISO8601; only the subject may be empty.
func parseHeader(line string) (schema.Commit, bool) {
	parts := strings.SplitN(line[len(headerPrefix):], "|", headerFieldCount)
	if len(parts) < headerFieldCount {
		return schema.Commit{}, false
	}
	ts, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return schema.Commit{}, false
	}
	return schema.Commit{
		SHA:       parts[0],
		Author:    parts[1],
		Timestamp: ts,
		Message:   parts[3],
	}, true
}

// parseStatLine extracts one file change from a numstat line of the form
// "added<TAB>deleted<TAB>path".
func parseStatLine(line string) (schema.FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return schema.FileChange{}, false
	}
	additions, ok := parseChurnValue(parts[0])
	if !ok {
		return schema.FileChange{}, false
	}
	deletions, ok := parseChurnValue(parts[1])
	if !ok {
		return schema.FileChange{}, false
	}
	path := resolvePath(strings.TrimSpace(parts[2]))
	if path == "" {
		return schema.FileChange{}, false
	}
	return schema.FileChange{Path: path, Additions: additions, Deletions: deletions}, true
}

// parseChurnValue converts one numstat count. Binary files report "-" for
// both counts and parse as zero.
func parseChurnValue(s string) (int, bool) {
	if s == "-" {
		return 0, true
	}
	val, err := strconv.Atoi(s)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// resolvePath maps rename notation to the file's new path. Plain paths
// pass through unchanged.
//
//	old.go => new.go            becomes new.go
//	src/{util => helpers}/x.go  becomes src/helpers/x.go
func resolvePath(p string) string {
	start := strings.Index(p, "{")
	if start == -1 {
		if idx := strings.Index(p, renameArrow); idx != -1 {
			return p[idx+len(renameArrow):]
		}
		return p
	}
	end := strings.Index(p, "}")
	if end == -1 || end < start {
		return ""
	}
	halves := strings.SplitN(p[start+1:end], renameArrow, 2)
	if len(halves) != 2 {
		return ""
	}
	// An empty half collapses to a double slash, e.g. src/{ => sub}/x.go.
	newPath := p[:start] + halves[1] + p[end+1:]
	return strings.ReplaceAll(newPath, "//", "/")
}
