// Package classify derives per-commit contribution signals from file
// paths and commit messages.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// Bucket identifies which change bucket a file path falls into.
type Bucket int

// All change buckets supported.
const (
	CodeBucket Bucket = iota // default
	TestBucket
	DocBucket
)

// Rules carries the keyword sets, atomic size threshold and path excludes
// that drive classification. The zero value is unusable on its own; it is
// filled with the stock values on first use.
type Rules struct {
	FixKeywords      []string
	RefactorKeywords []string
	FeatureKeywords  []string
	PRKeywords       []string
	AtomicThreshold  int
	Excludes         []string
}

// DefaultRules returns the stock classification rules.
func DefaultRules() Rules {
	return Rules{}.Normalized()
}

// Normalized fills unset rule fields with the stock values and leaves
// everything else untouched.
func (r Rules) Normalized() Rules {
	if r.FixKeywords == nil {
		r.FixKeywords = schema.DefaultFixKeywords
	}
	if r.RefactorKeywords == nil {
		r.RefactorKeywords = schema.DefaultRefactorKeywords
	}
	if r.FeatureKeywords == nil {
		r.FeatureKeywords = schema.DefaultFeatureKeywords
	}
	if r.PRKeywords == nil {
		r.PRKeywords = schema.DefaultPRKeywords
	}
	if r.AtomicThreshold <= 0 {
		r.AtomicThreshold = schema.DefaultAtomicThreshold
	}
	return r
}

// Signals is the classification bundle for one commit, ready to merge
// into an author accumulator. Line counts cover only files that survived
// the exclude filter.
type Signals struct {
	Files      int
	Additions  int
	Deletions  int
	Size       int // Additions plus deletions across all counted files
	Extensions []string

	TestChanges int
	DocChanges  int
	CodeChanges int

	IsFix      bool
	IsRefactor bool
	IsFeature  bool
	IsPR       bool
}

// FileBucket classifies one file path. Test markers win over doc markers,
// so "docs/test_plan.md" lands in the test bucket; everything without a
// marker is code.
func FileBucket(path string) Bucket {
	lower := strings.ToLower(path)
	if strings.Contains(lower, "test") {
		return TestBucket
	}
	if strings.Contains(lower, "doc") || strings.Contains(lower, "readme") || strings.Contains(lower, ".md") {
		return DocBucket
	}
	return CodeBucket
}

// matchesAny reports whether the lowercased message contains any of the
// given keywords.
func matchesAny(lowerMessage string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lowerMessage, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Commit classifies a single commit against the given rules. Excluded
// paths contribute nothing, not even to the file count.
func Commit(c schema.Commit, rules Rules) Signals {
	rules = rules.Normalized()

	var sig Signals
	for _, f := range c.Files {
		if contract.ShouldIgnore(f.Path, rules.Excludes) {
			continue
		}
		churn := f.Additions + f.Deletions
		sig.Files++
		sig.Additions += f.Additions
		sig.Deletions += f.Deletions
		sig.Size += churn

		switch FileBucket(f.Path) {
		case TestBucket:
			sig.TestChanges += churn
		case DocBucket:
			sig.DocChanges += churn
		default:
			sig.CodeChanges += churn
		}

		if ext := strings.ToLower(filepath.Ext(f.Path)); ext != "" {
			sig.Extensions = append(sig.Extensions, ext)
		}
	}

	lower := strings.ToLower(c.Message)
	sig.IsFix = matchesAny(lower, rules.FixKeywords)
	sig.IsRefactor = matchesAny(lower, rules.RefactorKeywords)
	sig.IsFeature = matchesAny(lower, rules.FeatureKeywords)
	sig.IsPR = matchesAny(lower, rules.PRKeywords)

	return sig
}
