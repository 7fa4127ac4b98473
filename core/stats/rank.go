package stats

import (
	"sort"

	"github.com/gitpulse/gitpulse/schema"
)

// Rank sorts authors by commit count in descending order. Authors with
// equal commit counts sort by canonical name so the order is stable
// across runs.
func Rank(authors []schema.AuthorStats) {
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Commits != authors[j].Commits {
			return authors[i].Commits > authors[j].Commits
		}
		return authors[i].Author < authors[j].Author
	})
}

// Top returns the first 'limit' authors of an already ranked list. If
// limit is zero or negative, all authors are returned.
func Top(authors []schema.AuthorStats, limit int) []schema.AuthorStats {
	if limit > 0 && len(authors) > limit {
		return authors[:limit]
	}
	return authors
}
