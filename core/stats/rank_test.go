package stats_test

import (
	"testing"

	"github.com/gitpulse/gitpulse/core/stats"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	authors := []schema.AuthorStats{
		{Author: "carol", Commits: 3},
		{Author: "alice", Commits: 9},
		{Author: "dave", Commits: 3},
		{Author: "bob", Commits: 7},
	}

	stats.Rank(authors)

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Author
	}
	// Ties on commit count resolve alphabetically.
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names)
}

func TestTop(t *testing.T) {
	authors := []schema.AuthorStats{
		{Author: "alice", Commits: 9},
		{Author: "bob", Commits: 7},
		{Author: "carol", Commits: 3},
	}

	assert.Len(t, stats.Top(authors, 2), 2)
	assert.Len(t, stats.Top(authors, 10), 3)
	assert.Len(t, stats.Top(authors, 0), 3)
	assert.Len(t, stats.Top(authors, -1), 3)
	assert.Equal(t, "alice", stats.Top(authors, 1)[0].Author)
}
