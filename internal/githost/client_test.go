package githost

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// newTestClient points the API client at a local test server. The limiter is
// unbounded so tests never sleep.
func newTestClient(t *testing.T) (*Client, *http.ServeMux, string) {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL

	return &Client{gh: gh, limiter: rate.NewLimiter(rate.Inf, 1)}, mux, srv.URL
}

func TestResolveBranchDefault(t *testing.T) {
	client, mux, _ := newTestClient(t)
	mux.HandleFunc("/repos/acme/widgets", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"default_branch": "trunk"}`)
	})

	branch, err := client.ResolveBranch(context.Background(), "acme", "widgets", "")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestResolveBranchFound(t *testing.T) {
	client, mux, _ := newTestClient(t)
	mux.HandleFunc("/repos/acme/widgets/branches", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"name": "main"}, {"name": "develop"}]`)
	})

	branch, err := client.ResolveBranch(context.Background(), "acme", "widgets", "develop")
	require.NoError(t, err)
	assert.Equal(t, "develop", branch)
}

func TestResolveBranchNotFound(t *testing.T) {
	client, mux, _ := newTestClient(t)
	mux.HandleFunc("/repos/acme/widgets/branches", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"name": "main"}, {"name": "develop"}]`)
	})

	_, err := client.ResolveBranch(context.Background(), "acme", "widgets", "gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `branch "gone" not found`)
	assert.Contains(t, err.Error(), "main, develop")
}

func TestFetchCommits(t *testing.T) {
	client, mux, srvURL := newTestClient(t)

	// Two pages: a commit with full detail, then an authorless commit and a
	// commit whose detail endpoint fails.
	mux.HandleFunc("/repos/acme/widgets/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("sha"))
		assert.NotEmpty(t, r.URL.Query().Get("since"))

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[
				{"sha": "bbb222", "commit": {"message": "Orphan commit", "author": {"date": "2025-06-11T09:00:00Z"}}},
				{"sha": "ccc333", "author": {"login": "carol"}, "commit": {"message": "Tune cache", "author": {"date": "2025-06-12T09:00:00Z"}}}
			]`)
			return
		}

		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widgets/commits?page=2>; rel="next"`, srvURL))
		fmt.Fprint(w, `[
			{"sha": "aaa111", "author": {"login": "alice"}, "commit": {"message": "Add parser", "author": {"date": "2025-06-10T12:00:00Z"}}}
		]`)
	})

	mux.HandleFunc("/repos/acme/widgets/commits/", func(w http.ResponseWriter, r *http.Request) {
		switch path.Base(r.URL.Path) {
		case "aaa111":
			fmt.Fprint(w, `{"sha": "aaa111", "files": [
				{"filename": "parser.go", "additions": 10, "deletions": 2},
				{"filename": "parser_test.go", "additions": 20, "deletions": 0}
			]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	})

	var progressCounts []int
	since := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	commits, err := client.FetchCommits(context.Background(), "acme", "widgets", "main", since, func(fetched int) {
		progressCounts = append(progressCounts, fetched)
	})
	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, "aaa111", commits[0].SHA)
	assert.Equal(t, "alice", commits[0].Author)
	assert.Equal(t, "Add parser", commits[0].Message)
	assert.False(t, commits[0].StatsMissing)
	assert.Equal(t, []schema.FileChange{
		{Path: "parser.go", Additions: 10, Deletions: 2},
		{Path: "parser_test.go", Additions: 20, Deletions: 0},
	}, commits[0].Files)

	// No author login: kept for the processing report, no detail fetched.
	assert.Empty(t, commits[1].Author)
	assert.False(t, commits[1].StatsMissing)
	assert.Empty(t, commits[1].Files)

	// Detail fetch failed: commit survives but is flagged.
	assert.Equal(t, "carol", commits[2].Author)
	assert.True(t, commits[2].StatsMissing)
	assert.Empty(t, commits[2].Files)

	assert.Equal(t, []int{1, 2, 3}, progressCounts)
}

func TestFetchCommitsListError(t *testing.T) {
	client, mux, _ := newTestClient(t)
	mux.HandleFunc("/repos/acme/widgets/commits", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message": "Git Repository is empty."}`)
	})

	_, err := client.FetchCommits(context.Background(), "acme", "widgets", "main", time.Time{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list commits for acme/widgets")
}

func TestConvertCommit(t *testing.T) {
	ts := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	rc := &github.RepositoryCommit{
		SHA:    github.String("a1b2c3d4e5f60718"),
		Author: &github.User{Login: github.String("octocat")},
		Commit: &github.Commit{
			Message: github.String("Fix crash on startup"),
			Author:  &github.CommitAuthor{Date: &github.Timestamp{Time: ts}},
		},
	}

	got := convertCommit(rc)
	assert.Equal(t, "a1b2c3d4e5f60718", got.SHA)
	assert.Equal(t, "octocat", got.Author)
	assert.Equal(t, "Fix crash on startup", got.Message)
	assert.True(t, ts.Equal(got.Timestamp))
}

func TestConvertCommitWithoutAuthor(t *testing.T) {
	rc := &github.RepositoryCommit{
		SHA:    github.String("a1b2c3d"),
		Commit: &github.Commit{Message: github.String("Orphan commit")},
	}

	got := convertCommit(rc)
	assert.Empty(t, got.Author, "commits without a linked account have no login")
	assert.Equal(t, "Orphan commit", got.Message)
}

func TestConvertCommitKeepsSubjectOnly(t *testing.T) {
	rc := &github.RepositoryCommit{
		SHA: github.String("a1b2c3d"),
		Commit: &github.Commit{
			Message: github.String("Add CSV export\r\n\nThe body mentions a bug fix that must not count."),
		},
	}

	got := convertCommit(rc)
	assert.Equal(t, "Add CSV export", got.Message)
}

func TestConvertFiles(t *testing.T) {
	files := []*github.CommitFile{
		{Filename: github.String("main.go"), Additions: github.Int(12), Deletions: github.Int(4)},
		{Filename: github.String("docs/usage.md"), Additions: github.Int(3), Deletions: github.Int(0)},
	}

	got := convertFiles(files)
	assert.Equal(t, []schema.FileChange{
		{Path: "main.go", Additions: 12, Deletions: 4},
		{Path: "docs/usage.md", Additions: 3, Deletions: 0},
	}, got)

	assert.Empty(t, convertFiles(nil))
}
