package schema

// AuthorStats is the derived, read-only view of one author's contribution.
// Every field is computed once from the author's accumulated commits after
// the aggregation pass completes.
type AuthorStats struct {
	Author string `json:"author"`

	// Volume
	Commits          int     `json:"commits"`
	CommitPercentage float64 `json:"commit_percentage"`
	FilesChanged     int     `json:"files_changed"`
	Additions        int     `json:"additions"`
	Deletions        int     `json:"deletions"`
	NetLines         int     `json:"net_lines"`

	// Impact
	AvgFilesPerCommit float64 `json:"avg_files_per_commit"`
	AvgLinesPerCommit float64 `json:"avg_lines_per_commit"`
	CodeChurn         int     `json:"code_churn"`
	ImpactRatio       float64 `json:"impact_ratio"`

	// Composition
	TestChanges     int      `json:"test_changes"`
	DocChanges      int      `json:"doc_changes"`
	CodeChanges     int      `json:"code_changes"`
	TestRatio       float64  `json:"test_ratio"`
	DocRatio        float64  `json:"doc_ratio"`
	FixCommits      int      `json:"fix_commits"`
	RefactorCommits int      `json:"refactor_commits"`
	FeatureCommits  int      `json:"feature_commits"`
	PRCommits       int      `json:"pr_commits"`
	FixRatio        float64  `json:"fix_ratio"`
	RefactorRatio   float64  `json:"refactor_ratio"`
	FeatureRatio    float64  `json:"feature_ratio"`
	PRRatio         float64  `json:"pr_ratio"`
	FileTypes       []string `json:"file_types"`

	// Commit shape
	AtomicCommits     int     `json:"atomic_commits"`
	AtomicCommitRatio float64 `json:"atomic_commit_ratio"`
	MedianCommitSize  float64 `json:"median_commit_size"`
	MeanCommitSize    float64 `json:"mean_commit_size"`
	StdevCommitSize   float64 `json:"stdev_commit_size"`

	// Rhythm
	LongestStreak       int     `json:"longest_streak"`
	CurrentStreak       int     `json:"current_streak"`
	ActiveDays          int     `json:"active_days"`
	ActiveWeeks         int     `json:"active_weeks"`
	CommitsPerActiveDay float64 `json:"commits_per_active_day"`
	MostActiveDay       string  `json:"most_active_day"`
	PeakHour            int     `json:"peak_hour"`
}

// AnalysisResult bundles the ranked per-author stats with run totals and
// the processing report for one analysis pass.
type AnalysisResult struct {
	Authors        []AuthorStats    `json:"authors"`
	TotalCommits   int              `json:"total_commits"`
	TotalAuthors   int              `json:"total_authors"`
	TotalAdditions int              `json:"total_additions"`
	TotalDeletions int              `json:"total_deletions"`
	Report         ProcessingReport `json:"report"`
}
