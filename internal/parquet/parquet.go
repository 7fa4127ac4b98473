// Package parquet exports per-author contribution stats to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// AuthorRow represents one author's derived contribution metrics as a flat
// Parquet record. One file holds one row per author, ranked by commits.
type AuthorRow struct {
	// Rank is the author's position when sorted by commit count
	Rank int32 `parquet:"rank,snappy"`

	// Author is the canonical author identity after alias normalization
	Author string `parquet:"author,snappy"`

	// Label is the contribution label derived from the commit share
	Label string `parquet:"label,snappy"`

	// Commits is the number of commits counted for this author
	Commits int32 `parquet:"commits,snappy"`

	// CommitPercentage is the author's share of all analyzed commits
	CommitPercentage float64 `parquet:"commit_percentage,snappy"`

	// FilesChanged is the total number of file touches across commits
	FilesChanged int32 `parquet:"files_changed,snappy"`

	// Additions is the total number of lines added
	Additions int32 `parquet:"additions,snappy"`

	// Deletions is the total number of lines deleted
	Deletions int32 `parquet:"deletions,snappy"`

	// NetLines is additions minus deletions
	NetLines int32 `parquet:"net_lines,snappy"`

	// AvgFilesPerCommit is the mean file count per commit
	AvgFilesPerCommit float64 `parquet:"avg_files_per_commit,snappy"`

	// AvgLinesPerCommit is the mean churn per commit
	AvgLinesPerCommit float64 `parquet:"avg_lines_per_commit,snappy"`

	// CodeChurn is additions plus deletions
	CodeChurn int32 `parquet:"code_churn,snappy"`

	// ImpactRatio is net lines divided by churn, in [-1, 1]
	ImpactRatio float64 `parquet:"impact_ratio,snappy"`

	// TestChanges is the churn that landed in test-flavored paths
	TestChanges int32 `parquet:"test_changes,snappy"`

	// DocChanges is the churn that landed in doc-flavored paths
	DocChanges int32 `parquet:"doc_changes,snappy"`

	// CodeChanges is the churn that landed everywhere else
	CodeChanges int32 `parquet:"code_changes,snappy"`

	// TestRatio is test churn relative to lines added
	TestRatio float64 `parquet:"test_ratio,snappy"`

	// DocRatio is doc churn relative to lines added
	DocRatio float64 `parquet:"doc_ratio,snappy"`

	// FixRatio is the share of commits flagged as fixes
	FixRatio float64 `parquet:"fix_ratio,snappy"`

	// RefactorRatio is the share of commits flagged as refactors
	RefactorRatio float64 `parquet:"refactor_ratio,snappy"`

	// FeatureRatio is the share of commits flagged as features
	FeatureRatio float64 `parquet:"feature_ratio,snappy"`

	// PRRatio is the share of commits flagged as PR related
	PRRatio float64 `parquet:"pr_ratio,snappy"`

	// AtomicCommitRatio is the share of commits at or below the atomic threshold
	AtomicCommitRatio float64 `parquet:"atomic_commit_ratio,snappy"`

	// MedianCommitSize is the median churn per commit
	MedianCommitSize float64 `parquet:"median_commit_size,snappy"`

	// MeanCommitSize is the mean churn per commit
	MeanCommitSize float64 `parquet:"mean_commit_size,snappy"`

	// StdevCommitSize is the sample standard deviation of commit sizes
	StdevCommitSize float64 `parquet:"stdev_commit_size,snappy"`

	// LongestStreak is the longest run of consecutive active days
	LongestStreak int32 `parquet:"longest_streak,snappy"`

	// CurrentStreak is the active-day run still alive at evaluation time
	CurrentStreak int32 `parquet:"current_streak,snappy"`

	// ActiveDays is the number of distinct calendar days with commits
	ActiveDays int32 `parquet:"active_days,snappy"`

	// ActiveWeeks is the number of distinct ISO weeks with commits
	ActiveWeeks int32 `parquet:"active_weeks,snappy"`

	// CommitsPerActiveDay is commits divided by active days
	CommitsPerActiveDay float64 `parquet:"commits_per_active_day,snappy"`

	// MostActiveDay is the weekday with the most commits
	MostActiveDay string `parquet:"most_active_day,snappy"`

	// PeakHour is the hour of day with the most commits
	PeakHour int32 `parquet:"peak_hour,snappy"`

	// FileTypes is the pipe-joined set of file extensions touched
	FileTypes string `parquet:"file_types,snappy"`
}

// ConvertAuthorStats converts ranked author stats into Parquet rows.
func ConvertAuthorStats(authors []schema.AuthorStats) []AuthorRow {
	rows := make([]AuthorRow, len(authors))
	for i, a := range authors {
		rows[i] = AuthorRow{
			Rank:                int32(i + 1),
			Author:              a.Author,
			Label:               schema.GetPlainLabel(a.CommitPercentage),
			Commits:             int32(a.Commits),
			CommitPercentage:    a.CommitPercentage,
			FilesChanged:        int32(a.FilesChanged),
			Additions:           int32(a.Additions),
			Deletions:           int32(a.Deletions),
			NetLines:            int32(a.NetLines),
			AvgFilesPerCommit:   a.AvgFilesPerCommit,
			AvgLinesPerCommit:   a.AvgLinesPerCommit,
			CodeChurn:           int32(a.CodeChurn),
			ImpactRatio:         a.ImpactRatio,
			TestChanges:         int32(a.TestChanges),
			DocChanges:          int32(a.DocChanges),
			CodeChanges:         int32(a.CodeChanges),
			TestRatio:           a.TestRatio,
			DocRatio:            a.DocRatio,
			FixRatio:            a.FixRatio,
			RefactorRatio:       a.RefactorRatio,
			FeatureRatio:        a.FeatureRatio,
			PRRatio:             a.PRRatio,
			AtomicCommitRatio:   a.AtomicCommitRatio,
			MedianCommitSize:    a.MedianCommitSize,
			MeanCommitSize:      a.MeanCommitSize,
			StdevCommitSize:     a.StdevCommitSize,
			LongestStreak:       int32(a.LongestStreak),
			CurrentStreak:       int32(a.CurrentStreak),
			ActiveDays:          int32(a.ActiveDays),
			ActiveWeeks:         int32(a.ActiveWeeks),
			CommitsPerActiveDay: a.CommitsPerActiveDay,
			MostActiveDay:       a.MostActiveDay,
			PeakHour:            int32(a.PeakHour),
			FileTypes:           strings.Join(a.FileTypes, "|"),
		}
	}
	return rows
}

// WriteAuthorRowsParquet writes a slice of AuthorRow structs to a Parquet file.
func WriteAuthorRowsParquet(rows []AuthorRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AuthorRow struct tags
	writer := parquet.NewGenericWriter[AuthorRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
