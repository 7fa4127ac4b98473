package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/parquet"
	"github.com/gitpulse/gitpulse/schema"
)

// writeAuthorJSON handles opening the file and calling the JSON writer.
func writeAuthorJSON(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForAuthors(w, result)
	}, "Wrote JSON")
}

// writeAuthorCSV handles opening the file and calling the CSV writer.
func writeAuthorCSV(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForAuthors(csvWriter, result.Authors, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeAuthorParquet converts the ranked authors to Parquet rows and writes
// them out. Parquet is a binary format, so a file path is mandatory.
func writeAuthorParquet(result *schema.AnalysisResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertAuthorStats(result.Authors)
	if err := parquet.WriteAuthorRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d author rows to %s\n", len(rows), cfg.OutputFile)
	return nil
}

// writeJSONResultsForAuthors writes the analysis results in JSON format.
// The payload carries run totals and the processing report alongside the
// ranked, label-enriched author list.
func writeJSONResultsForAuthors(w io.Writer, result *schema.AnalysisResult) error {
	type JSONAnalysisResult struct {
		TotalCommits   int                          `json:"total_commits"`
		TotalAuthors   int                          `json:"total_authors"`
		TotalAdditions int                          `json:"total_additions"`
		TotalDeletions int                          `json:"total_deletions"`
		Report         schema.ProcessingReport      `json:"report"`
		Authors        []schema.EnrichedAuthorStats `json:"authors"`
	}

	output := JSONAnalysisResult{
		TotalCommits:   result.TotalCommits,
		TotalAuthors:   result.TotalAuthors,
		TotalAdditions: result.TotalAdditions,
		TotalDeletions: result.TotalDeletions,
		Report:         result.Report,
		Authors:        schema.EnrichAuthors(result.Authors),
	}

	return writeJSON(w, output)
}

// writeCSVResultsForAuthors writes the analysis results in CSV format.
func writeCSVResultsForAuthors(w *csv.Writer, authors []schema.AuthorStats, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"author",
		"label",
		"commits",
		"commit_percentage",
		"files_changed",
		"additions",
		"deletions",
		"net_lines",
		"avg_files_per_commit",
		"avg_lines_per_commit",
		"code_churn",
		"impact_ratio",
		"test_changes",
		"doc_changes",
		"code_changes",
		"test_ratio",
		"doc_ratio",
		"fix_ratio",
		"refactor_ratio",
		"feature_ratio",
		"pr_ratio",
		"atomic_commit_ratio",
		"median_commit_size",
		"mean_commit_size",
		"stdev_commit_size",
		"longest_streak",
		"current_streak",
		"active_days",
		"active_weeks",
		"commits_per_active_day",
		"most_active_day",
		"peak_hour",
		"file_types",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, a := range authors {
		rec := []string{
			strconv.Itoa(i + 1),                        // Rank
			a.Author,                                   // Author
			schema.GetPlainLabel(a.CommitPercentage),   // Label
			fmt.Sprintf(intFmt, a.Commits),             // Commits
			fmtFloat(a.CommitPercentage),               // Commit Percentage
			fmt.Sprintf(intFmt, a.FilesChanged),        // Files Changed
			fmt.Sprintf(intFmt, a.Additions),           // Additions
			fmt.Sprintf(intFmt, a.Deletions),           // Deletions
			fmt.Sprintf(intFmt, a.NetLines),            // Net Lines
			fmtFloat(a.AvgFilesPerCommit),              // Avg Files per Commit
			fmtFloat(a.AvgLinesPerCommit),              // Avg Lines per Commit
			fmt.Sprintf(intFmt, a.CodeChurn),           // Code Churn
			fmtFloat(a.ImpactRatio),                    // Impact Ratio
			fmt.Sprintf(intFmt, a.TestChanges),         // Test Changes
			fmt.Sprintf(intFmt, a.DocChanges),          // Doc Changes
			fmt.Sprintf(intFmt, a.CodeChanges),         // Code Changes
			fmtFloat(a.TestRatio),                      // Test Ratio
			fmtFloat(a.DocRatio),                       // Doc Ratio
			fmtFloat(a.FixRatio),                       // Fix Ratio
			fmtFloat(a.RefactorRatio),                  // Refactor Ratio
			fmtFloat(a.FeatureRatio),                   // Feature Ratio
			fmtFloat(a.PRRatio),                        // PR Ratio
			fmtFloat(a.AtomicCommitRatio),              // Atomic Commit Ratio
			fmtFloat(a.MedianCommitSize),               // Median Commit Size
			fmtFloat(a.MeanCommitSize),                 // Mean Commit Size
			fmtFloat(a.StdevCommitSize),                // Stdev Commit Size
			fmt.Sprintf(intFmt, a.LongestStreak),       // Longest Streak
			fmt.Sprintf(intFmt, a.CurrentStreak),       // Current Streak
			fmt.Sprintf(intFmt, a.ActiveDays),          // Active Days
			fmt.Sprintf(intFmt, a.ActiveWeeks),         // Active Weeks
			fmtFloat(a.CommitsPerActiveDay),            // Commits per Active Day
			a.MostActiveDay,                            // Most Active Day
			fmt.Sprintf(intFmt, a.PeakHour),            // Peak Hour
			strings.Join(a.FileTypes, "|"),             // File Types
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
