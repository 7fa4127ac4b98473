package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// reportKeyWidth aligns the value column of the text report. Wide enough
// for the longest label plus its colon.
const reportKeyWidth = 20

// writeAuthorTable generates and writes the human-readable table.
func writeAuthorTable(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Author", "Commits", "Share", "Churn", "Impact", "Label"}
	if cfg.Detail {
		headers = append(headers, "Added", "Deleted", "Test", "Fix", "Atomic", "Streak")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxNameWidth := maxAuthorNameWidth(cfg)
	var data [][]string
	for i, a := range result.Authors {
		// Abbreviated names keep the table narrow; the full identity is
		// available in the text, CSV and JSON outputs.
		name := contract.TruncateName(schema.AbbreviateName(a.Author), maxNameWidth)
		row := []string{
			strconv.Itoa(i + 1),                         // Rank
			name,                                        // Author
			fmt.Sprintf(intFmt, a.Commits),              // Commits
			fmtFloat(a.CommitPercentage) + "%",          // Share
			fmt.Sprintf(intFmt, a.CodeChurn),            // Churn
			fmtFloat(a.ImpactRatio),                     // Impact
			labelFor(a.CommitPercentage, cfg.UseColors), // Label
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf(intFmt, a.Additions),     // Added
				fmt.Sprintf(intFmt, a.Deletions),     // Deleted
				fmtFloat(a.TestRatio),                // Test
				fmtFloat(a.FixRatio),                 // Fix
				fmtFloat(a.AtomicCommitRatio),        // Atomic
				fmt.Sprintf(intFmt, a.LongestStreak), // Streak
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Summary footer
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d authors (commits: %d, lines: +%s/-%s)\n",
		len(result.Authors), result.TotalAuthors, result.TotalCommits,
		humanize.Comma(int64(result.TotalAdditions)), humanize.Comma(int64(result.TotalDeletions))); err != nil {
		return err
	}
	if err := writeProcessingSummary(writer, result.Report); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeAuthorReport writes the multi-section plain text report, one block
// per author, in the layout of the classic contribution analysis script.
func writeAuthorReport(result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "\nDeveloper Contribution Analysis\n%s\n", strings.Repeat("=", 80)); err != nil {
		return err
	}

	for _, a := range result.Authors {
		if err := writeAuthorSection(writer, a, cfg, fmtFloat); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	if err := writeProcessingSummary(writer, result.Report); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration)
	return err
}

// writeAuthorSection writes the metric groups for a single author.
func writeAuthorSection(w io.Writer, a schema.AuthorStats, cfg *contract.Config, fmtFloat func(float64) string) error {
	pct := func(v float64) string { return fmtFloat(v * 100) }

	if _, err := fmt.Fprintf(w, "\nDeveloper: %s (%s)\n%s\n",
		a.Author, labelFor(a.CommitPercentage, cfg.UseColors), strings.Repeat("-", 50)); err != nil {
		return err
	}

	sections := []struct {
		title string
		lines [][2]string
	}{
		{
			title: "Basic Metrics",
			lines: [][2]string{
				{"Total commits", fmt.Sprintf("%d (%s%% of all commits)", a.Commits, fmtFloat(a.CommitPercentage))},
				{"Files changed", humanize.Comma(int64(a.FilesChanged))},
				{"Lines added", humanize.Comma(int64(a.Additions))},
				{"Lines deleted", humanize.Comma(int64(a.Deletions))},
				{"Net lines", humanize.Comma(int64(a.NetLines))},
			},
		},
		{
			title: "Streak Metrics",
			lines: [][2]string{
				{"Longest streak", fmt.Sprintf("%d days", a.LongestStreak)},
				{"Current streak", fmt.Sprintf("%d days", a.CurrentStreak)},
				{"Active weeks", strconv.Itoa(a.ActiveWeeks)},
				{"Most active day", emptyDash(a.MostActiveDay)},
			},
		},
		{
			title: "Composition Metrics",
			lines: [][2]string{
				{"Code changes", humanize.Comma(int64(a.CodeChanges)) + " lines"},
				{"Test changes", humanize.Comma(int64(a.TestChanges)) + " lines"},
				{"Doc changes", humanize.Comma(int64(a.DocChanges)) + " lines"},
				{"Test ratio", fmtFloat(a.TestRatio)},
				{"Doc ratio", fmtFloat(a.DocRatio)},
				{"Fix commits", fmt.Sprintf("%d (%s%%)", a.FixCommits, pct(a.FixRatio))},
				{"Refactor commits", fmt.Sprintf("%d (%s%%)", a.RefactorCommits, pct(a.RefactorRatio))},
				{"Feature commits", fmt.Sprintf("%d (%s%%)", a.FeatureCommits, pct(a.FeatureRatio))},
				{"PR commits", fmt.Sprintf("%d (%s%%)", a.PRCommits, pct(a.PRRatio))},
				{"File types", emptyDash(strings.Join(a.FileTypes, ", "))},
			},
		},
		{
			title: "Impact Metrics",
			lines: [][2]string{
				{"Avg files/commit", fmtFloat(a.AvgFilesPerCommit)},
				{"Avg lines/commit", fmtFloat(a.AvgLinesPerCommit)},
				{"Code churn", humanize.Comma(int64(a.CodeChurn)) + " lines"},
				{"Impact ratio", fmtFloat(a.ImpactRatio)},
				{"Atomic commits", fmt.Sprintf("%d (%s%%)", a.AtomicCommits, pct(a.AtomicCommitRatio))},
				{"Median commit size", fmtFloat(a.MedianCommitSize) + " lines"},
				{"Mean commit size", fmtFloat(a.MeanCommitSize) + " lines"},
				{"Stdev commit size", fmtFloat(a.StdevCommitSize) + " lines"},
			},
		},
		{
			title: "Activity Metrics",
			lines: [][2]string{
				{"Active days", strconv.Itoa(a.ActiveDays)},
				{"Commits/active day", fmtFloat(a.CommitsPerActiveDay)},
				{"Peak commit hour", fmt.Sprintf("%02d:00", a.PeakHour)},
			},
		},
	}

	for i, sec := range sections {
		prefix := "\n"
		if i == 0 {
			prefix = ""
		}
		if _, err := fmt.Fprintf(w, "%s%s:\n", prefix, sec.title); err != nil {
			return err
		}
		for _, line := range sec.lines {
			if _, err := fmt.Fprintf(w, "  %-*s %s\n", reportKeyWidth, line[0]+":", line[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// emptyDash substitutes a dash for values that have no data, such as the
// most active day of an author whose commits all fell outside the window.
func emptyDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
