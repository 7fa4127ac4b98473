// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/samber/lo"
)

// WriteAuthorResults prints the per-author analysis, dispatching based on
// the output format configured.
func WriteAuthorResults(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAuthorJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAuthorCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeAuthorParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	default:
		// Default to the human-readable multi-section report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorReport(result, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// writeProcessingSummary prints how the commit stream was consumed, with a
// per-reason breakdown when anything was skipped.
func writeProcessingSummary(w io.Writer, report schema.ProcessingReport) error {
	line := fmt.Sprintf("Processed %d commits: %d full, %d partial, %d skipped",
		report.Seen, report.Counted, report.Partial, report.SkippedTotal())

	if report.SkippedTotal() > 0 {
		reasons := lo.Keys(report.Skipped)
		slices.Sort(reasons)

		parts := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, report.Skipped[reason]))
		}
		line += fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
	}

	_, err := fmt.Fprintln(w, line)
	return err
}
