package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultDaysBack    = 30
	MaxDaysBack        = 3650
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath  string
	RepoHash  string // HEAD commit at analysis time
	StartTime time.Time
	EndTime   time.Time

	// Hosted repository coordinates, set only by the github command.
	Owner    string
	Repo     string
	Branch   string
	DaysBack int

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Excludes []string
	Aliases  map[string]string

	AtomicThreshold  int
	FixKeywords      []string
	RefactorKeywords []string
	FeatureKeywords  []string
	PRKeywords       []string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start           string `mapstructure:"start"`
	End             string `mapstructure:"end"`
	Limit           int    `mapstructure:"limit"`
	Precision       int    `mapstructure:"precision"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Detail          bool   `mapstructure:"detail"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	Exclude         string `mapstructure:"exclude"`
	AtomicThreshold int    `mapstructure:"atomic-threshold"`

	// --- Fields from githubCmd.Flags() ---
	DaysBack int    `mapstructure:"days-back"`
	Branch   string `mapstructure:"branch"`

	// --- Fields from the config file only ---
	Aliases          map[string]string `mapstructure:"aliases"`
	FixKeywords      []string          `mapstructure:"fix-keywords"`
	RefactorKeywords []string          `mapstructure:"refactor-keywords"`
	FeatureKeywords  []string          `mapstructure:"feature-keywords"`
	PRKeywords       []string          `mapstructure:"pr-keywords"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// for a local repository run and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processClassifierInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ProcessAndValidateHosted performs all parsing and validation on the raw
// inputs for a hosted repository run. The analysis window is derived from
// the days-back lookback instead of explicit start and end flags.
func ProcessAndValidateHosted(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processClassifierInputs(cfg, input); err != nil {
		return err
	}
	if err := processHostedParams(cfg, input, now); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, table, csv, json, parquet", cfg.Output)
	}

	// --- 3. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		"node_modules/", "vendor/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processTimeRange handles date parsing and time range validation for the
// local command. With no flags the analysis covers the full history, so
// both bounds stay zero.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	// --- Process Start Time ---
	if input.Start != "" {
		t, err := ParseTimeBound(input.Start, now, false)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago': %v", input.Start, err)
		}
		cfg.StartTime = t
	}

	// --- Process End Time ---
	if input.End != "" {
		t, err := ParseTimeBound(input.End, now, true)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago': %v", input.End, err)
		}
		cfg.EndTime = t
	}

	// --- Final Validation ---
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// processClassifierInputs validates the atomic threshold and carries the
// alias table and keyword sets over from the config file. Empty keyword
// sets stay nil so the classifier falls back to its stock sets.
func processClassifierInputs(cfg *Config, input *ConfigRawInput) error {
	if input.AtomicThreshold <= 0 {
		return fmt.Errorf("atomic-threshold must be greater than 0 (received %d)", input.AtomicThreshold)
	}
	cfg.AtomicThreshold = input.AtomicThreshold

	if len(input.Aliases) > 0 {
		cfg.Aliases = make(map[string]string, len(input.Aliases))
		for raw, canonical := range input.Aliases {
			raw = strings.TrimSpace(raw)
			canonical = strings.TrimSpace(canonical)
			if raw == "" || canonical == "" {
				return fmt.Errorf("alias entries must map a raw author name to a canonical one (got %q -> %q)", raw, canonical)
			}
			cfg.Aliases[raw] = canonical
		}
	}

	cfg.FixKeywords = cleanKeywords(input.FixKeywords)
	cfg.RefactorKeywords = cleanKeywords(input.RefactorKeywords)
	cfg.FeatureKeywords = cleanKeywords(input.FeatureKeywords)
	cfg.PRKeywords = cleanKeywords(input.PRKeywords)

	return nil
}

// processHostedParams validates the GitHub-specific inputs and derives the
// analysis window from the days-back lookback.
func processHostedParams(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if input.DaysBack <= 0 || input.DaysBack > MaxDaysBack {
		return fmt.Errorf("days-back must be greater than 0 and cannot exceed %d (received %d)", MaxDaysBack, input.DaysBack)
	}
	cfg.DaysBack = input.DaysBack
	cfg.Branch = strings.TrimSpace(input.Branch)

	owner, repo, err := splitRepoSlug(input.RepoPathStr)
	if err != nil {
		return err
	}
	cfg.Owner = owner
	cfg.Repo = repo

	cfg.StartTime = now.AddDate(0, 0, -cfg.DaysBack)
	cfg.EndTime = time.Time{}

	return nil
}

// splitRepoSlug parses "owner/name" repository coordinates.
func splitRepoSlug(slug string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(slug), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q. Expected the owner/name form, e.g. 'golang/go'", slug)
	}
	return parts[0], parts[1], nil
}

// cleanKeywords trims entries and drops empties, returning nil when
// nothing remains.
func cleanKeywords(keywords []string) []string {
	var cleaned []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return cleaned
}

// resolveGitPath resolves the Git repository root from the positional path
// argument. File arguments resolve through their parent directory.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	gitContextPath := absSearchPath
	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	return nil
}
