package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// OutcomeStatus represents how one commit was handled during aggregation.
	OutcomeStatus string

	// SkipReason explains why a commit was excluded or only partially counted.
	SkipReason string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	TableOut   OutputMode = "table"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All aggregation outcomes supported.
const (
	OutcomeCounted OutcomeStatus = "counted"
	OutcomePartial OutcomeStatus = "partial" // counted without file-level stats
	OutcomeSkipped OutcomeStatus = "skipped"
)

// All skip reasons supported.
const (
	ReasonNone          SkipReason = ""
	ReasonMissingAuthor SkipReason = "missing-author"
	ReasonMissingStats  SkipReason = "missing-stats"
	ReasonOutsideWindow SkipReason = "outside-window"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	TableOut:   {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// DefaultAtomicThreshold is the total line change at or below which a
// commit counts as atomic.
const DefaultAtomicThreshold = 50

// Default keyword sets for commit message classification. Matching is a
// case-insensitive substring search and each set is matched independently,
// so one commit can carry several flags at once.
var (
	DefaultFixKeywords      = []string{"fix", "bug", "issue", "error", "crash", "problem", "fail"}
	DefaultRefactorKeywords = []string{"refactor", "clean", "improve", "optimize", "simplify"}
	DefaultFeatureKeywords  = []string{"feature", "add", "new", "implement", "support"}
	DefaultPRKeywords       = []string{"pull request", "pr #", "merge"}
)
