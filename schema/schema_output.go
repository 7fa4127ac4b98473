package schema

// Contribution label constants.
const (
	LabelLead       = "Lead"       // Half or more of the analyzed commits
	LabelCore       = "Core"       // A substantial share of the commits
	LabelRegular    = "Regular"    // A steady but minor share
	LabelOccasional = "Occasional" // Drive-by contributions
)

// EnrichedAuthorStats adds presentation data to an AuthorStats.
type EnrichedAuthorStats struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	AuthorStats
}

// GetPlainLabel returns a plain text label describing an author's role in
// the repository based on their share of analyzed commits.
func GetPlainLabel(commitPercentage float64) string {
	switch {
	case commitPercentage >= 50:
		return LabelLead
	case commitPercentage >= 20:
		return LabelCore
	case commitPercentage >= 5:
		return LabelRegular
	default:
		return LabelOccasional
	}
}

// EnrichAuthors adds rank and label to a ranked list of author stats.
func EnrichAuthors(authors []AuthorStats) []EnrichedAuthorStats {
	output := make([]EnrichedAuthorStats, len(authors))
	for i, a := range authors {
		output[i] = EnrichedAuthorStats{
			Rank:        i + 1,
			Label:       GetPlainLabel(a.CommitPercentage),
			AuthorStats: a,
		}
	}
	return output
}
