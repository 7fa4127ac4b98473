package schema_test

import (
	"testing"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestCommitShortSHA(t *testing.T) {
	tests := []struct {
		name     string
		sha      string
		expected string
	}{
		{"Full Hash", "a1b2c3d4e5f6a7b8c9d0", "a1b2c3d4"},
		{"Exactly Eight", "a1b2c3d4", "a1b2c3d4"},
		{"Short Hash", "a1b2", "a1b2"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := schema.Commit{SHA: tt.sha}
			assert.Equal(t, tt.expected, c.ShortSHA())
		})
	}
}

func TestProcessingReportObserve(t *testing.T) {
	var report schema.ProcessingReport

	report.Observe(schema.Outcome{Status: schema.OutcomeCounted})
	report.Observe(schema.Outcome{Status: schema.OutcomeCounted})
	report.Observe(schema.Outcome{Status: schema.OutcomePartial, Reason: schema.ReasonMissingStats})
	report.Observe(schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonMissingAuthor})
	report.Observe(schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonOutsideWindow})
	report.Observe(schema.Outcome{Status: schema.OutcomeSkipped, Reason: schema.ReasonOutsideWindow})

	assert.Equal(t, 6, report.Seen)
	assert.Equal(t, 2, report.Counted)
	assert.Equal(t, 1, report.Partial)
	assert.Equal(t, 3, report.Analyzed())
	assert.Equal(t, 3, report.SkippedTotal())
	assert.Equal(t, 1, report.Skipped[schema.ReasonMissingAuthor])
	assert.Equal(t, 2, report.Skipped[schema.ReasonOutsideWindow])
}

func TestProcessingReportEmpty(t *testing.T) {
	var report schema.ProcessingReport
	assert.Equal(t, 0, report.Analyzed())
	assert.Equal(t, 0, report.SkippedTotal())
	assert.Nil(t, report.Skipped)
}
