package schema

// Outcome is the typed per-commit result of the aggregation fold.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason SkipReason    `json:"reason,omitempty"`
}

// ProcessingReport counts per-commit outcomes across one analysis pass.
// Analyzed matches the commit total used for percentage metrics, so the
// report always reconciles with the per-author numbers.
type ProcessingReport struct {
	Seen    int                `json:"seen"`
	Counted int                `json:"counted"`
	Partial int                `json:"partial"`
	Skipped map[SkipReason]int `json:"skipped,omitempty"`
}

// Observe folds one outcome into the report.
func (r *ProcessingReport) Observe(o Outcome) {
	r.Seen++
	switch o.Status {
	case OutcomeCounted:
		r.Counted++
	case OutcomePartial:
		r.Partial++
	case OutcomeSkipped:
		if r.Skipped == nil {
			r.Skipped = make(map[SkipReason]int)
		}
		r.Skipped[o.Reason]++
	}
}

// Analyzed returns the number of commits that entered the aggregates.
func (r ProcessingReport) Analyzed() int {
	return r.Counted + r.Partial
}

// SkippedTotal returns the number of commits excluded from the aggregates.
func (r ProcessingReport) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}
