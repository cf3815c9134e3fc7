package model

import "time"

// RunSummary captures metrics from a single ooingest run.
type RunSummary struct {
	RunID             string
	RowsLoaded        int
	RowsCabled        int
	RowsEligible      int
	SkippedDisabled   int
	SkippedByOperator int
	Recorded          int
	Failed            int
	ResultFile        string
	DurationTotal     time.Duration
}
