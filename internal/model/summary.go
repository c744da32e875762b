package model

import "time"

// RunSummary captures metrics from a single classification pass.
type RunSummary struct {
	RunID      string
	FilePath   string
	FileSHA256 string
	OutPath    string
	Mode       string

	RowsRead   int64
	Cohorts    int64
	FlagCounts map[string]int64

	DurationRead     time.Duration
	DurationClassify time.Duration
	DurationWrite    time.Duration
	DurationTotal    time.Duration
}

// LoadSummary captures metrics from a warehouse load run.
type LoadSummary struct {
	FilePath    string
	FileSHA256  string
	LoadBatchID string

	RowsRead     int64
	RowsLoaded   int64
	RowsRejected int64

	Duration time.Duration
}
