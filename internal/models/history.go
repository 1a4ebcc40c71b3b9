package models

import "time"

// HistoryEntry records one completed analysis. Created exactly once
// per successful run and never mutated afterwards.
type HistoryEntry struct {
	ID              string
	Date            time.Time
	AppName         string
	ComplianceScore int
	HighCount       int
	MediumCount     int
	LowCount        int
	Result          *AnalysisResult
}
