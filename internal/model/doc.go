// Package model defines the core data structures shared across batchdl.
//
// # Job
//
// Job is one URL-to-file download unit with its positional metadata:
//
//	job := model.Job{URL: url, Index: 0, Total: 5}
//
// # Outcome
//
// Outcome is a tagged result type: a job either produced a saved file path or
// a captured error, never both and never neither:
//
//	model.Saved("/downloads/report_1.pdf")
//	model.Failed(err)
//
// # BatchResult
//
// BatchResult pairs the untouched input payload with one Outcome per job,
// ordered by job index.
package model
