package model

// Job represents one URL-to-file download unit within a batch.
//
// Jobs are created once per qualifying input entry and are immutable
// afterwards. Index and Total carry the job's position in the batch and the
// batch size, which the filename synthesizer uses for the {index}
// placeholder's zero padding.
//
// Example:
//
//	job := model.Job{
//	    URL:        "https://example.com/files/report.pdf",
//	    ParsedName: "invoice", // from the name selector, may be empty
//	    Index:      1,
//	    Total:      3,
//	}
type Job struct {
	// URL is the resource to download. Always non-empty; entries without a
	// resolvable URL are dropped before jobs are created.
	URL string

	// ParsedName is the display name extracted via the configured name
	// selector. Empty when no selector is configured or the entry has no
	// such field.
	ParsedName string

	// Index is the job's zero-based position within the batch.
	Index int

	// Total is the number of jobs in the batch, after filtering.
	Total int
}
