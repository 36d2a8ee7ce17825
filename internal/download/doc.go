// Package download provides the batch download orchestration: job
// extraction, bounded-concurrency scheduling and the per-job pipeline.
//
// # Manager
//
// The Manager drives one batch end to end:
//
//  1. Extract URLs (and optional display names) from the input payload
//  2. Drop entries without a resolvable URL
//  3. Ensure the output directory exists
//  4. Fan jobs out with a bounded number of downloads in flight
//  5. Per job: fetch, guard the declared size, synthesize a filename,
//     stream the body to disk
//
// # Basic usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	batch, err := manager.Run(ctx, []any{"https://x.test/a.pdf", "https://x.test/b.pdf"})
//	if err != nil {
//	    log.Fatal(err) // setup problem: bad config or unwritable output dir
//	}
//	for i, out := range batch.FilePaths {
//	    // out is either a saved path or the captured per-job error
//	}
//
// # Failure isolation
//
// A failing job never aborts the batch: its error becomes the Outcome in its
// slot and every other job keeps going. Output slot i always corresponds to
// job i regardless of completion order.
//
// # Concurrency
//
// Settings.Concurrency bounds how many downloads are in flight at once;
// a value of 1 degrades to strictly sequential processing.
package download
