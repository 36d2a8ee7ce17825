package model

import "encoding/json"

// Outcome is the result of a single download job: either the path the file
// was saved to, or the error that stopped it. Exactly one of the two is set.
//
// Outcomes are values, not thrown errors: a failed job produces a failed
// Outcome in its batch slot and the rest of the batch keeps going.
//
// Example:
//
//	for i, out := range batch.FilePaths {
//	    if out.OK() {
//	        fmt.Printf("%d: %s\n", i, out.Path())
//	    } else {
//	        fmt.Printf("%d: failed: %v\n", i, out.Err())
//	    }
//	}
type Outcome struct {
	path string
	err  error
}

// Saved returns a successful Outcome holding the saved file path.
func Saved(path string) Outcome {
	return Outcome{path: path}
}

// Failed returns a failed Outcome holding the captured error.
func Failed(err error) Outcome {
	return Outcome{err: err}
}

// OK reports whether the job succeeded.
func (o Outcome) OK() bool {
	return o.err == nil
}

// Path returns the saved file path, or the empty string for a failed Outcome.
func (o Outcome) Path() string {
	return o.path
}

// Err returns the captured error, or nil for a successful Outcome.
func (o Outcome) Err() error {
	return o.err
}

// MarshalJSON renders a successful Outcome as its path string and a failed
// one as {"error": "..."}, so batch summaries stay readable as JSON.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return json.Marshal(map[string]string{"error": o.err.Error()})
	}
	return json.Marshal(o.path)
}

// BatchResult is the output of one batch run.
type BatchResult struct {
	// Results is the original input payload, passed through untouched.
	Results any `json:"results"`

	// FilePaths holds one Outcome per job, ordered by job index regardless
	// of completion order.
	FilePaths []Outcome `json:"filePaths"`
}
