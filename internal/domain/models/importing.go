package models

// ImportSummary reports the outcome of one bulk import. A malformed row never
// aborts the batch; it only shows up here as a failed count plus a log entry.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
