package models

// SourceReport describes one adapter's contribution to a run. Error carries
// the fetch failure as inspectable data instead of a propagated exception.
type SourceReport struct {
	Count int      `json:"count"`
	Error string   `json:"error,omitempty"`
	Notes []string `json:"notes,omitempty"` // debug mode only
}

// Report is the aggregation output returned to the caller. Results are
// sorted ascending by kickoff, events without a kickoff last.
type Report struct {
	Used    []string                `json:"used"`
	Results []VerifiedEvent         `json:"results"`
	Sources map[string]SourceReport `json:"sources"`
	Counts  map[string]int          `json:"counts"`
}
