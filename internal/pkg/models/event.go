package models

import "time"

// Event is the canonical record every source adapter produces.
// League and Match keep the provider's original spelling; comparison
// happens on normalized copies inside the matcher.
type Event struct {
	League  string            `json:"league"`
	Match   string            `json:"match"` // "<home> - <away>"
	Kickoff *time.Time        `json:"kickoff"`
	Odds    map[string]string `json:"odds,omitempty"`
	Source  string            `json:"source"`

	// Diagnostic fields, never used for matching.
	URL          string `json:"url,omitempty"`
	RawCategory  string `json:"raw_category,omitempty"`
	EventID      string `json:"event_id,omitempty"`
	RawTimestamp int64  `json:"raw_timestamp,omitempty"`
}

// VerifiedEvent is a group representative with cross-source agreement attached.
type VerifiedEvent struct {
	Event
	Evidence   []string `json:"evidence"`
	Confidence float64  `json:"confidence"`
}
