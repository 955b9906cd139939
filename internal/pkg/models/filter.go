package models

import (
	"fmt"
	"time"
)

// DefaultWindow is the relevance span used when the caller gives no hour bound.
const DefaultWindow = 7 * 24 * time.Hour

// FilterError reports invalid caller input. Unlike upstream flakiness this
// indicates an integration bug, so it is the one error class the aggregator
// does not swallow.
type FilterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter field %q: %s (got %q)", e.Field, e.Reason, e.Value)
}

// Filter carries one aggregation query. All fields are optional.
type Filter struct {
	Team        string
	Competition string // short code: epl, laliga, bundesliga, seriea, ligue1, ucl, serbia
	Date        string // YYYY-MM-DD
	Hours       *int   // nil means the default 7-day span
	Exact       bool
	NoCache     bool
	Debug       bool
}

func (f Filter) Validate() error {
	if f.Date != "" {
		if _, err := time.Parse("2006-01-02", f.Date); err != nil {
			return &FilterError{Field: "date", Value: f.Date, Reason: "must be YYYY-MM-DD"}
		}
	}
	if f.Hours != nil && *f.Hours < 0 {
		return &FilterError{Field: "hours", Value: fmt.Sprintf("%d", *f.Hours), Reason: "must be non-negative"}
	}
	return nil
}

// WindowEnd returns the upper bound of the relevance window.
func (f Filter) WindowEnd(now time.Time) time.Time {
	if f.Hours == nil {
		return now.Add(DefaultWindow)
	}
	return now.Add(time.Duration(*f.Hours) * time.Hour)
}
