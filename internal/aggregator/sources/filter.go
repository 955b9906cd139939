package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// InWindow reports whether a kickoff falls inside [now, now+window].
// Events with no parseable kickoff pass unconditionally so unknown-time
// data is not silently dropped.
func InWindow(kickoff *time.Time, now time.Time, f models.Filter) bool {
	if kickoff == nil {
		return true
	}
	if kickoff.Before(now) {
		return false
	}
	return !kickoff.After(f.WindowEnd(now))
}

// MatchesTeam applies the caller's team filter to a composite match label.
// The comparison is substring-based on canonicalized text; Exact instead
// requires the query to equal one of the two team tokens.
func MatchesTeam(n *normalize.Normalizer, f models.Filter, match string) bool {
	if f.Team == "" {
		return true
	}
	want := n.Team(f.Team)
	have := n.MatchText(match)
	if f.Exact {
		home, away, ok := normalize.SplitTeams(have)
		if ok {
			return home == want || away == want
		}
		return have == want
	}
	return strings.Contains(have, want)
}

// MatchesDate restricts events to the caller's explicit calendar day.
// Unknown kickoffs pass, same as the window filter.
func MatchesDate(kickoff *time.Time, f models.Filter) bool {
	if f.Date == "" || kickoff == nil {
		return true
	}
	return kickoff.UTC().Format("2006-01-02") == f.Date
}

// CacheKey builds the response-cache key from the effective query
// parameters, so a cache hit is indistinguishable from a live fetch with
// the same filter.
func CacheKey(source string, f models.Filter) string {
	hours := "all"
	if f.Hours != nil {
		hours = fmt.Sprintf("%d", *f.Hours)
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s:%t", source, f.Team, f.Competition, f.Date, hours, f.Exact)
}
