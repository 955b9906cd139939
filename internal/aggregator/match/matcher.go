package match

import (
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// DefaultWindow is the kickoff proximity within which two reports are
// considered the same fixture.
const DefaultWindow = 30 * time.Minute

// TaggedEvent pairs an event with the adapter that produced it.
type TaggedEvent struct {
	Event  models.Event
	Source string
}

// Group is a cluster of events judged to describe the same fixture. The
// representative is the first member placed; its fields populate the
// group's output. Evidence holds the distinct contributing source tags in
// first-contribution order.
type Group struct {
	Representative models.Event
	Members        []TaggedEvent
	Evidence       []string
}

func newGroup(te TaggedEvent) *Group {
	return &Group{
		Representative: te.Event,
		Members:        []TaggedEvent{te},
		Evidence:       []string{te.Source},
	}
}

func (g *Group) add(te TaggedEvent) {
	g.Members = append(g.Members, te)
	for _, s := range g.Evidence {
		if s == te.Source {
			return
		}
	}
	g.Evidence = append(g.Evidence, te.Source)
}

// Matcher groups events from different sources that describe the same
// real-world fixture despite inconsistent naming.
type Matcher struct {
	norm   *normalize.Normalizer
	window time.Duration
}

func New(norm *normalize.Normalizer, window time.Duration) *Matcher {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Matcher{norm: norm, window: window}
}

// Group runs greedy single-pass clustering: each event joins the first
// existing group whose representative it matches, otherwise it opens a new
// group. Membership is append-only and groups are never merged
// retroactively, so events pairwise similar only through a third one can
// end up split. For the tens of events a run produces this stays cheap and
// deterministic, which is what we want; a true transitive grouping would
// change observable output.
func (m *Matcher) Group(events []TaggedEvent) []*Group {
	var groups []*Group
	for _, te := range events {
		placed := false
		for _, g := range groups {
			if m.Similar(te.Event, g.Representative) {
				g.add(te)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, newGroup(te))
		}
	}
	return groups
}

// Similar reports whether two events describe the same fixture: the same
// unordered team pair (home/away swap tolerated), with kickoffs within the
// window. Labels that do not split into two teams fall back to exact
// normalized equality. A missing kickoff on either side waives the time
// check entirely; two same-team fixtures with unknown times can then merge,
// a known imprecision kept for compatibility.
func (m *Matcher) Similar(a, b models.Event) bool {
	ma := m.norm.MatchText(a.Match)
	mb := m.norm.MatchText(b.Match)

	homeA, awayA, okA := normalize.SplitTeams(ma)
	homeB, awayB, okB := normalize.SplitTeams(mb)
	if okA && okB {
		if !samePair(homeA, awayA, homeB, awayB) {
			return false
		}
	} else if ma != mb {
		return false
	}

	if a.Kickoff == nil || b.Kickoff == nil {
		return true
	}
	diff := a.Kickoff.Sub(*b.Kickoff)
	if diff < 0 {
		diff = -diff
	}
	return diff <= m.window
}

func samePair(h1, a1, h2, a2 string) bool {
	return (h1 == h2 && a1 == a2) || (h1 == a2 && a1 == h2)
}
