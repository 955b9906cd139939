package aggregator

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/match"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/pkg/metrics"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// Aggregator queries every source, reconciles their event lists into
// fixture groups and scores cross-source agreement. Each run is a pure
// function of the filter plus whatever the adapters fetched; there is no
// state between runs beyond the adapters' response caches.
type Aggregator struct {
	sources []sources.Source // canonical order: tsdb, sofascore, fudbal91
	matcher *match.Matcher
	keys    map[string]bool
	log     *slog.Logger
}

// New wires the aggregator. The source slice order is the canonical
// flattening order and must stay fixed: it is what makes the matcher's
// first-match-wins grouping deterministic across runs.
func New(srcs []sources.Source, matcher *match.Matcher, competitionKeys []string, log *slog.Logger) *Aggregator {
	keys := make(map[string]bool, len(competitionKeys))
	for _, k := range competitionKeys {
		keys[k] = true
	}
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{sources: srcs, matcher: matcher, keys: keys, log: log}
}

// Verify runs one aggregation. Adapter failures degrade the result (fewer
// sources, lower confidence) and land in the per-source reports; the only
// errors returned are invalid filters.
func (a *Aggregator) Verify(ctx context.Context, f models.Filter) (*models.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Competition != "" && !a.keys[f.Competition] {
		return nil, &models.FilterError{Field: "competition", Value: f.Competition, Reason: "unknown competition key"}
	}

	start := time.Now()

	// The fetches are independent, so they run concurrently; results are
	// slotted back into canonical source order before flattening.
	results := make([]sources.Result, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			results[i] = src.Fetch(ctx, f)
		}(i, src)
	}
	wg.Wait()

	used := make([]string, 0, len(a.sources))
	reports := make(map[string]models.SourceReport, len(a.sources))
	counts := make(map[string]int, len(a.sources))
	var tagged []match.TaggedEvent

	for i, src := range a.sources {
		name := src.Name()
		res := results[i]
		used = append(used, name)

		report := models.SourceReport{Count: len(res.Events)}
		if res.Err != nil {
			report.Error = res.Err.Error()
			a.log.Warn("source fetch failed", "source", name, "error", res.Err)
		}
		if f.Debug {
			report.Notes = res.Notes
		}
		reports[name] = report
		counts[name] = len(res.Events)

		for _, ev := range res.Events {
			ev.Source = name
			tagged = append(tagged, match.TaggedEvent{Event: ev, Source: name})
		}
	}

	groups := a.matcher.Group(tagged)
	verified := make([]models.VerifiedEvent, 0, len(groups))
	for _, g := range groups {
		verified = append(verified, models.VerifiedEvent{
			Event:      g.Representative,
			Evidence:   g.Evidence,
			Confidence: Confidence(len(g.Evidence), len(a.sources)),
		})
	}

	// Ascending by kickoff; groups with no parseable kickoff sort last.
	// The stable sort keeps group-formation order among equal keys.
	sort.SliceStable(verified, func(i, j int) bool {
		return kickoffKey(verified[i]) < kickoffKey(verified[j])
	})

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	metrics.GroupsPerRun.Observe(float64(len(groups)))
	a.log.Info("aggregation complete",
		"events", len(tagged),
		"groups", len(groups),
		"duration", time.Since(start))

	return &models.Report{
		Used:    used,
		Results: verified,
		Sources: reports,
		Counts:  counts,
	}, nil
}

func kickoffKey(v models.VerifiedEvent) int64 {
	if v.Kickoff == nil {
		return math.MaxInt64
	}
	return v.Kickoff.Unix()
}
