package sofascore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/pkg/cache"
	"github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
	"github.com/Vodeneev/matchverify/internal/pkg/timeutil"
)

const SourceName = "sofascore"

// Adapter wraps the SofaScore public JSON API. The schedule endpoint is
// per-day, so a window query walks every calendar day it covers and merges
// the results. Odds are not exposed publicly; events carry fixtures only.
type Adapter struct {
	client *sources.Client
	cache  cache.Cache
	ttl    time.Duration
	norm   *normalize.Normalizer
	cfg    *config.SofaScoreConfig
	now    func() time.Time
}

func New(client *sources.Client, store cache.Cache, ttl time.Duration, norm *normalize.Normalizer, cfg *config.SofaScoreConfig) *Adapter {
	return &Adapter{
		client: client,
		cache:  store,
		ttl:    ttl,
		norm:   norm,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (a *Adapter) Name() string { return SourceName }

func (a *Adapter) Fetch(ctx context.Context, f models.Filter) sources.Result {
	return sources.FetchCached(ctx, a.cache, a.ttl, SourceName, f, func(ctx context.Context) ([]models.Event, []string, error) {
		return a.fetch(ctx, f)
	})
}

func (a *Adapter) fetch(ctx context.Context, f models.Filter) ([]models.Event, []string, error) {
	now := a.now()
	days := a.days(f, now)
	compNames := a.cfg.Competitions[f.Competition]

	var (
		events  []models.Event
		notes   []string
		failed  int
		lastErr error
	)

	for _, day := range days {
		dayURL := fmt.Sprintf("%s/sport/football/scheduled-events/%s", strings.TrimRight(a.cfg.BaseURL, "/"), day)
		var resp scheduledResponse
		if err := a.client.GetJSON(ctx, dayURL, nil, &resp); err != nil {
			notes = append(notes, "no_data:"+day)
			failed++
			lastErr = err
			continue
		}
		notes = append(notes, fmt.Sprintf("raw_count:%s:%d", day, len(resp.Events)))

		for _, ev := range resp.Events {
			e := a.convert(ev, dayURL)
			if f.Competition != "" && !a.matchesCompetition(compNames, ev.Tournament.Name, ev.Tournament.Category.Name) {
				continue
			}
			if !sources.InWindow(e.Kickoff, now, f) {
				continue
			}
			if !sources.MatchesTeam(a.norm, f, e.Match) {
				continue
			}
			events = append(events, e)
		}
	}

	if failed == len(days) && len(days) > 0 {
		return nil, notes, fmt.Errorf("all %d day fetches failed: %w", len(days), lastErr)
	}
	return events, notes, nil
}

// days lists the calendar days covered by the filter window, or just the
// caller's explicit date.
func (a *Adapter) days(f models.Filter, now time.Time) []string {
	if f.Date != "" {
		return []string{f.Date}
	}
	end := f.WindowEnd(now)
	var days []string
	for d := now.UTC().Truncate(24 * time.Hour); !d.After(end); d = d.Add(24 * time.Hour) {
		days = append(days, d.Format("2006-01-02"))
	}
	return days
}

func (a *Adapter) convert(ev scheduledEvent, dayURL string) models.Event {
	var kickoff *time.Time
	if ev.StartTimestamp > 0 {
		t := timeutil.FromUnix(ev.StartTimestamp)
		kickoff = &t
	}

	league := strings.Trim(ev.Tournament.Category.Name+" - "+ev.Tournament.Name, " -")

	return models.Event{
		League:       league,
		Match:        ev.HomeTeam.Name + " - " + ev.AwayTeam.Name,
		Kickoff:      kickoff,
		Source:       SourceName,
		URL:          dayURL,
		RawCategory:  ev.Tournament.Category.Name,
		EventID:      fmt.Sprintf("%d", ev.ID),
		RawTimestamp: ev.StartTimestamp,
	}
}

// matchesCompetition keeps an event when any configured tournament name
// substring appears in the tournament or category name. Both sides go
// through competition canonicalization, so alias table entries (sponsor
// suffixes, abbreviations) count as matches.
func (a *Adapter) matchesCompetition(wanted []string, names ...string) bool {
	if len(wanted) == 0 {
		return false
	}
	haystack := a.norm.Competition(strings.Join(names, " "))
	for _, w := range wanted {
		if strings.Contains(haystack, a.norm.Competition(w)) {
			return true
		}
	}
	return false
}
