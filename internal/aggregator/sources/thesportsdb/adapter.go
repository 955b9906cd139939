package thesportsdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/pkg/cache"
	"github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
	"github.com/Vodeneev/matchverify/internal/pkg/timeutil"
)

const SourceName = "tsdb"

const (
	teamEventsLimit   = 5
	leagueEventsLimit = 10
)

// Adapter wraps TheSportsDB, the structured sports database. Queries resolve
// a team or league to a provider ID first, then pull its upcoming events.
type Adapter struct {
	client *sources.Client
	cache  cache.Cache
	ttl    time.Duration
	norm   *normalize.Normalizer
	cfg    *config.TheSportsDBConfig
	now    func() time.Time
}

func New(client *sources.Client, store cache.Cache, ttl time.Duration, norm *normalize.Normalizer, cfg *config.TheSportsDBConfig) *Adapter {
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
	var notes []string
	var raw []apiEvent

	switch {
	case f.Team != "":
		teamID, err := a.findTeam(ctx, f.Team)
		if err != nil {
			return nil, notes, err
		}
		if teamID == "" {
			notes = append(notes, "team_not_found")
			return nil, notes, nil
		}
		notes = append(notes, "team_id:"+teamID)
		raw, err = a.nextEvents(ctx, "eventsnext.php", teamID, teamEventsLimit)
		if err != nil {
			return nil, notes, err
		}
	case f.Competition != "":
		leagueID, err := a.findLeague(ctx, f.Competition)
		if err != nil {
			return nil, notes, err
		}
		if leagueID == "" {
			notes = append(notes, "league_not_found")
			return nil, notes, nil
		}
		notes = append(notes, "league_id:"+leagueID)
		raw, err = a.nextEvents(ctx, "eventsnextleague.php", leagueID, leagueEventsLimit)
		if err != nil {
			return nil, notes, err
		}
	default:
		// The provider has no "everything upcoming" endpoint; without a
		// team or competition there is nothing useful to ask it.
		notes = append(notes, "team_or_competition_required")
		return nil, notes, nil
	}

	now := a.now()
	var events []models.Event
	for _, ev := range raw {
		e := a.convert(ev)
		if !sources.InWindow(e.Kickoff, now, f) {
			continue
		}
		if !sources.MatchesDate(e.Kickoff, f) {
			continue
		}
		if !sources.MatchesTeam(a.norm, f, e.Match) {
			continue
		}
		events = append(events, e)
	}
	return events, notes, nil
}

// findTeam resolves a team name to the provider's idTeam: exact
// case-insensitive match first, else the first search hit.
func (a *Adapter) findTeam(ctx context.Context, team string) (string, error) {
	var resp teamsResponse
	if err := a.client.GetJSON(ctx, a.endpoint("searchteams.php"), url.Values{"t": {team}}, &resp); err != nil {
		return "", fmt.Errorf("team search failed: %w", err)
	}
	if len(resp.Teams) == 0 {
		return "", nil
	}
	want := normalize.Fold(team)
	for _, t := range resp.Teams {
		if normalize.Fold(t.Name) == want {
			return t.ID, nil
		}
	}
	return resp.Teams[0].ID, nil
}

// findLeague resolves a competition key via the configured candidate names:
// exact canonicalized match first, then substring. Canonicalization applies
// the competition alias table, so a provider's sponsored or abbreviated
// league name still resolves.
func (a *Adapter) findLeague(ctx context.Context, key string) (string, error) {
	candidates := a.cfg.Competitions[key]
	if len(candidates) == 0 {
		return "", nil
	}

	var resp leaguesResponse
	if err := a.client.GetJSON(ctx, a.endpoint("search_all_leagues.php"), url.Values{"s": {"Soccer"}}, &resp); err != nil {
		return "", fmt.Errorf("league search failed: %w", err)
	}

	for _, want := range candidates {
		w := a.norm.Competition(want)
		for _, lg := range resp.Countries {
			if a.norm.Competition(lg.Name) == w {
				return lg.ID, nil
			}
		}
	}
	for _, want := range candidates {
		w := a.norm.Competition(want)
		for _, lg := range resp.Countries {
			if strings.Contains(a.norm.Competition(lg.Name), w) {
				return lg.ID, nil
			}
		}
	}
	return "", nil
}

func (a *Adapter) nextEvents(ctx context.Context, path, id string, limit int) ([]apiEvent, error) {
	var resp eventsResponse
	if err := a.client.GetJSON(ctx, a.endpoint(path), url.Values{"id": {id}}, &resp); err != nil {
		return nil, fmt.Errorf("events fetch failed: %w", err)
	}
	events := resp.Events
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (a *Adapter) convert(ev apiEvent) models.Event {
	match := ev.Name
	if ev.HomeTeam != "" && ev.AwayTeam != "" {
		match = ev.HomeTeam + " - " + ev.AwayTeam
	}

	var kickoff *time.Time
	if t, ok := timeutil.ParseKickoff(ev.Timestamp); ok {
		kickoff = &t
	} else if t, ok := timeutil.ParseKickoff(ev.Date + " " + ev.Time); ok {
		kickoff = &t
	}

	return models.Event{
		League:  ev.League,
		Match:   match,
		Kickoff: kickoff,
		Source:  SourceName,
		EventID: ev.ID,
	}
}

func (a *Adapter) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(a.cfg.BaseURL, "/"), a.cfg.APIKey, path)
}
