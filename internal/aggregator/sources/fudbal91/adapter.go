package fudbal91

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/pkg/cache"
	"github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
	"github.com/Vodeneev/matchverify/internal/pkg/timeutil"
)

const SourceName = "fudbal91"

// The site has no stable markup contract, so rows are probed with a set of
// selectors that have held up across layout tweaks.
const (
	rowSelector    = "table tr, .match, .row"
	leagueSelector = ".league, .comp, .competition"
	teamsSelector  = ".teams, .home, .away, .match-name"
	timeSelector   = "time, .kickoff, .ko, .date, .time"
	titleSelector  = "h1, .competition-title, .title"
)

var oddsLabels = []string{"1", "X", "2", "1X", "12", "X2", "O2.5", "U2.5"}

var floatPattern = regexp.MustCompile(`\b\d+\.\d+\b`)

// Adapter scrapes the fudbal91 odds pages: the quick-odds listing by
// default, or a competition page when the filter carries a known key.
type Adapter struct {
	client *sources.Client
	cache  cache.Cache
	ttl    time.Duration
	norm   *normalize.Normalizer
	cfg    *config.Fudbal91Config
	now    func() time.Time
}

func New(client *sources.Client, store cache.Cache, ttl time.Duration, norm *normalize.Normalizer, cfg *config.Fudbal91Config) *Adapter {
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
	pageURL := a.cfg.QuickOddsURL
	if f.Competition != "" {
		if u, ok := a.cfg.Competitions[f.Competition]; ok {
			pageURL = u
		}
	}

	body, err := a.client.Get(ctx, pageURL, nil)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	pageTitle := strings.TrimSpace(doc.Find(titleSelector).First().Text())
	now := a.now()

	var events []models.Event
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		ev, ok := a.parseRow(row, pageTitle, pageURL)
		if !ok {
			return
		}
		if !sources.InWindow(ev.Kickoff, now, f) {
			return
		}
		if !sources.MatchesDate(ev.Kickoff, f) {
			return
		}
		if !sources.MatchesTeam(a.norm, f, ev.Match) {
			return
		}
		events = append(events, ev)
	})

	notes := []string{fmt.Sprintf("rows_kept:%d", len(events)), "page:" + pageURL}
	return events, notes, nil
}

func (a *Adapter) parseRow(row *goquery.Selection, pageTitle, pageURL string) (models.Event, bool) {
	league := strings.TrimSpace(row.Find(leagueSelector).First().Text())
	if league == "" {
		league = pageTitle
	}

	teams := joinText(row.Find(teamsSelector))
	if teams == "" {
		teams = clip(squash(row.Text()), 200)
	}

	kickoff, hasKickoff := a.parseKickoff(row)

	// Rows with neither a recognizable "<home> - <away>" label nor a
	// kickoff are layout noise (headers, nav), not unknown-time fixtures.
	if _, _, splits := normalize.SplitTeams(teams); !splits && !hasKickoff {
		return models.Event{}, false
	}

	ev := models.Event{
		League: league,
		Match:  teams,
		Odds:   parseOdds(row),
		Source: SourceName,
		URL:    pageURL,
	}
	if hasKickoff {
		ev.Kickoff = &kickoff
	}
	return ev, true
}

// parseKickoff prefers the time element's datetime attribute, then its
// text, then a last-resort scan of the whole row.
func (a *Adapter) parseKickoff(row *goquery.Selection) (time.Time, bool) {
	timeEl := row.Find(timeSelector).First()
	koText, hasAttr := timeEl.Attr("datetime")
	if !hasAttr {
		koText = strings.TrimSpace(timeEl.Text())
	}
	if t, ok := timeutil.ParseKickoff(koText); ok {
		return t, true
	}
	return timeutil.ParseKickoff(squash(row.Text()))
}

// parseOdds probes the known outcome labels, then falls back to grabbing a
// bare 1/X/2 price triple from the row cells. Prices stay raw strings;
// odds are enrichment only.
func parseOdds(row *goquery.Selection) map[string]string {
	odds := make(map[string]string)
	for _, lab := range oddsLabels {
		sel := row.Find(fmt.Sprintf("[data-market=%q]", lab))
		if sel.Length() == 0 {
			continue
		}
		if v := strings.TrimSpace(sel.First().Text()); v != "" {
			odds[lab] = v
		}
	}

	if len(odds) == 0 {
		cells := row.Find("td")
		if n := cells.Length(); n > 0 && n <= 10 {
			floats := floatPattern.FindAllString(joinText(cells), -1)
			if len(floats) == 3 {
				odds["1"], odds["X"], odds["2"] = floats[0], floats[1], floats[2]
			}
		}
	}

	if len(odds) == 0 {
		return nil
	}
	return odds
}

func joinText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clip truncates to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
