package sources

import (
	"testing"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

func intPtr(v int) *int { return &v }

func TestInWindow(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	tests := []struct {
		name    string
		kickoff *time.Time
		filter  models.Filter
		want    bool
	}{
		{"nil kickoff always passes", nil, models.Filter{}, true},
		{"inside default window", at(time.Hour), models.Filter{}, true},
		{"already started", at(-time.Hour), models.Filter{}, false},
		{"at default window end", at(7 * 24 * time.Hour), models.Filter{}, true},
		{"past default window end", at(7*24*time.Hour + time.Minute), models.Filter{}, false},
		{"inside custom window", at(82 * time.Hour), models.Filter{Hours: intPtr(82)}, true},
		{"past custom window", at(100 * time.Hour), models.Filter{Hours: intPtr(82)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindow(tt.kickoff, now, tt.filter); got != tt.want {
				t.Errorf("InWindow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesTeam(t *testing.T) {
	n := normalize.New(normalize.NewAliases(map[string]string{
		"man city": "manchester city",
	}, nil))

	tests := []struct {
		name   string
		filter models.Filter
		match  string
		want   bool
	}{
		{"no filter", models.Filter{}, "Arsenal - Chelsea", true},
		{"substring hit", models.Filter{Team: "real"}, "Real Madrid - Barcelona", true},
		{"substring miss", models.Filter{Team: "liverpool"}, "Real Madrid - Barcelona", false},
		{"alias in query", models.Filter{Team: "Man City"}, "Manchester City - Arsenal", true},
		{"exact full token", models.Filter{Team: "Real Madrid", Exact: true}, "Real Madrid - Barcelona", true},
		{"exact partial token", models.Filter{Team: "real", Exact: true}, "Real Madrid - Barcelona", false},
		{"exact unsplittable label", models.Filter{Team: "arsenal chelsea", Exact: true}, "Arsenal Chelsea", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesTeam(n, tt.filter, tt.match); got != tt.want {
				t.Errorf("MatchesTeam(%q, %q) = %v, want %v", tt.filter.Team, tt.match, got, tt.want)
			}
		})
	}
}

func TestMatchesDate(t *testing.T) {
	kickoff := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		kickoff *time.Time
		date    string
		want    bool
	}{
		{"no filter", &kickoff, "", true},
		{"same day", &kickoff, "2025-05-01", true},
		{"other day", &kickoff, "2025-05-02", false},
		{"nil kickoff passes", nil, "2025-05-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesDate(tt.kickoff, models.Filter{Date: tt.date}); got != tt.want {
				t.Errorf("MatchesDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	base := CacheKey("tsdb", models.Filter{Team: "arsenal"})

	variants := []models.Filter{
		{Team: "chelsea"},
		{Team: "arsenal", Competition: "epl"},
		{Team: "arsenal", Date: "2025-05-01"},
		{Team: "arsenal", Hours: intPtr(6)},
		{Team: "arsenal", Exact: true},
	}
	for _, f := range variants {
		if CacheKey("tsdb", f) == base {
			t.Errorf("filter %+v collides with the base key", f)
		}
	}

	if CacheKey("sofascore", models.Filter{Team: "arsenal"}) == base {
		t.Error("different sources must not share cache keys")
	}
}
