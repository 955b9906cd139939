package aggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator/match"
	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

type fakeSource struct {
	name   string
	events []models.Event
	err    error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, _ models.Filter) sources.Result {
	return sources.Result{Events: f.events, Err: f.err}
}

func newTestAggregator(srcs ...sources.Source) *Aggregator {
	matcher := match.New(normalize.New(nil), match.DefaultWindow)
	return New(srcs, matcher, []string{"epl", "laliga"}, nil)
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestVerifyCrossSourceAgreement(t *testing.T) {
	// The end-to-end scenario: two sources report the same fixture with
	// swapped team order and kickoffs 15 minutes apart, the third returns
	// nothing.
	agg := newTestAggregator(
		&fakeSource{name: "tsdb", events: []models.Event{
			{Match: "Real Madrid - Barcelona", Kickoff: ts("2025-05-01T20:00:00+00:00")},
		}},
		&fakeSource{name: "sofascore", events: []models.Event{
			{Match: "Barcelona - Real Madrid", Kickoff: ts("2025-05-01T20:15:00+00:00")},
		}},
		&fakeSource{name: "fudbal91"},
	)

	report, err := agg.Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}
	res := report.Results[0]
	if len(res.Evidence) != 2 {
		t.Errorf("evidence = %v, want 2 sources", res.Evidence)
	}
	if res.Confidence != 0.67 {
		t.Errorf("confidence = %v, want 0.67", res.Confidence)
	}
	if res.Match != "Real Madrid - Barcelona" {
		t.Errorf("representative match = %q, want the first source's record", res.Match)
	}
	if report.Counts["fudbal91"] != 0 {
		t.Errorf("counts[fudbal91] = %d, want 0", report.Counts["fudbal91"])
	}
}

func TestVerifyDeterministic(t *testing.T) {
	build := func() *Aggregator {
		return newTestAggregator(
			&fakeSource{name: "tsdb", events: []models.Event{
				{Match: "Arsenal - Chelsea", Kickoff: ts("2025-05-01T20:00:00Z")},
				{Match: "Liverpool - Everton", Kickoff: ts("2025-05-01T18:00:00Z")},
			}},
			&fakeSource{name: "sofascore", events: []models.Event{
				{Match: "Chelsea - Arsenal", Kickoff: ts("2025-05-01T20:10:00Z")},
			}},
			&fakeSource{name: "fudbal91", events: []models.Event{
				{Match: "Liverpool - Everton", Kickoff: ts("2025-05-01T18:05:00Z")},
			}},
		)
	}

	first, err := build().Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := build().Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different reports:\n%+v\n%+v", first, second)
	}
}

func TestVerifyPartialFailure(t *testing.T) {
	agg := newTestAggregator(
		&fakeSource{name: "tsdb", events: []models.Event{
			{Match: "Arsenal - Chelsea", Kickoff: ts("2025-05-01T20:00:00Z")},
		}},
		&fakeSource{name: "sofascore", err: errors.New("connection refused")},
		&fakeSource{name: "fudbal91", events: []models.Event{
			{Match: "Arsenal - Chelsea", Kickoff: ts("2025-05-01T20:00:00Z")},
		}},
	)

	report, err := agg.Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatalf("adapter failure must not fail the aggregation: %v", err)
	}

	if report.Sources["sofascore"].Error == "" {
		t.Error("failed source should carry an error note")
	}
	if report.Sources["sofascore"].Count != 0 {
		t.Errorf("failed source count = %d, want 0", report.Sources["sofascore"].Count)
	}
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}
	if report.Results[0].Confidence != 0.67 {
		t.Errorf("confidence = %v, want 0.67 (failed source still in denominator)", report.Results[0].Confidence)
	}
}

func TestVerifyAllSourcesFail(t *testing.T) {
	agg := newTestAggregator(
		&fakeSource{name: "tsdb", err: errors.New("timeout")},
		&fakeSource{name: "sofascore", err: errors.New("timeout")},
		&fakeSource{name: "fudbal91", err: errors.New("timeout")},
	)

	report, err := agg.Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatalf("total upstream failure is not an error by contract: %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("got %d results, want 0", len(report.Results))
	}
	for _, name := range []string{"tsdb", "sofascore", "fudbal91"} {
		if report.Sources[name].Error == "" {
			t.Errorf("source %s missing error note", name)
		}
	}
}

func TestVerifySortMissingKickoffLast(t *testing.T) {
	agg := newTestAggregator(
		&fakeSource{name: "tsdb", events: []models.Event{
			{Match: "Unknown Time FC - Mystery United"},
			{Match: "Later - Fixture", Kickoff: ts("2025-05-02T20:00:00Z")},
			{Match: "Earlier - Fixture", Kickoff: ts("2025-05-01T10:00:00Z")},
		}},
		&fakeSource{name: "sofascore"},
		&fakeSource{name: "fudbal91"},
	)

	report, err := agg.Verify(context.Background(), models.Filter{})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(report.Results))
	}
	order := []string{"Earlier - Fixture", "Later - Fixture", "Unknown Time FC - Mystery United"}
	for i, want := range order {
		if report.Results[i].Match != want {
			t.Errorf("results[%d] = %q, want %q", i, report.Results[i].Match, want)
		}
	}
}

func TestVerifyInvalidFilter(t *testing.T) {
	agg := newTestAggregator(
		&fakeSource{name: "tsdb"},
		&fakeSource{name: "sofascore"},
		&fakeSource{name: "fudbal91"},
	)

	tests := []struct {
		name   string
		filter models.Filter
		field  string
	}{
		{"malformed date", models.Filter{Date: "01-05-2025"}, "date"},
		{"unknown competition", models.Filter{Competition: "nba"}, "competition"},
		{"negative hours", models.Filter{Hours: intPtr(-5)}, "hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.Verify(context.Background(), tt.filter)
			var fe *models.FilterError
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want FilterError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestVerifyKnownCompetitionAccepted(t *testing.T) {
	agg := newTestAggregator(
		&fakeSource{name: "tsdb"},
		&fakeSource{name: "sofascore"},
		&fakeSource{name: "fudbal91"},
	)

	if _, err := agg.Verify(context.Background(), models.Filter{Competition: "epl"}); err != nil {
		t.Fatalf("known key rejected: %v", err)
	}
}

func intPtr(v int) *int { return &v }
