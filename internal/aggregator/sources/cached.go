package sources

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Vodeneev/matchverify/internal/pkg/cache"
	"github.com/Vodeneev/matchverify/internal/pkg/metrics"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// FetchCached runs an adapter fetch through its response cache. A hit
// returns the stored event slice unchanged, so callers cannot tell it from
// a live fetch. Failed fetches are never cached.
func FetchCached(ctx context.Context, store cache.Cache, ttl time.Duration, source string, f models.Filter,
	fetch func(ctx context.Context) ([]models.Event, []string, error)) Result {

	key := CacheKey(source, f)
	if !f.NoCache {
		if payload, ok := store.Get(ctx, key); ok {
			var events []models.Event
			if err := json.Unmarshal(payload, &events); err == nil {
				metrics.CacheHits.WithLabelValues(source).Inc()
				res := Result{Events: events}
				if f.Debug {
					res.Notes = []string{"cache_hit"}
				}
				return res
			}
		}
	}

	events, notes, err := fetch(ctx)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(source, "error").Inc()
		res := Result{Err: err}
		if f.Debug {
			res.Notes = notes
		}
		return res
	}
	metrics.FetchTotal.WithLabelValues(source, "ok").Inc()

	if payload, err := json.Marshal(events); err == nil {
		store.Set(ctx, key, payload, ttl)
	}

	res := Result{Events: events}
	if f.Debug {
		res.Notes = notes
	}
	return res
}
