package sources

import (
	"context"

	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// Result is what one adapter contributes to a run. Err is data, not control
// flow: the aggregator records it in the per-source report and keeps going
// with whatever the other adapters returned.
type Result struct {
	Events []models.Event
	Err    error
	Notes  []string // diagnostic notes, populated in debug mode
}

// Source wraps one external provider behind a uniform fetch interface.
// Implementations apply the time-window and team filters themselves and
// must not panic or fail the aggregation on upstream trouble.
type Source interface {
	Name() string
	Fetch(ctx context.Context, f models.Filter) Result
}
