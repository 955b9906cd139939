package cache

import (
	"context"
	"time"
)

// Cache is a short-lived response cache keyed by effective query parameters.
// Each adapter owns its instance, so tests can construct fresh adapters with
// no cross-test leakage. A concurrent race on Set is last-writer-wins; the
// worst case is a redundant upstream fetch, never corrupted data.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

// None is the bypass cache: always misses, never stores.
type None struct{}

func (None) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (None) Set(context.Context, string, []byte, time.Duration) {}
