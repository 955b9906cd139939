package aggregator

import (
	"fmt"
	"log/slog"

	"github.com/Vodeneev/matchverify/internal/aggregator/match"
	"github.com/Vodeneev/matchverify/internal/aggregator/normalize"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources/fudbal91"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources/sofascore"
	"github.com/Vodeneev/matchverify/internal/aggregator/sources/thesportsdb"
	"github.com/Vodeneev/matchverify/internal/pkg/cache"
	"github.com/Vodeneev/matchverify/internal/pkg/config"
)

// BuildFromConfig wires the canonical three-source aggregator: the
// structured database first, the JSON API second, the scraped odds site
// third. That order is load-bearing (see New).
func BuildFromConfig(cfg *config.Config, log *slog.Logger) (*Aggregator, error) {
	var aliases *normalize.Aliases
	if cfg.Aggregator.AliasesPath != "" {
		var err error
		aliases, err = normalize.LoadAliases(cfg.Aggregator.AliasesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load aliases: %w", err)
		}
	}
	norm := normalize.New(aliases)

	client := sources.NewClient(&cfg.Sources)
	ttl := cfg.Cache.TTL

	// Each adapter owns a cache instance. With Redis configured they share
	// the client; cache keys already carry the source name.
	newCache := func() cache.Cache { return cache.NewMemory() }
	if cfg.Cache.RedisAddr != "" {
		shared, err := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Warn("Redis cache unavailable, falling back to in-process cache", "error", err)
		} else {
			newCache = func() cache.Cache { return shared }
		}
	}

	srcs := []sources.Source{
		thesportsdb.New(client, newCache(), ttl, norm, &cfg.Sources.TheSportsDB),
		sofascore.New(client, newCache(), ttl, norm, &cfg.Sources.SofaScore),
		fudbal91.New(client, newCache(), ttl, norm, &cfg.Sources.Fudbal91),
	}

	matcher := match.New(norm, cfg.Aggregator.MatchWindow)
	return New(srcs, matcher, cfg.CompetitionKeys(), log), nil
}
