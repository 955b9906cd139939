package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
health:
  port: 8080
sources:
  user_agent: "test-agent"
  timeout: 3s
  rate_per_second: 2
  thesportsdb:
    base_url: https://example.com/api/v1/json
    api_key: "123"
    competitions:
      epl: ["Premier League"]
  sofascore:
    base_url: https://example.com
    competitions:
      epl: ["premier league"]
      laliga: ["laliga"]
  fudbal91:
    quick_odds_url: https://example.com/kvote
    competitions:
      serbia: https://example.com/takmicenje/1
cache:
  ttl: 90s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Health.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Health.Port)
	}
	if cfg.Sources.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", cfg.Sources.Timeout)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("cache ttl = %v, want 90s", cfg.Cache.TTL)
	}
	if got := cfg.Sources.TheSportsDB.Competitions["epl"]; len(got) != 1 || got[0] != "Premier League" {
		t.Errorf("thesportsdb epl = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Sources.Timeout != 12*time.Second {
		t.Errorf("default timeout = %v, want 12s", cfg.Sources.Timeout)
	}
	if cfg.Sources.RatePerSecond != 4 {
		t.Errorf("default rate = %v, want 4", cfg.Sources.RatePerSecond)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Errorf("default cache ttl = %v, want 2m", cfg.Cache.TTL)
	}
	if cfg.Aggregator.MatchWindow != 30*time.Minute {
		t.Errorf("default match window = %v, want 30m", cfg.Aggregator.MatchWindow)
	}
	if cfg.Health.ReadHeaderTimeout != 10*time.Second {
		t.Errorf("default read header timeout = %v, want 10s", cfg.Health.ReadHeaderTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestCompetitionKeys(t *testing.T) {
	cfg := &Config{}
	cfg.Sources.TheSportsDB.Competitions = map[string][]string{"epl": nil, "laliga": nil}
	cfg.Sources.SofaScore.Competitions = map[string][]string{"epl": nil, "ucl": nil}
	cfg.Sources.Fudbal91.Competitions = map[string]string{"serbia": ""}

	keys := cfg.CompetitionKeys()
	sort.Strings(keys)

	want := []string{"epl", "laliga", "serbia", "ucl"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
