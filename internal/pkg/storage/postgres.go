package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// RunStore archives aggregation reports for auditing. It is a write-only
// sink: nothing in the matching pipeline ever reads it back, so runs stay
// a pure function of their inputs.
type RunStore struct {
	db *sql.DB
}

func NewRunStore(cfg *config.PostgresConfig) (*RunStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &RunStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL run store initialized")
	return s, nil
}

func (s *RunStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS aggregation_runs (
		id SERIAL PRIMARY KEY,
		team VARCHAR(200) NOT NULL DEFAULT '',
		competition VARCHAR(50) NOT NULL DEFAULT '',
		result_count INT NOT NULL,
		source_counts JSONB NOT NULL,
		report JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_aggregation_runs_created_at ON aggregation_runs(created_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveRun stores one report snapshot.
func (s *RunStore) SaveRun(ctx context.Context, f models.Filter, report *models.Report) error {
	counts, err := json.Marshal(report.Counts)
	if err != nil {
		return fmt.Errorf("failed to marshal counts: %w", err)
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
	INSERT INTO aggregation_runs (team, competition, result_count, source_counts, report)
	VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query, f.Team, f.Competition, len(report.Results), counts, payload); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}
