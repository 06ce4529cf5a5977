// Package history is a thin, best-effort persistence layer for past run
// digests. It is modeled directly on the teacher's internal/db.PostgresStore
// — same Connect/InitSchema shape, same pgxpool-backed access — but stores
// RunSummary rows instead of Bitcoin forensics rows. It deliberately does
// not grow into the relational persistence/browse API that spec.md §1
// treats as an external collaborator: one row per run, fetched by ID.
package history

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rawblock/muling-graph-engine/pkg/models"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pooled connection to Postgres and verifies it with a ping.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the run_summaries table if it doesn't already exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// SaveRun persists a run digest, upserting on run_id.
func (s *Store) SaveRun(ctx context.Context, summary models.RunSummary) error {
	const sql = `
		INSERT INTO run_summaries
			(run_id, submitted_at, node_count, edge_count, suspicious_count, ring_count, processing_time_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO UPDATE SET
			node_count = EXCLUDED.node_count,
			edge_count = EXCLUDED.edge_count,
			suspicious_count = EXCLUDED.suspicious_count,
			ring_count = EXCLUDED.ring_count,
			processing_time_seconds = EXCLUDED.processing_time_seconds;
	`
	_, err := s.pool.Exec(ctx, sql,
		summary.RunID,
		summary.SubmittedAt,
		summary.NodeCount,
		summary.EdgeCount,
		summary.SuspiciousCount,
		summary.RingCount,
		summary.ProcessingTimeSeconds,
	)
	return err
}

// GetRun fetches a previously persisted run digest by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*models.RunSummary, error) {
	const sql = `
		SELECT run_id, submitted_at, node_count, edge_count, suspicious_count, ring_count, processing_time_seconds
		FROM run_summaries WHERE run_id = $1;
	`
	var summary models.RunSummary
	err := s.pool.QueryRow(ctx, sql, runID).Scan(
		&summary.RunID,
		&summary.SubmittedAt,
		&summary.NodeCount,
		&summary.EdgeCount,
		&summary.SuspiciousCount,
		&summary.RingCount,
		&summary.ProcessingTimeSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
