package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.MetricsStore = (*MetricsStore)(nil)

// MetricsStore implements driven.MetricsStore using PostgreSQL. It serves
// as the fallback when Redis is not configured.
type MetricsStore struct {
	db *DB
}

// NewMetricsStore creates a new PostgreSQL-backed MetricsStore.
func NewMetricsStore(db *DB) *MetricsStore {
	return &MetricsStore{db: db}
}

// Delete removes an agency's summary. Missing rows are not an error.
func (s *MetricsStore) Delete(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM agency_metrics WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete metrics for %s: %w", slug, err)
	}
	return nil
}

// Set writes an agency's summary, replacing any prior value.
func (s *MetricsStore) Set(ctx context.Context, slug string, summary *domain.AgencySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary for %s: %w", slug, err)
	}

	query := `
		INSERT INTO agency_metrics (slug, summary, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slug) DO UPDATE SET
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, slug, data); err != nil {
		return fmt.Errorf("failed to save summary for %s: %w", slug, err)
	}
	return nil
}

// Get retrieves an agency's summary.
func (s *MetricsStore) Get(ctx context.Context, slug string) (*domain.AgencySummary, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM agency_metrics WHERE slug = $1`, slug).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary for %s: %w", slug, err)
	}

	var summary domain.AgencySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary for %s: %w", slug, err)
	}
	return &summary, nil
}

// MGet retrieves summaries for multiple slugs. Missing rows yield nil
// entries at their positions.
func (s *MetricsStore) MGet(ctx context.Context, slugs []string) ([]*domain.AgencySummary, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, summary FROM agency_metrics WHERE slug = ANY($1)`, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("failed to mget summaries: %w", err)
	}
	defer rows.Close()

	bySlug := make(map[string]*domain.AgencySummary, len(slugs))
	for rows.Next() {
		var slug string
		var data []byte
		if err := rows.Scan(&slug, &data); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		var summary domain.AgencySummary
		if err := json.Unmarshal(data, &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary for %s: %w", slug, err)
		}
		bySlug[slug] = &summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}

	summaries := make([]*domain.AgencySummary, len(slugs))
	for i, slug := range slugs {
		summaries[i] = bySlug[slug]
	}
	return summaries, nil
}

// Ping checks if the database is reachable.
func (s *MetricsStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
