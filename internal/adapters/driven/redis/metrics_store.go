package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.MetricsStore = (*MetricsStore)(nil)

// MetricsStore implements driven.MetricsStore using Redis.
// Summaries are stored as JSON strings keyed directly by agency slug.
type MetricsStore struct {
	client *redis.Client
}

// NewMetricsStore creates a new Redis-backed MetricsStore.
func NewMetricsStore(client *redis.Client) *MetricsStore {
	return &MetricsStore{client: client}
}

// Delete removes an agency's summary. Missing keys are not an error.
func (s *MetricsStore) Delete(ctx context.Context, slug string) error {
	if err := s.client.Del(ctx, slug).Err(); err != nil {
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
	if err := s.client.Set(ctx, slug, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save summary for %s: %w", slug, err)
	}
	return nil
}

// Get retrieves an agency's summary.
func (s *MetricsStore) Get(ctx context.Context, slug string) (*domain.AgencySummary, error) {
	data, err := s.client.Get(ctx, slug).Bytes()
	if err == redis.Nil {
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

// MGet retrieves summaries for multiple slugs in one round trip. Absent
// keys yield nil entries at their positions.
func (s *MetricsStore) MGet(ctx context.Context, slugs []string) ([]*domain.AgencySummary, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, slugs...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget summaries: %w", err)
	}

	summaries := make([]*domain.AgencySummary, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type for %s", slugs[i])
		}
		var summary domain.AgencySummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary for %s: %w", slugs[i], err)
		}
		summaries[i] = &summary
	}
	return summaries, nil
}

// Ping checks if Redis is reachable.
func (s *MetricsStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
