package driven

import (
	"context"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
)

// MetricsStore persists agency summaries keyed by agency slug. Each batch
// run deletes every key up front and writes each summary exactly once; an
// absent key is the observable failure signal for that agency's run.
type MetricsStore interface {
	// Delete removes the summary for a slug. Deleting an absent key is not an error.
	Delete(ctx context.Context, slug string) error

	// Set writes a summary, fully replacing any prior value for the slug.
	Set(ctx context.Context, slug string, summary *domain.AgencySummary) error

	// Get retrieves the summary for a slug. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, slug string) (*domain.AgencySummary, error)

	// MGet retrieves summaries for multiple slugs in one call. The result is
	// positional; absent keys yield nil entries.
	MGet(ctx context.Context, slugs []string) ([]*domain.AgencySummary, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error
}
