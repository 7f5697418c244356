package mocks

import (
	"context"
	"sync"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
)

// MockMetricsStore is an in-memory MetricsStore for testing
type MockMetricsStore struct {
	mu        sync.RWMutex
	summaries map[string]*domain.AgencySummary

	// FailSlugs lists slugs whose writes should fail
	FailSlugs map[string]error
}

// NewMockMetricsStore creates a new MockMetricsStore
func NewMockMetricsStore() *MockMetricsStore {
	return &MockMetricsStore{
		summaries: make(map[string]*domain.AgencySummary),
	}
}

func (m *MockMetricsStore) Delete(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.summaries, slug)
	return nil
}

func (m *MockMetricsStore) Set(ctx context.Context, slug string, summary *domain.AgencySummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailSlugs[slug]; ok {
		return err
	}
	m.summaries[slug] = summary
	return nil
}

func (m *MockMetricsStore) Get(ctx context.Context, slug string) (*domain.AgencySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	summary, ok := m.summaries[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return summary, nil
}

func (m *MockMetricsStore) MGet(ctx context.Context, slugs []string) ([]*domain.AgencySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]*domain.AgencySummary, len(slugs))
	for i, slug := range slugs {
		results[i] = m.summaries[slug]
	}
	return results, nil
}

func (m *MockMetricsStore) Ping(ctx context.Context) error {
	return nil
}
