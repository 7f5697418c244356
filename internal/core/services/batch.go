package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// BatchOrchestrator drives agency aggregation over the full agency list
// under a bounded-concurrency policy and persists each summary as it
// completes.
type BatchOrchestrator struct {
	aggregator *AgencyAggregator
	store      driven.MetricsStore
	logger     *slog.Logger
}

// BatchOrchestratorConfig holds dependencies for BatchOrchestrator.
type BatchOrchestratorConfig struct {
	Aggregator *AgencyAggregator
	Store      driven.MetricsStore
	Logger     *slog.Logger
}

// NewBatchOrchestrator creates a new batch orchestrator.
func NewBatchOrchestrator(cfg BatchOrchestratorConfig) *BatchOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchOrchestrator{
		aggregator: cfg.Aggregator,
		store:      cfg.Store,
		logger:     logger,
	}
}

// Run aggregates every agency and persists the summaries. The flow:
//  1. Delete every agency's prior entry, so a partial prior run cannot
//     leave stale data mixed with fresh data
//  2. Admit agencies through a counting semaphore of size maxConcurrency
//  3. Per admitted agency: aggregate, then write the summary under its slug,
//     then release the slot
//
// One agency's failure leaves its key absent and does not affect the others.
// The returned map (slug to total word count) is for run-level reporting;
// the authoritative detail lives in the store.
func (o *BatchOrchestrator) Run(ctx context.Context, agencies []domain.Agency, issueDates map[int]string, maxConcurrency int64) (map[string]int, error) {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	o.logger.Info("resetting agency metrics", "agencies", len(agencies))
	for _, agency := range agencies {
		if err := o.store.Delete(ctx, agency.Slug); err != nil {
			return nil, fmt.Errorf("failed to reset metrics for %s: %w", agency.Slug, err)
		}
	}

	o.logger.Info("starting word count calculation", "agencies", len(agencies), "max_concurrency", maxConcurrency)

	sem := semaphore.NewWeighted(maxConcurrency)
	var wg sync.WaitGroup

	var mu sync.Mutex
	wordCounts := make(map[string]int, len(agencies))

	for _, agency := range agencies {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled mid-run. Agencies already written stay
			// fresh; the rest keep their cleared keys, so a rerun is safe.
			break
		}

		wg.Add(1)
		go func(agency domain.Agency) {
			defer wg.Done()
			defer sem.Release(1)

			o.processAgency(ctx, agency, issueDates, wordCounts, &mu)
		}(agency)
	}

	wg.Wait()
	o.logger.Info("word count calculation completed", "completed", len(wordCounts), "agencies", len(agencies))

	return wordCounts, ctx.Err()
}

func (o *BatchOrchestrator) processAgency(ctx context.Context, agency domain.Agency, issueDates map[int]string, wordCounts map[string]int, mu *sync.Mutex) {
	o.logger.Info("starting agency", "agency", agency.Name, "references", len(agency.CFRReferences))

	summary, err := o.aggregator.Aggregate(ctx, agency, issueDates)
	if err != nil {
		// The pre-step already cleared this agency's key; leaving it absent
		// is the failure signal downstream consumers observe.
		o.logger.Error("agency aggregation failed", "agency", agency.Name, "slug", agency.Slug, "error", err)
		return
	}

	if err := o.store.Set(ctx, agency.Slug, summary); err != nil {
		o.logger.Error("failed to persist agency summary", "agency", agency.Name, "slug", agency.Slug, "error", err)
		return
	}

	mu.Lock()
	wordCounts[agency.Slug] = summary.TotalWordCount
	mu.Unlock()

	o.logger.Info("completed agency", "agency", agency.Name, "total_word_count", summary.TotalWordCount)
}
