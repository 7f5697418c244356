package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
)

// AgencyAggregator folds per-reference metrics into a weighted agency-level
// summary. Aggregation of one agency is sequential: references are processed
// in input order, one at a time.
type AgencyAggregator struct {
	calculator *ReferenceCalculator
	logger     *slog.Logger
}

// NewAgencyAggregator creates a new agency aggregator.
func NewAgencyAggregator(calculator *ReferenceCalculator, logger *slog.Logger) *AgencyAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &AgencyAggregator{
		calculator: calculator,
		logger:     logger,
	}
}

// Aggregate computes the summary for one agency. issueDates maps title
// number to that title's latest issue date; it is fetched once per batch run
// and shared read-only across workers.
//
// Aggregation is fail-fast: the first reference that cannot be fetched or
// resolved aborts the whole agency, discarding metrics computed so far.
func (a *AgencyAggregator) Aggregate(ctx context.Context, agency domain.Agency, issueDates map[int]string) (*domain.AgencySummary, error) {
	summary := &domain.AgencySummary{
		References: make([]domain.SummaryReference, 0, len(agency.CFRReferences)),
	}

	var fleschKincaid, fleschReadingEase, smog weightedMean

	for _, ref := range agency.CFRReferences {
		date, ok := issueDates[ref.Title]
		if !ok {
			return nil, fmt.Errorf("%w %d (agency %s)", domain.ErrTitleDateUnknown, ref.Title, agency.Slug)
		}

		metrics, err := a.calculator.Compute(ctx, date, ref)
		if err != nil {
			return nil, fmt.Errorf("agency %s: %w", agency.Slug, err)
		}

		summary.TotalWordCount += metrics.WordCount
		summary.References = append(summary.References, domain.SummaryReference{
			CFRReference:     ref,
			ReferenceMetrics: metrics,
		})

		fleschKincaid.add(metrics.FleschKincaid, metrics.WordCount)
		fleschReadingEase.add(metrics.FleschReadingEase, metrics.WordCount)
		smog.add(metrics.SMOG, metrics.WordCount)
	}

	summary.AverageFleschKincaid = fleschKincaid.average()
	summary.AverageFleschReadingEase = fleschReadingEase.average()
	summary.AverageSMOG = smog.average()

	return summary, nil
}

// weightedMean accumulates a word-count-weighted mean for one readability
// metric. Weights are per-metric: a reference contributes only to the
// metrics it actually has.
type weightedMean struct {
	sum    float64
	weight float64
}

func (m *weightedMean) add(score *float64, wordCount int) {
	if score == nil {
		return
	}
	m.sum += *score * float64(wordCount)
	m.weight += float64(wordCount)
}

func (m *weightedMean) average() *float64 {
	if m.weight <= 0 {
		return nil
	}
	avg := m.sum / m.weight
	return &avg
}
