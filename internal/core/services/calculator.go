package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/cfrxml"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// readabilityMinTokens is the minimum whitespace-delimited token count of
// the extracted text before readability scores are computed. At or below
// this threshold all three scores are absent.
const readabilityMinTokens = 100

// ReferenceCalculator computes per-reference text metrics: it fetches the
// title XML, resolves the reference's subtree, and derives word count and
// readability scores.
type ReferenceCalculator struct {
	client driven.ECFRClient
	scorer driven.ReadabilityScorer
	logger *slog.Logger
}

// NewReferenceCalculator creates a new reference calculator.
func NewReferenceCalculator(client driven.ECFRClient, scorer driven.ReadabilityScorer, logger *slog.Logger) *ReferenceCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceCalculator{
		client: client,
		scorer: scorer,
		logger: logger,
	}
}

// Compute computes metrics for one CFR reference as of one date.
// It implements the per-reference flow:
//  1. Fetch the title XML, narrowed by the reference's locators
//  2. Resolve the target subtree (skipped at part granularity, where the
//     upstream is trusted to have narrowed the response)
//  3. Count words across paragraph text nodes
//  4. Score readability when the full text exceeds the token threshold
//
// Fetch and resolution failures propagate; the caller decides whether they
// abort the agency.
func (c *ReferenceCalculator) Compute(ctx context.Context, date string, ref domain.CFRReference) (domain.ReferenceMetrics, error) {
	var metrics domain.ReferenceMetrics

	xmlText, err := c.client.FetchTitleXML(ctx, date, ref)
	if err != nil {
		return metrics, fmt.Errorf("failed to fetch XML for %s: %w", ref, err)
	}

	doc, err := cfrxml.ParseString(xmlText)
	if err != nil {
		return metrics, fmt.Errorf("failed to parse XML for %s: %w", ref, err)
	}

	target := doc.Root()
	if ref.Part == "" || ref.Section != "" {
		// The upstream response is only trusted to be pre-narrowed at part
		// granularity; everything else resolves through the ancestry path.
		ancestry, err := c.client.FetchAncestry(ctx, date, ref)
		if err != nil {
			return metrics, fmt.Errorf("failed to fetch ancestry for %s: %w", ref, err)
		}
		target, err = cfrxml.Resolve(doc, ancestry)
		if err != nil {
			return metrics, fmt.Errorf("failed to resolve %s: %w", ref, err)
		}
	}

	metrics.WordCount = cfrxml.WordCount(target)

	fullText := target.Text()
	if len(strings.Fields(fullText)) > readabilityMinTokens {
		metrics.FleschKincaid = c.score(c.scorer.FleschKincaid, fullText, "flesch_kincaid", ref)
		metrics.FleschReadingEase = c.score(c.scorer.FleschReadingEase, fullText, "flesch_reading_ease", ref)
		metrics.SMOG = c.score(c.scorer.SMOG, fullText, "smog", ref)
	}

	return metrics, nil
}

// score runs one readability formula and downgrades its failure to an
// absent score. SMOG in particular fails for texts with too few sentences.
func (c *ReferenceCalculator) score(formula func(string) (float64, error), text, name string, ref domain.CFRReference) *float64 {
	value, err := formula(text)
	if err != nil {
		c.logger.Warn("skipping readability score",
			"score", name,
			"reference", ref.String(),
			"error", err,
		)
		return nil
	}
	return &value
}
