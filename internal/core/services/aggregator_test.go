package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven/mocks"
)

// markerScorer scores by marker word so different references can receive
// different scores from one scorer.
type markerScorer struct {
	scores map[string]float64
}

func (s *markerScorer) score(text string) (float64, error) {
	for marker, score := range s.scores {
		if strings.Contains(text, marker) {
			return score, nil
		}
	}
	return 0, errors.New("no marker matched")
}

func (s *markerScorer) FleschKincaid(text string) (float64, error)     { return s.score(text) }
func (s *markerScorer) FleschReadingEase(text string) (float64, error) { return s.score(text) }
func (s *markerScorer) SMOG(text string) (float64, error)              { return s.score(text) }

// titleIssueDates covers titles 1-50 with a fixed date.
func titleIssueDates() map[int]string {
	dates := make(map[int]string)
	for i := 1; i <= 50; i++ {
		dates[i] = "2025-01-01"
	}
	return dates
}

func TestAggregate_WeightedAverages(t *testing.T) {
	// Reference 1: 50 paragraph words plus heading filler to pass the
	// readability gate. Reference 2: 150 paragraph words.
	client := &mocks.MockECFRClient{
		FetchTitleXMLFn: func(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
			switch ref.Title {
			case 1:
				return `<DIV5 TYPE="PART" N="1"><HEAD>` + words(60) + `</HEAD><P>alpha ` + words(49) + `</P></DIV5>`, nil
			default:
				return `<DIV5 TYPE="PART" N="2"><P>beta ` + words(149) + `</P></DIV5>`, nil
			}
		},
	}
	scorer := &markerScorer{scores: map[string]float64{"alpha": 8.0, "beta": 10.0}}
	aggregator := NewAgencyAggregator(NewReferenceCalculator(client, scorer, nil), nil)

	agency := domain.Agency{
		Slug: "test-agency",
		Name: "Test Agency",
		CFRReferences: []domain.CFRReference{
			{Title: 1, Part: "1"},
			{Title: 2, Part: "2"},
		},
	}

	summary, err := aggregator.Aggregate(context.Background(), agency, titleIssueDates())
	require.NoError(t, err)

	assert.Equal(t, 200, summary.TotalWordCount)

	// (8.0*50 + 10.0*150) / 200 = 9.5
	require.NotNil(t, summary.AverageFleschKincaid)
	assert.InDelta(t, 9.5, *summary.AverageFleschKincaid, 0.0001)

	require.Len(t, summary.References, 2)
	assert.Equal(t, 1, summary.References[0].Title, "reference order must match input order")
	assert.Equal(t, 2, summary.References[1].Title)
	assert.Equal(t, 50, summary.References[0].WordCount)
	assert.Equal(t, 150, summary.References[1].WordCount)
}

func TestAggregate_NoScoresYieldsAbsentAverages(t *testing.T) {
	client := &mocks.MockECFRClient{
		FetchTitleXMLFn: func(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
			return `<DIV5 TYPE="PART" N="1"><P>short text only</P></DIV5>`, nil
		},
	}
	aggregator := NewAgencyAggregator(NewReferenceCalculator(client, &mocks.MockScorer{}, nil), nil)

	agency := domain.Agency{
		Slug:          "small-agency",
		CFRReferences: []domain.CFRReference{{Title: 3, Part: "1"}},
	}

	summary, err := aggregator.Aggregate(context.Background(), agency, titleIssueDates())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalWordCount)
	assert.Nil(t, summary.AverageFleschKincaid)
	assert.Nil(t, summary.AverageFleschReadingEase)
	assert.Nil(t, summary.AverageSMOG)
}

func TestAggregate_NoReferences(t *testing.T) {
	aggregator := NewAgencyAggregator(NewReferenceCalculator(&mocks.MockECFRClient{}, &mocks.MockScorer{}, nil), nil)

	summary, err := aggregator.Aggregate(context.Background(), domain.Agency{Slug: "empty"}, titleIssueDates())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalWordCount)
	assert.Empty(t, summary.References)
	assert.Nil(t, summary.AverageFleschKincaid)
}

func TestAggregate_FailFastOnReferenceFailure(t *testing.T) {
	fetchErr := errors.New("upstream down")
	client := &mocks.MockECFRClient{
		FetchTitleXMLFn: func(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
			if ref.Title == 2 {
				return "", fetchErr
			}
			return `<DIV5 TYPE="PART" N="1"><P>fine</P></DIV5>`, nil
		},
	}
	aggregator := NewAgencyAggregator(NewReferenceCalculator(client, &mocks.MockScorer{}, nil), nil)

	agency := domain.Agency{
		Slug: "failing-agency",
		CFRReferences: []domain.CFRReference{
			{Title: 1, Part: "1"},
			{Title: 2, Part: "2"},
			{Title: 3, Part: "3"},
		},
	}

	_, err := aggregator.Aggregate(context.Background(), agency, titleIssueDates())
	require.ErrorIs(t, err, fetchErr)
}

func TestAggregate_UnknownTitleDate(t *testing.T) {
	aggregator := NewAgencyAggregator(NewReferenceCalculator(&mocks.MockECFRClient{}, &mocks.MockScorer{}, nil), nil)

	agency := domain.Agency{
		Slug:          "orphan",
		CFRReferences: []domain.CFRReference{{Title: 99, Part: "1"}},
	}

	_, err := aggregator.Aggregate(context.Background(), agency, titleIssueDates())
	require.ErrorIs(t, err, domain.ErrTitleDateUnknown)
}
