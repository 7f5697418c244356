package mocks

import (
	"context"
	"errors"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// MockECFRClient is a function-backed ECFRClient for testing. Unset
// functions return an error.
type MockECFRClient struct {
	FetchAgenciesFn    func(ctx context.Context) ([]domain.Agency, error)
	FetchTitlesFn      func(ctx context.Context) ([]domain.Title, error)
	FetchAncestryFn    func(ctx context.Context, date string, ref domain.CFRReference) (domain.AncestryPath, error)
	FetchTitleXMLFn    func(ctx context.Context, date string, ref domain.CFRReference) (string, error)
	FetchCorrectionsFn func(ctx context.Context, date string, title int) ([]domain.Correction, error)
	FetchVersionsFn    func(ctx context.Context, title int, query driven.VersionQuery) (*domain.TitleVersions, error)
}

func (m *MockECFRClient) FetchAgencies(ctx context.Context) ([]domain.Agency, error) {
	if m.FetchAgenciesFn != nil {
		return m.FetchAgenciesFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockECFRClient) FetchTitles(ctx context.Context) ([]domain.Title, error) {
	if m.FetchTitlesFn != nil {
		return m.FetchTitlesFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockECFRClient) FetchAncestry(ctx context.Context, date string, ref domain.CFRReference) (domain.AncestryPath, error) {
	if m.FetchAncestryFn != nil {
		return m.FetchAncestryFn(ctx, date, ref)
	}
	return nil, errors.New("not implemented")
}

func (m *MockECFRClient) FetchTitleXML(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
	if m.FetchTitleXMLFn != nil {
		return m.FetchTitleXMLFn(ctx, date, ref)
	}
	return "", errors.New("not implemented")
}

func (m *MockECFRClient) FetchCorrections(ctx context.Context, date string, title int) ([]domain.Correction, error) {
	if m.FetchCorrectionsFn != nil {
		return m.FetchCorrectionsFn(ctx, date, title)
	}
	return nil, errors.New("not implemented")
}

func (m *MockECFRClient) FetchVersions(ctx context.Context, title int, query driven.VersionQuery) (*domain.TitleVersions, error) {
	if m.FetchVersionsFn != nil {
		return m.FetchVersionsFn(ctx, title, query)
	}
	return nil, errors.New("not implemented")
}
