package driven

import (
	"context"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
)

// VersionQuery restricts a content-versions lookup by issue date. On takes
// precedence over the range bounds when set. All fields are YYYY-MM-DD.
type VersionQuery struct {
	On  string
	GTE string
	LTE string
}

// ECFRClient reads reference data from the eCFR API. It is consumed
// read-only; responses are never mutated after fetch.
type ECFRClient interface {
	// FetchAgencies returns the agency directory with each agency's CFR references.
	FetchAgencies(ctx context.Context) ([]domain.Agency, error)

	// FetchTitles returns metadata for all titles, including latest issue dates.
	FetchTitles(ctx context.Context) ([]domain.Title, error)

	// FetchAncestry returns the ordered root-to-leaf ancestry for the
	// reference as of the given date.
	FetchAncestry(ctx context.Context, date string, ref domain.CFRReference) (domain.AncestryPath, error)

	// FetchTitleXML returns the XML text for the reference's title as of the
	// given date, narrowed by the reference's subtitle/chapter/subchapter/part
	// when present. The upstream may return the full title regardless of
	// narrowing; callers must not assume the response is pre-narrowed.
	FetchTitleXML(ctx context.Context, date string, ref domain.CFRReference) (string, error)

	// FetchCorrections returns eCFR corrections, optionally restricted by
	// date (YYYY-MM-DD) and title number (0 = all titles).
	FetchCorrections(ctx context.Context, date string, title int) ([]domain.Correction, error)

	// FetchVersions returns the content versions for a title.
	FetchVersions(ctx context.Context, title int, query VersionQuery) (*domain.TitleVersions, error)
}
