// Package ecfr implements the ECFRClient port against the public eCFR API
// (admin and versioner services).
package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ECFRClient = (*Client)(nil)

// DefaultBaseURL is the public eCFR API host.
const DefaultBaseURL = "https://www.ecfr.gov"

// Client provides eCFR API operations.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new eCFR API client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		// Full-title XML documents run to tens of megabytes; allow for slow
		// transfers.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchAgencies returns the agency directory with CFR references.
func (c *Client) FetchAgencies(ctx context.Context) ([]domain.Agency, error) {
	var resp struct {
		Agencies []domain.Agency `json:"agencies"`
	}
	if err := c.getJSON(ctx, "/api/admin/v1/agencies.json", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch agencies: %w", err)
	}
	return resp.Agencies, nil
}

// FetchTitles returns metadata for all CFR titles.
func (c *Client) FetchTitles(ctx context.Context) ([]domain.Title, error) {
	var resp struct {
		Titles []domain.Title `json:"titles"`
	}
	if err := c.getJSON(ctx, "/api/versioner/v1/titles.json", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch titles: %w", err)
	}
	return resp.Titles, nil
}

// FetchAncestry returns the ordered ancestry for a reference as of a date.
func (c *Client) FetchAncestry(ctx context.Context, date string, ref domain.CFRReference) (domain.AncestryPath, error) {
	path := fmt.Sprintf("/api/versioner/v1/ancestry/%s/title-%d.json", date, ref.Title)
	params := narrowingParams(ref)
	if ref.Section != "" {
		params.Set("section", ref.Section)
	}

	var resp struct {
		Ancestors domain.AncestryPath `json:"ancestors"`
	}
	if err := c.getJSON(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch ancestry for %s: %w", ref, err)
	}
	return resp.Ancestors, nil
}

// FetchTitleXML returns the XML text for a title as of a date, narrowed by
// the reference's locators. The upstream may return the full title
// regardless of narrowing parameters.
func (c *Client) FetchTitleXML(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
	path := fmt.Sprintf("/api/versioner/v1/full/%s/title-%d.xml", date, ref.Title)

	body, err := c.get(ctx, path, narrowingParams(ref))
	if err != nil {
		return "", fmt.Errorf("failed to fetch XML for title %d on %s: %w", ref.Title, date, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read XML for title %d on %s: %w", ref.Title, date, err)
	}
	return string(data), nil
}

// FetchCorrections returns eCFR corrections, optionally filtered by date
// and title.
func (c *Client) FetchCorrections(ctx context.Context, date string, title int) ([]domain.Correction, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if title != 0 {
		params.Set("title", strconv.Itoa(title))
	}

	var resp struct {
		Corrections []domain.Correction `json:"ecfr_corrections"`
	}
	if err := c.getJSON(ctx, "/api/admin/v1/corrections.json", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch corrections: %w", err)
	}
	return resp.Corrections, nil
}

// FetchVersions returns a title's content versions.
func (c *Client) FetchVersions(ctx context.Context, title int, query driven.VersionQuery) (*domain.TitleVersions, error) {
	params := url.Values{}
	if query.On != "" {
		params.Set("issue_date[on]", query.On)
	} else {
		if query.GTE != "" {
			params.Set("issue_date[gte]", query.GTE)
		}
		if query.LTE != "" {
			params.Set("issue_date[lte]", query.LTE)
		}
	}

	var versions domain.TitleVersions
	path := fmt.Sprintf("/api/versioner/v1/versions/title-%d.json", title)
	if err := c.getJSON(ctx, path, params, &versions); err != nil {
		return nil, fmt.Errorf("failed to fetch versions for title %d: %w", title, err)
	}
	return &versions, nil
}

// narrowingParams builds the subtitle/chapter/subchapter/part query
// parameters shared by the ancestry and XML endpoints.
func narrowingParams(ref domain.CFRReference) url.Values {
	params := url.Values{}
	if ref.Subtitle != "" {
		params.Set("subtitle", ref.Subtitle)
	}
	if ref.Chapter != "" {
		params.Set("chapter", ref.Chapter)
	}
	if ref.Subchapter != "" {
		params.Set("subchapter", ref.Subchapter)
	}
	if ref.Part != "" {
		params.Set("part", ref.Part)
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (io.ReadCloser, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return resp.Body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v interface{}) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
