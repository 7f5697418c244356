package ecfr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

func TestFetchAgencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/v1/agencies.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"agencies": [
				{
					"name": "Department of Agriculture",
					"short_name": "USDA",
					"slug": "agriculture-department",
					"sortable_name": "Agriculture Department",
					"cfr_references": [
						{"title": 7, "chapter": "I"},
						{"title": 2, "chapter": "IV", "part": "417"}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	agencies, err := client.FetchAgencies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(agencies) != 1 {
		t.Fatalf("expected 1 agency, got %d", len(agencies))
	}
	agency := agencies[0]
	if agency.Slug != "agriculture-department" {
		t.Errorf("unexpected slug: %s", agency.Slug)
	}
	if len(agency.CFRReferences) != 2 {
		t.Fatalf("expected 2 references, got %d", len(agency.CFRReferences))
	}
	if agency.CFRReferences[1].Part != "417" {
		t.Errorf("unexpected part: %s", agency.CFRReferences[1].Part)
	}
}

func TestFetchTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versioner/v1/titles.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"titles": [
				{"number": 1, "name": "General Provisions", "latest_issue_date": "2025-08-01", "up_to_date_as_of": "2025-08-29"},
				{"number": 35, "name": "Reserved", "reserved": true}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	titles, err := client.FetchTitles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}
	if titles[0].LatestIssueDate != "2025-08-01" {
		t.Errorf("unexpected issue date: %s", titles[0].LatestIssueDate)
	}
	if !titles[1].Reserved {
		t.Error("expected title 35 to be reserved")
	}
}

func TestFetchAncestry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versioner/v1/ancestry/2025-08-01/title-7.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if got := query.Get("chapter"); got != "I" {
			t.Errorf("expected chapter=I, got %q", got)
		}
		if got := query.Get("part"); got != "26" {
			t.Errorf("expected part=26, got %q", got)
		}
		if query.Has("subtitle") || query.Has("section") {
			t.Errorf("unexpected narrowing params: %v", query)
		}
		w.Write([]byte(`{
			"ancestors": [
				{"type": "title", "label": "Title 7", "identifier": 7},
				{"type": "chapter", "label": "Chapter I", "identifier": "I"},
				{"type": "part", "label": "Part 26", "identifier": "26"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ref := domain.CFRReference{Title: 7, Chapter: "I", Part: "26"}
	path, err := client.FetchAncestry(context.Background(), "2025-08-01", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(path) != 3 {
		t.Fatalf("expected 3 ancestry levels, got %d", len(path))
	}
	// Numeric identifiers from the API normalize to strings.
	if got, ok := path.Identifier(domain.LevelTitle); !ok || got != "7" {
		t.Errorf("expected title identifier 7, got %q", got)
	}
	if got, ok := path.Identifier(domain.LevelPart); !ok || got != "26" {
		t.Errorf("expected part identifier 26, got %q", got)
	}
}

func TestFetchTitleXML(t *testing.T) {
	const doc = `<DIV1 N="7" TYPE="TITLE"><P>hello</P></DIV1>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versioner/v1/full/2025-08-01/title-7.xml" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("chapter"); got != "I" {
			t.Errorf("expected chapter=I, got %q", got)
		}
		w.Write([]byte(doc))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	xml, err := client.FetchTitleXML(context.Background(), "2025-08-01", domain.CFRReference{Title: 7, Chapter: "I"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if xml != doc {
		t.Errorf("unexpected XML body: %q", xml)
	}
}

func TestFetchCorrections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("date"); got != "2025-08-01" {
			t.Errorf("expected date param, got %q", got)
		}
		if got := query.Get("title"); got != "7" {
			t.Errorf("expected title param, got %q", got)
		}
		w.Write([]byte(`{
			"ecfr_corrections": [
				{
					"id": 100,
					"cfr_references": [
						{"cfr_reference": "7 CFR 26.1", "hierarchy": {"title": "7", "part": "26", "section": "26.1"}}
					],
					"corrective_action": "Amended",
					"error_corrected": "2025-01-15",
					"title": 7
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	corrections, err := client.FetchCorrections(context.Background(), "2025-08-01", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corrections) != 1 {
		t.Fatalf("expected 1 correction, got %d", len(corrections))
	}
	if len(corrections[0].CFRReferences) != 1 || corrections[0].CFRReferences[0].CFRReference != "7 CFR 26.1" {
		t.Errorf("unexpected correction: %+v", corrections[0])
	}
}

func TestFetchVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versioner/v1/versions/title-7.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if got := query.Get("issue_date[on]"); got != "2025-08-01" {
			t.Errorf("expected issue_date[on], got %q", got)
		}
		if query.Has("issue_date[gte]") || query.Has("issue_date[lte]") {
			t.Error("range params must be omitted when an exact date is set")
		}
		w.Write([]byte(`{
			"content_versions": [
				{"identifier": "26.1", "name": "Definitions", "part": "26", "type": "section", "issue_date": "2025-08-01"}
			],
			"meta": {"title": "7", "result_count": "1"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	versions, err := client.FetchVersions(context.Background(), 7, driven.VersionQuery{On: "2025-08-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions.ContentVersions) != 1 {
		t.Fatalf("expected 1 version, got %d", len(versions.ContentVersions))
	}
	if versions.ContentVersions[0].Identifier != "26.1" {
		t.Errorf("unexpected version: %+v", versions.ContentVersions[0])
	}
	if versions.Meta.ResultCount != "1" {
		t.Errorf("unexpected meta: %+v", versions.Meta)
	}
}

func TestGetNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FetchTitles(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
