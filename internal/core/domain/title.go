package domain

// Title is the versioner API's metadata for one CFR title.
type Title struct {
	Number          int    `json:"number"`
	Name            string `json:"name"`
	LatestAmendedOn string `json:"latest_amended_on"`
	LatestIssueDate string `json:"latest_issue_date"`
	UpToDateAsOf    string `json:"up_to_date_as_of"`
	Reserved        bool   `json:"reserved"`
}

// LatestIssueDates indexes titles by number for the run-scoped issue-date
// lookup. The map is read-only for the duration of a batch run.
func LatestIssueDates(titles []Title) map[int]string {
	dates := make(map[int]string, len(titles))
	for _, t := range titles {
		dates[t.Number] = t.LatestIssueDate
	}
	return dates
}

// TitleVersion is one content version entry for a title.
type TitleVersion struct {
	Date          string `json:"date"`
	AmendmentDate string `json:"amendment_date,omitempty"`
	IssueDate     string `json:"issue_date,omitempty"`
	Identifier    string `json:"identifier"`
	Name          string `json:"name"`
	Part          string `json:"part,omitempty"`
	Type          string `json:"type,omitempty"`
	Title         string `json:"title,omitempty"`
}

// TitleVersions is the versioner API response for a title's content versions.
type TitleVersions struct {
	ContentVersions []TitleVersion    `json:"content_versions"`
	Meta            TitleVersionsMeta `json:"meta"`
}

// TitleVersionsMeta summarizes a content-versions result set.
type TitleVersionsMeta struct {
	Title               string `json:"title"`
	ResultCount         string `json:"result_count"`
	LatestAmendmentDate string `json:"latest_amendment_date"`
	LatestIssueDate     string `json:"latest_issue_date"`
}
