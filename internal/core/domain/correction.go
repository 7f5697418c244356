package domain

// Correction is one eCFR correction record from the admin API.
type Correction struct {
	ID               int                      `json:"id"`
	CFRReferences    []CorrectionCFRReference `json:"cfr_references"`
	CorrectiveAction string                   `json:"corrective_action"`
	ErrorCorrected   string                   `json:"error_corrected"`
	ErrorOccurred    string                   `json:"error_occurred"`
	FRCitation       string                   `json:"fr_citation"`
	Position         float64                  `json:"position"`
	DisplayInTOC     bool                     `json:"display_in_toc"`
	Title            int                      `json:"title"`
	Year             int                      `json:"year"`
	LastModified     string                   `json:"last_modified"`
}

// CorrectionCFRReference is the citation form used inside correction records.
type CorrectionCFRReference struct {
	CFRReference string `json:"cfr_reference"`
	Hierarchy    struct {
		Title      string `json:"title,omitempty"`
		Subtitle   string `json:"subtitle,omitempty"`
		Chapter    string `json:"chapter,omitempty"`
		Subchapter string `json:"subchapter,omitempty"`
		Part       string `json:"part,omitempty"`
		Subpart    string `json:"subpart,omitempty"`
		Section    string `json:"section,omitempty"`
	} `json:"hierarchy"`
}
