package domain

// ReferenceMetrics holds the derived text metrics for one CFR reference at a
// fixed as-of date. Readability scores are nil when the extracted text did
// not meet the formula's minimum input size.
type ReferenceMetrics struct {
	WordCount         int      `json:"word_count"`
	FleschKincaid     *float64 `json:"flesch_kincaid"`
	FleschReadingEase *float64 `json:"flesch_reading_ease"`
	SMOG              *float64 `json:"smog"`
}

// SummaryReference is one entry of an agency summary's reference list: the
// original reference fields plus the metrics computed for it.
type SummaryReference struct {
	CFRReference
	ReferenceMetrics
}

// AgencySummary is the per-agency rollup persisted to the metrics store.
// Averages are word-count weighted over the references that carry the score
// and nil when no reference contributed.
type AgencySummary struct {
	TotalWordCount           int                `json:"total_word_count"`
	AverageFleschKincaid     *float64           `json:"average_flesch_kincaid"`
	AverageFleschReadingEase *float64           `json:"average_flesch_reading_ease"`
	AverageSMOG              *float64           `json:"average_smog"`
	References               []SummaryReference `json:"references"`
}
