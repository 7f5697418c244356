package driven

// ReadabilityScorer computes readability formulas over plain text. Each
// formula has its own minimum-input precondition and returns an error when
// the text is too small for a meaningful score; callers record such failures
// as an absent score rather than propagating them.
type ReadabilityScorer interface {
	// FleschKincaid returns the Flesch-Kincaid grade level.
	FleschKincaid(text string) (float64, error)

	// FleschReadingEase returns the Flesch Reading Ease score.
	FleschReadingEase(text string) (float64, error)

	// SMOG returns the SMOG index. It fails for texts with fewer than 30
	// sentences.
	SMOG(text string) (float64, error)
}
