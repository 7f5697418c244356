package mocks

// MockScorer is a fixed-score ReadabilityScorer for testing.
type MockScorer struct {
	FleschKincaidScore     float64
	FleschReadingEaseScore float64
	SMOGScore              float64

	FleschKincaidErr     error
	FleschReadingEaseErr error
	SMOGErr              error
}

func (m *MockScorer) FleschKincaid(text string) (float64, error) {
	return m.FleschKincaidScore, m.FleschKincaidErr
}

func (m *MockScorer) FleschReadingEase(text string) (float64, error) {
	return m.FleschReadingEaseScore, m.FleschReadingEaseErr
}

func (m *MockScorer) SMOG(text string) (float64, error) {
	return m.SMOGScore, m.SMOGErr
}
