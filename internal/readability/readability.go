// Package readability implements the Flesch-Kincaid grade, Flesch Reading
// Ease, and SMOG formulas over plain English text.
package readability

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReadabilityScorer = (*Scorer)(nil)

var (
	// ErrNoText indicates the text has no scorable words or sentences
	ErrNoText = errors.New("text has no scorable content")

	// ErrTooFewSentences indicates the text is below SMOG's 30-sentence minimum
	ErrTooFewSentences = errors.New("smog requires at least 30 sentences")
)

const smogMinSentences = 30

// Scorer computes readability formulas. It is stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer creates a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// FleschKincaid returns the Flesch-Kincaid grade level:
// 0.39*(words/sentences) + 11.8*(syllables/word) - 15.59.
func (s *Scorer) FleschKincaid(text string) (float64, error) {
	st := analyze(text)
	if st.words == 0 || st.sentences == 0 {
		return 0, ErrNoText
	}
	return 0.39*(float64(st.words)/float64(st.sentences)) +
		11.8*(float64(st.syllables)/float64(st.words)) - 15.59, nil
}

// FleschReadingEase returns the Flesch Reading Ease score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/word).
func (s *Scorer) FleschReadingEase(text string) (float64, error) {
	st := analyze(text)
	if st.words == 0 || st.sentences == 0 {
		return 0, ErrNoText
	}
	return 206.835 - 1.015*(float64(st.words)/float64(st.sentences)) -
		84.6*(float64(st.syllables)/float64(st.words)), nil
}

// SMOG returns the SMOG index:
// 1.043*sqrt(polysyllables * 30/sentences) + 3.1291.
// It fails with ErrTooFewSentences below 30 sentences, where the formula is
// not considered valid.
func (s *Scorer) SMOG(text string) (float64, error) {
	st := analyze(text)
	if st.words == 0 {
		return 0, ErrNoText
	}
	if st.sentences < smogMinSentences {
		return 0, ErrTooFewSentences
	}
	return 1.043*math.Sqrt(float64(st.polysyllables)*float64(smogMinSentences)/float64(st.sentences)) + 3.1291, nil
}

type stats struct {
	sentences     int
	words         int
	syllables     int
	polysyllables int
}

func analyze(text string) stats {
	var st stats
	st.sentences = countSentences(text)
	for _, token := range strings.Fields(text) {
		word := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" {
			continue
		}
		st.words++
		n := countSyllables(word)
		st.syllables += n
		if n >= 3 {
			st.polysyllables++
		}
	}
	return st
}

// countSentences counts runs of sentence terminators that close a span of
// scorable text. Consecutive terminators ("..." or "?!") count once.
func countSentences(text string) int {
	sentences := 0
	pending := false // current span has scorable content
	inTerminator := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if pending && !inTerminator {
				sentences++
				pending = false
			}
			inTerminator = true
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			pending = true
			inTerminator = false
		default:
			inTerminator = false
		}
	}
	if pending {
		sentences++
	}
	return sentences
}

// countSyllables estimates syllables by vowel groups with a silent-e
// adjustment. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
