package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CFRReference identifies a point in the CFR hierarchy. Title is always
// present; the finer-grained locators are optional and meaningful only in
// combination with the ancestry data the versioner API supplies.
type CFRReference struct {
	Title      int    `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Subchapter string `json:"subchapter,omitempty"`
	Part       string `json:"part,omitempty"`
	Section    string `json:"section,omitempty"`
}

// String formats the reference the way the eCFR site displays it.
func (r CFRReference) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title %d", r.Title)
	if r.Subtitle != "" {
		fmt.Fprintf(&b, ", Subtitle %s", r.Subtitle)
	}
	if r.Chapter != "" {
		fmt.Fprintf(&b, ", Chapter %s", r.Chapter)
	}
	if r.Subchapter != "" {
		fmt.Fprintf(&b, ", Subchapter %s", r.Subchapter)
	}
	if r.Part != "" {
		fmt.Fprintf(&b, ", Part %s", r.Part)
	}
	if r.Section != "" {
		fmt.Fprintf(&b, ", Section %s", r.Section)
	}
	return b.String()
}

// LevelType is one level of the CFR hierarchy, coarse to fine.
type LevelType string

const (
	LevelTitle      LevelType = "title"
	LevelSubtitle   LevelType = "subtitle"
	LevelChapter    LevelType = "chapter"
	LevelSubchapter LevelType = "subchapter"
	LevelPart       LevelType = "part"
	LevelSection    LevelType = "section"
)

// Levels lists the hierarchy levels in descent order. Resolution walks this
// slice; levels missing from an ancestry path are transparent.
var Levels = []LevelType{
	LevelTitle,
	LevelSubtitle,
	LevelChapter,
	LevelSubchapter,
	LevelPart,
	LevelSection,
}

// AncestryLevel is one (type, identifier) entry of an ancestry path.
type AncestryLevel struct {
	Type       LevelType `json:"type"`
	Identifier string    `json:"identifier"`
}

// UnmarshalJSON tolerates numeric identifiers; the versioner API returns the
// title identifier as a number and the rest as strings.
func (l *AncestryLevel) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       LevelType       `json:"type"`
		Identifier json.RawMessage `json:"identifier"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Type = raw.Type

	if len(raw.Identifier) == 0 || string(raw.Identifier) == "null" {
		l.Identifier = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Identifier, &s); err == nil {
		l.Identifier = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.Identifier, &n); err != nil {
		return fmt.Errorf("invalid ancestry identifier %s: %w", raw.Identifier, err)
	}
	l.Identifier = n.String()
	return nil
}

// AncestryPath is the ordered root-to-leaf ancestry for one reference as of
// one date, supplied by the versioner API.
type AncestryPath []AncestryLevel

// Identifier returns the identifier recorded for the given level, or false
// when the path has no entry at that level.
func (p AncestryPath) Identifier(level LevelType) (string, bool) {
	for _, entry := range p {
		if entry.Type == level {
			return entry.Identifier, true
		}
	}
	return "", false
}
