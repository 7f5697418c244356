package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrTitleDateUnknown indicates no latest issue date is known for a title
	ErrTitleDateUnknown = errors.New("no latest issue date for title")
)

// ResolutionError reports the hierarchy level and identifier that could not
// be located while descending a title document.
type ResolutionError struct {
	Level      LevelType
	Identifier string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Level, e.Identifier)
}
