package markdown

import "errors"

var (
	// ErrMultipleTitles is returned when a document has more than one level-1 heading.
	ErrMultipleTitles = errors.New("multiple titles")
	// ErrSectionBeforeTitle is returned when a level-2 heading precedes the title.
	ErrSectionBeforeTitle = errors.New("section before title")
	// ErrMissingTitle is returned when a document has no (or an empty) title.
	ErrMissingTitle = errors.New("missing title")
	// ErrEmptySectionTitle is returned when a level-2 heading has no text.
	ErrEmptySectionTitle = errors.New("empty section title")
	// ErrMalformedConfig is returned when a configuration block is not a mapping.
	ErrMalformedConfig = errors.New("malformed config block")
)
