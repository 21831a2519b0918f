package directive

import "errors"

var (
	// ErrSectionCountMismatch is returned when view and analysis renderings
	// split into different sections.
	ErrSectionCountMismatch = errors.New("section count mismatch between view and analysis renderings")
	// ErrMalformedDirective is returned when a sentinel does not follow the grammar.
	ErrMalformedDirective = errors.New("malformed directive")
)
