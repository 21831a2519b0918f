package ident

import (
	"errors"
	"fmt"
)

// ErrMalformedIdentifier is returned for empty segments, invalid characters or a
// wrong number of segments.
var ErrMalformedIdentifier = errors.New("malformed identifier")

func malformed(text, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedIdentifier, text, reason)
}
