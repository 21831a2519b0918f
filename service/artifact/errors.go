package artifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/mdflow/model/ident"
)

var (
	// ErrDuplicateSection is returned when two sections of one artifact share an id.
	ErrDuplicateSection = errors.New("duplicate section")
	// ErrSectionNotFound is returned when an artifact has no section with a given id.
	ErrSectionNotFound = errors.New("section not found")
)

// ValidationError carries every structural finding of one artifact.
type ValidationError struct {
	ID     ident.FullArtifactID
	Errors []error
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("invalid artifact %v: %v", e.ID, strings.Join(messages, "; "))
}

func (e *ValidationError) Unwrap() []error { return e.Errors }
