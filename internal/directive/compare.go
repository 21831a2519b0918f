package directive

import (
	"fmt"

	"github.com/viant/mdflow/model/artifact"
)

// Compare checks that view and analysis renderings split into the same
// sections: equal count and equal heading levels in order.
func Compare(view, analysis []*artifact.RawSection) error {
	if len(view) != len(analysis) {
		return fmt.Errorf("%w: view has %d sections, analysis has %d", ErrSectionCountMismatch, len(view), len(analysis))
	}
	for i := range view {
		if view[i].Level != analysis[i].Level {
			return fmt.Errorf("%w: section %d (%q) is level %d in view, %d in analysis", ErrSectionCountMismatch, i, view[i].Title, view[i].Level, analysis[i].Level)
		}
	}
	return nil
}

// Attach extracts directives from each analysis section and stores them on
// the matching view section.
func Attach(view, analysis []*artifact.RawSection) error {
	if err := Compare(view, analysis); err != nil {
		return err
	}
	for i := range analysis {
		directives, err := Extract(analysis[i].Source())
		if err != nil {
			return fmt.Errorf("section %q: %w", view[i].Title, err)
		}
		view[i].Directives = directives
	}
	return nil
}
