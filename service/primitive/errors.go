package primitive

import (
	"errors"
	"fmt"
)

var (
	// ErrPrimitiveNotAvailable is returned when a module has no such member.
	ErrPrimitiveNotAvailable = errors.New("primitive not available")
	// ErrPrimitiveNotPrimitive is returned when the member has the wrong capability.
	ErrPrimitiveNotPrimitive = errors.New("not a primitive")
	// ErrPrimitiveModuleNotImportable is returned when the module cannot be loaded.
	ErrPrimitiveModuleNotImportable = errors.New("primitive module not importable")
)

// Error carries the identifier that failed to resolve.
type Error struct {
	Err    error
	ID     string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", e.Err, e.ID)
	}
	return fmt.Sprintf("%v: %v: %v", e.Err, e.ID, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }
