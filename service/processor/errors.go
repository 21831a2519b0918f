package processor

import "errors"

var (
	// ErrInvalidOperationTransition is returned when a transition target is not
	// among the originating operation's allowed transitions.
	ErrInvalidOperationTransition = errors.New("invalid operation transition")
	// ErrStepLimitExceeded is returned when one run executes more than MaxSteps steps.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
	// ErrOperationNotFound is returned when a work unit names a missing section.
	ErrOperationNotFound = errors.New("operation not found")
)
