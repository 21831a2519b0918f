package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/mdflow/model/ident"
)

var (
	// ErrNotWorkflow is returned when an artifact carries no workflow metadata.
	ErrNotWorkflow = errors.New("artifact is not a workflow")
	// ErrWrongStartOperation is returned when the declared start operation does not exist.
	ErrWrongStartOperation = errors.New("wrong start operation")
	// ErrStartOperationMismatch is returned when start modes disagree with the declared start.
	ErrStartOperationMismatch = errors.New("start operation mismatch")
	// ErrFinalOperationHasTransitions is returned when a final operation declares transitions.
	ErrFinalOperationHasTransitions = errors.New("final operation has transitions")
	// ErrNoOutgoingTransitions is returned when a non-final operation has no transitions.
	ErrNoOutgoingTransitions = errors.New("no outgoing transitions")
	// ErrNotReachableOperations is returned when operations cannot be reached from the start.
	ErrNotReachableOperations = errors.New("not reachable operations")
	// ErrUnknownTransitionTarget is returned when a transition names no operation.
	ErrUnknownTransitionTarget = errors.New("unknown transition target")
)

// OperationError reports a finding about a single operation.
type OperationError struct {
	Err       error
	Operation ident.ArtifactSectionID
	Detail    string
}

func (e *OperationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", e.Err, e.Operation)
	}
	return fmt.Sprintf("%v: %v: %v", e.Err, e.Operation, e.Detail)
}

func (e *OperationError) Unwrap() error { return e.Err }

// NotReachableError lists unreachable operations in declaration order.
type NotReachableError struct {
	Operations []ident.ArtifactSectionID
}

func (e *NotReachableError) Error() string {
	ids := make([]string, len(e.Operations))
	for i, id := range e.Operations {
		ids[i] = string(id)
	}
	return fmt.Sprintf("%v: %v", ErrNotReachableOperations, strings.Join(ids, ", "))
}

func (e *NotReachableError) Unwrap() error { return ErrNotReachableOperations }
