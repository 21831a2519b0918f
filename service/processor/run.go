package processor

import (
	"context"
	"fmt"

	"github.com/viant/mdflow/internal/idgen"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/progress"
	"github.com/viant/mdflow/runtime/execution"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/tracing"
)

// Run executes work units of the current task in FIFO order until none is
// ready. Every step runs on a fresh working copy; on failure the last
// persisted snapshot is returned with the error.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	current, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := progress.FromContext(ctx); !ok {
		ctx, _ = progress.WithNewTracker(ctx, s.sessionID, "", nil)
	}
	runID := idgen.New()
	ret := &Result{State: current}
	for {
		mutable := current.Mutate()
		unit := mutable.NextWorkUnit()
		if unit == nil {
			break
		}
		if ret.Steps >= s.config.MaxSteps {
			return ret, fmt.Errorf("%w: %d steps in session %v", ErrStepLimitExceeded, ret.Steps, s.sessionID)
		}
		next, events, err := s.step(ctx, runID, mutable, unit)
		if err != nil {
			progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
			s.logger.Error("step failed", "session", s.sessionID, "run", runID, "operation", unit.OperationID, "error", err)
			return ret, err
		}
		if err = s.save(ctx, next); err != nil {
			return ret, err
		}
		s.logStep(runID, unit, current, next)
		progress.UpdateCtx(ctx, delta(current, next, len(events)))
		current = next
		ret.State, ret.Steps = next, ret.Steps+1
		if err = s.publish(ctx, runID, events); err != nil {
			return ret, err
		}
	}
	s.logger.Debug("run finished", "session", s.sessionID, "run", runID, "steps", ret.Steps, "status", current.Status())
	return ret, nil
}

// step executes one work unit against mutable and freezes the result.
func (s *Service) step(ctx context.Context, runID string, mutable *state.MutableState, unit *state.WorkUnit) (next *state.ConsistentState, events []*state.Event, err error) {
	ctx, span := tracing.StartSpan(ctx, "mdflow.step", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{
		"session.id":   s.sessionID,
		"run.id":       runID,
		"work_unit.id": string(unit.ID),
		"operation.id": string(unit.OperationID),
	})

	anArtifact, aSection, err := s.operation(ctx, unit.OperationID)
	if err != nil {
		return nil, nil, err
	}
	kind, err := s.primitives.OperationKind(aSection.Kind)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", unit.OperationID, err)
	}
	task := mutable.Task(unit.TaskID)
	if task == nil {
		return nil, nil, fmt.Errorf("%w: %v", state.ErrTaskNotFound, unit.TaskID)
	}
	exec := &execution.Context{
		SessionID: s.sessionID,
		RunID:     runID,
		Task:      task.Clone(),
		WorkUnit:  unit.Clone(),
		Artifact:  anArtifact,
		Section:   aSection,
	}
	changes, err := kind.Execute(execution.WithContext(ctx, exec), exec)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", unit.OperationID, err)
	}
	for _, change := range changes {
		scheduled, ok := change.(*state.AddWorkUnit)
		if !ok || (scheduled.TaskID != "" && scheduled.TaskID != unit.TaskID) {
			continue
		}
		if !allows(anArtifact, aSection, scheduled.OperationID) {
			return nil, nil, fmt.Errorf("%w: %v -> %v", ErrInvalidOperationTransition, unit.OperationID, scheduled.OperationID)
		}
	}
	mutable.RemoveWorkUnit(unit.ID)
	if err = mutable.Apply(changes...); err != nil {
		return nil, nil, fmt.Errorf("%v: %w", unit.OperationID, err)
	}
	return mutable.Freeze(), mutable.Events(), nil
}

func (s *Service) publish(ctx context.Context, runID string, events []*state.Event) error {
	for _, emitted := range events {
		anEvent := event.NewEvent[any](&event.Context{
			SessionID:   s.sessionID,
			RunID:       runID,
			TaskID:      string(emitted.TaskID),
			OperationID: string(emitted.OperationID),
			EventType:   emitted.Type,
		}, emitted)
		if err := s.events.Publish(ctx, anEvent); err != nil {
			return fmt.Errorf("failed to publish %v event: %w", emitted.Type, err)
		}
	}
	return nil
}

func (s *Service) logStep(runID string, unit *state.WorkUnit, before, after *state.ConsistentState) {
	args := []any{"session", s.sessionID, "run", runID, "operation", unit.OperationID, "status", after.Status()}
	if s.config.Diff {
		if diff, err := state.Diff(before, after); err == nil {
			args = append(args, "diff", diff)
		}
	}
	s.logger.Debug("step", args...)
}

func delta(before, after *state.ConsistentState, events int) progress.Delta {
	ret := progress.Delta{Steps: 1, Events: events}
	if added := len(after.ActionRequests()) - len(before.ActionRequests()); added > 0 {
		ret.ActionRequests = added
	}
	if finished := len(before.Tasks()) - len(after.Tasks()); finished > 0 {
		ret.FinishedTasks = finished
	}
	return ret
}
