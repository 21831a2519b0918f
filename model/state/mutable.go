package state

import (
	"errors"
	"fmt"

	"github.com/viant/mdflow/model/ident"
)

var (
	// ErrTaskNotFound is returned when a change names an unknown task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrActionRequestNotFound is returned when an action request id is unknown.
	ErrActionRequestNotFound = errors.New("action request not found")
	// ErrNoActiveTask is returned when work is scheduled with an empty task stack.
	ErrNoActiveTask = errors.New("no active task")
)

// MutableState is the working copy of a session. It is not safe for
// concurrent use.
type MutableState struct {
	Tasks          []*Task
	WorkUnits      []*WorkUnit
	ActionRequests []*ActionRequest
	Started        bool
	LastID         int64
	events         []*Event
}

// NextID advances the counter and renders an id with prefix.
func (s *MutableState) NextID(prefix string) string {
	s.LastID++
	return NewID(prefix, s.LastID)
}

// CurrentTask returns the task on top of the stack or nil.
func (s *MutableState) CurrentTask() *Task {
	if len(s.Tasks) == 0 {
		return nil
	}
	return s.Tasks[len(s.Tasks)-1]
}

// Task returns the task with the given id or nil.
func (s *MutableState) Task(id TaskID) *Task {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// AddTask pushes a new task onto the stack.
func (s *MutableState) AddTask(workflowID ident.FullArtifactSectionID, context map[string]interface{}) *Task {
	task := &Task{ID: TaskID(s.NextID(TaskPrefix)), WorkflowID: workflowID, Context: copyMap(context)}
	s.Tasks = append(s.Tasks, task)
	return task
}

// AddWorkUnit enqueues a step for a task.
func (s *MutableState) AddWorkUnit(taskID TaskID, operationID ident.FullArtifactSectionID, context map[string]interface{}) (*WorkUnit, error) {
	if s.Task(taskID) == nil {
		return nil, fmt.Errorf("%w: %v", ErrTaskNotFound, taskID)
	}
	unit := &WorkUnit{ID: WorkUnitID(s.NextID(WorkUnitPrefix)), TaskID: taskID, OperationID: operationID, Context: copyMap(context)}
	s.WorkUnits = append(s.WorkUnits, unit)
	return unit, nil
}

// NextWorkUnit returns the earliest enqueued unit of the current task or nil.
func (s *MutableState) NextWorkUnit() *WorkUnit {
	task := s.CurrentTask()
	if task == nil {
		return nil
	}
	for _, unit := range s.WorkUnits {
		if unit.TaskID == task.ID {
			return unit
		}
	}
	return nil
}

// RemoveWorkUnit drops a unit, keeping the order of the rest.
func (s *MutableState) RemoveWorkUnit(id WorkUnitID) bool {
	for i, unit := range s.WorkUnits {
		if unit.ID == id {
			s.WorkUnits = append(s.WorkUnits[:i], s.WorkUnits[i+1:]...)
			return true
		}
	}
	return false
}

// AddActionRequest records a request for the external actor.
func (s *MutableState) AddActionRequest(operationID ident.FullArtifactSectionID, title, request string) *ActionRequest {
	ret := &ActionRequest{ID: ActionRequestID(s.NextID(ActionRequestPrefix)), OperationID: operationID, Title: title, Request: request}
	s.ActionRequests = append(s.ActionRequests, ret)
	return ret
}

// ActionRequest returns the request with the given id or nil.
func (s *MutableState) ActionRequest(id ActionRequestID) *ActionRequest {
	for _, request := range s.ActionRequests {
		if request.ID == id {
			return request
		}
	}
	return nil
}

// RemoveActionRequest drops a request.
func (s *MutableState) RemoveActionRequest(id ActionRequestID) error {
	for i, request := range s.ActionRequests {
		if request.ID == id {
			s.ActionRequests = append(s.ActionRequests[:i], s.ActionRequests[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrActionRequestNotFound, id)
}

// FinishTask removes a task together with its pending work units.
func (s *MutableState) FinishTask(id TaskID) error {
	index := -1
	for i, task := range s.Tasks {
		if task.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: %v", ErrTaskNotFound, id)
	}
	s.Tasks = append(s.Tasks[:index], s.Tasks[index+1:]...)
	units := s.WorkUnits[:0]
	for _, unit := range s.WorkUnits {
		if unit.TaskID != id {
			units = append(units, unit)
		}
	}
	s.WorkUnits = units
	return nil
}

// Emit buffers an event; events are not part of the snapshot.
func (s *MutableState) Emit(event *Event) {
	s.events = append(s.events, event.Clone())
}

// Events returns buffered events in emission order.
func (s *MutableState) Events() []*Event {
	ret := make([]*Event, len(s.events))
	for i, event := range s.events {
		ret[i] = event.Clone()
	}
	return ret
}

// Apply applies changes in order, stopping at the first failure.
func (s *MutableState) Apply(changes ...Change) error {
	for _, change := range changes {
		if err := change.Apply(s); err != nil {
			return fmt.Errorf("failed to apply %v: %w", change.Name(), err)
		}
	}
	return nil
}

// Status summarises the working copy.
func (s *MutableState) Status() Status {
	return statusOf(s.Started, s.Tasks, s.WorkUnits, s.ActionRequests)
}

// Freeze returns an immutable deep copy.
func (s *MutableState) Freeze() *ConsistentState {
	data := snapshot{
		Tasks:          s.Tasks,
		WorkUnits:      s.WorkUnits,
		ActionRequests: s.ActionRequests,
		Started:        s.Started,
		LastID:         s.LastID,
	}
	return &ConsistentState{data: data.clone()}
}
