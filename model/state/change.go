package state

import (
	"fmt"

	"github.com/viant/mdflow/model/ident"
)

// Change is a state mutation produced by an operation.
type Change interface {
	Name() string
	Apply(state *MutableState) error
}

// AddWorkUnit enqueues a successor step. An empty TaskID targets the current task.
type AddWorkUnit struct {
	TaskID      TaskID
	OperationID ident.FullArtifactSectionID
	Context     map[string]interface{}
}

func (c *AddWorkUnit) Name() string { return "add_work_unit" }

func (c *AddWorkUnit) Apply(state *MutableState) error {
	taskID, err := taskOf(state, c.TaskID)
	if err != nil {
		return err
	}
	_, err = state.AddWorkUnit(taskID, c.OperationID, c.Context)
	return err
}

// AddActionRequest blocks on the external actor.
type AddActionRequest struct {
	OperationID ident.FullArtifactSectionID
	Title       string
	Request     string
}

func (c *AddActionRequest) Name() string { return "add_action_request" }

func (c *AddActionRequest) Apply(state *MutableState) error {
	state.AddActionRequest(c.OperationID, c.Title, c.Request)
	return nil
}

// FinishTask pops a task. An empty TaskID targets the current task.
type FinishTask struct {
	TaskID TaskID
}

func (c *FinishTask) Name() string { return "finish_task" }

func (c *FinishTask) Apply(state *MutableState) error {
	taskID, err := taskOf(state, c.TaskID)
	if err != nil {
		return err
	}
	return state.FinishTask(taskID)
}

// SetTaskValue stores a value in a task context.
type SetTaskValue struct {
	TaskID TaskID
	Key    string
	Value  interface{}
}

func (c *SetTaskValue) Name() string { return "set_task_value" }

func (c *SetTaskValue) Apply(state *MutableState) error {
	taskID, err := taskOf(state, c.TaskID)
	if err != nil {
		return err
	}
	if c.Key == "" {
		return fmt.Errorf("empty key")
	}
	task := state.Task(taskID)
	if task.Context == nil {
		task.Context = map[string]interface{}{}
	}
	task.Context[c.Key] = copyValue(c.Value)
	return nil
}

// EmitEvent publishes an event after the step is persisted.
type EmitEvent struct {
	Event Event
}

func (c *EmitEvent) Name() string { return "emit_event" }

func (c *EmitEvent) Apply(state *MutableState) error {
	if c.Event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	state.Emit(&c.Event)
	return nil
}

func taskOf(state *MutableState, id TaskID) (TaskID, error) {
	if id != "" {
		if state.Task(id) == nil {
			return "", fmt.Errorf("%w: %v", ErrTaskNotFound, id)
		}
		return id, nil
	}
	current := state.CurrentTask()
	if current == nil {
		return "", ErrNoActiveTask
	}
	return current.ID, nil
}
