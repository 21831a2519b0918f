package state

import "github.com/viant/mdflow/model/ident"

// Task is one active traversal of a workflow.
type Task struct {
	ID         TaskID                      `json:"id"`
	WorkflowID ident.FullArtifactSectionID `json:"workflow_id"`
	Context    map[string]interface{}      `json:"context"`
}

// WorkUnit is one pending step of a task.
type WorkUnit struct {
	ID          WorkUnitID                  `json:"id"`
	TaskID      TaskID                      `json:"task_id"`
	OperationID ident.FullArtifactSectionID `json:"operation_id"`
	Context     map[string]interface{}      `json:"context"`
}

// ActionRequest is a step waiting on an external actor.
type ActionRequest struct {
	ID          ActionRequestID             `json:"id"`
	Request     string                      `json:"request"`
	OperationID ident.FullArtifactSectionID `json:"operation_id"`
	Title       string                      `json:"title"`
}

// Event is emitted by an operation and published once its step is persisted.
type Event struct {
	Type        string                      `json:"type"`
	TaskID      TaskID                      `json:"task_id,omitempty"`
	OperationID ident.FullArtifactSectionID `json:"operation_id,omitempty"`
	Payload     map[string]interface{}      `json:"payload,omitempty"`
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	ret := *t
	ret.Context = copyMap(t.Context)
	return &ret
}

// Clone returns a deep copy.
func (w *WorkUnit) Clone() *WorkUnit {
	ret := *w
	ret.Context = copyMap(w.Context)
	return &ret
}

// Clone returns a copy.
func (a *ActionRequest) Clone() *ActionRequest {
	ret := *a
	return &ret
}

// Clone returns a deep copy.
func (e *Event) Clone() *Event {
	ret := *e
	ret.Payload = copyMap(e.Payload)
	return &ret
}

func copyMap(source map[string]interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(source))
	for k, v := range source {
		ret[k] = copyValue(v)
	}
	return ret
}

func copyValue(value interface{}) interface{} {
	switch actual := value.(type) {
	case map[string]interface{}:
		return copyMap(actual)
	case []interface{}:
		ret := make([]interface{}, len(actual))
		for i, item := range actual {
			ret[i] = copyValue(item)
		}
		return ret
	case []string:
		return append([]string(nil), actual...)
	}
	return value
}
