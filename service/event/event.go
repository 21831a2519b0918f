// Package event delivers events emitted by operations once their step is persisted.
package event

import (
	"time"

	"github.com/viant/mdflow/internal/clock"
)

// Context identifies where an event was emitted.
type Context struct {
	SessionID   string `json:"sessionID"`
	RunID       string `json:"runID"`
	TaskID      string `json:"taskID"`
	OperationID string `json:"operationID"`
	EventType   string `json:"eventType"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
