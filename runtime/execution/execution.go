package execution

import (
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
)

// Context is the input of an operation. Task and WorkUnit are copies; an
// operation changes state only through the changes it returns.
type Context struct {
	SessionID string
	RunID     string
	Task      *state.Task
	WorkUnit  *state.WorkUnit
	Artifact  *artifact.Artifact
	Section   *artifact.Section
}

// OperationID returns the full id of the executing operation.
func (c *Context) OperationID() ident.FullArtifactSectionID {
	return c.Artifact.SectionID(c.Section.ID)
}

// Operation returns the section's operation metadata or nil.
func (c *Context) Operation() *graph.OperationMeta {
	meta, _ := c.Section.Meta.(*graph.OperationMeta)
	return meta
}

// Goto schedules target, a section of the executing artifact, on the current task.
func (c *Context) Goto(target ident.ArtifactSectionID) *state.AddWorkUnit {
	return &state.AddWorkUnit{TaskID: c.Task.ID, OperationID: c.Artifact.SectionID(target)}
}

// Value returns a task context value.
func (c *Context) Value(key string) (interface{}, bool) {
	if c.Task == nil || c.Task.Context == nil {
		return nil, false
	}
	value, ok := c.Task.Context[key]
	return value, ok
}
