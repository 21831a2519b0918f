package output

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/runtime/execution"
)

func TestService(t *testing.T) {
	srv := New()
	flowID := ident.FullArtifactID("project:flow")
	raw := &artifact.RawSection{
		Title:  "Report",
		Config: map[string]interface{}{"next_operation": "done"},
		Blocks: []artifact.Block{{Kind: artifact.BlockText, Text: "\nAll good.\n"}},
	}
	aSection, err := srv.Construct(flowID, raw)
	require.NoError(t, err)
	assert.Equal(t, ident.ArtifactSectionID("report"), aSection.ID)
	assert.Equal(t, []ident.ArtifactSectionID{"done"}, aSection.Meta.(*graph.OperationMeta).AllowedTransitions)

	exec := &execution.Context{
		Task:     &state.Task{ID: "T-1-abc"},
		Artifact: &artifact.Artifact{ID: flowID},
		Section:  aSection,
	}
	changes, err := srv.Execute(context.Background(), exec)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	emitted := changes[0].(*state.EmitEvent)
	assert.Equal(t, EventType, emitted.Event.Type)
	assert.Equal(t, "All good.", emitted.Event.Payload["text"])
	assert.Equal(t, ident.FullArtifactSectionID("project:flow:report"), emitted.Event.OperationID)
	assert.Equal(t, ident.FullArtifactSectionID("project:flow:done"), changes[1].(*state.AddWorkUnit).OperationID)

	_, err = srv.Construct(flowID, &artifact.RawSection{Title: "Report"})
	assert.Error(t, err)
}
