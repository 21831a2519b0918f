package finish

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
	aSection, err := srv.Construct(flowID, &artifact.RawSection{Title: "Done"})
	require.NoError(t, err)
	assert.Equal(t, graph.ModeFinal, aSection.Meta.(*graph.OperationMeta).FSMMode)
	assert.Empty(t, srv.Validate(flowID, aSection))

	changes, err := srv.Execute(context.Background(), &execution.Context{Task: &state.Task{ID: "T-1-abc"}, Section: aSection})
	require.NoError(t, err)
	assert.Equal(t, []state.Change{&state.FinishTask{TaskID: "T-1-abc"}}, changes)

	_, err = srv.Construct(flowID, &artifact.RawSection{Title: "Done", Config: map[string]interface{}{"fsm_mode": "normal"}})
	assert.Error(t, err)
}
