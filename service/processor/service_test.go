package processor

import (
	"context"
	"embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/progress"
	"github.com/viant/mdflow/runtime/execution"
	"github.com/viant/mdflow/service/action"
	"github.com/viant/mdflow/service/action/output"
	"github.com/viant/mdflow/service/action/section"
	artifacts "github.com/viant/mdflow/service/artifact"
	"github.com/viant/mdflow/service/dao/session/memory"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/service/world"
)

//go:embed testdata/*
var testFS embed.FS

// jumpKind schedules "done" regardless of its declared transitions.
type jumpKind struct{}

func (jumpKind) Capability() types.Capability { return types.CapabilityOperation }

func (jumpKind) Construct(artifactID ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error) {
	ret, err := section.New(raw)
	if err != nil {
		return nil, err
	}
	ret.Meta, err = section.Operation(artifactID, raw, graph.ModeNormal)
	return ret, err
}

func (jumpKind) Validate(ident.FullArtifactID, *artifact.Section) []error { return nil }

func (jumpKind) Execute(_ context.Context, exec *execution.Context) ([]state.Change, error) {
	return []state.Change{exec.Goto("done")}, nil
}

type fixture struct {
	store    *memory.Service
	recorder *event.Recorder
	srv      *Service
}

func newFixture(t *testing.T, options ...Option) *fixture {
	primitives := primitive.New()
	action.Register(primitives)
	primitives.Register("test", primitive.Module{"jump": jumpKind{}})
	worlds := world.NewRegistry(world.NewFS("demo", "embed:///testdata", world.WithReadOnly(true), world.WithStorageOptions(&testFS)))
	ret := &fixture{store: memory.New(), recorder: &event.Recorder{}}
	options = append([]Option{
		WithSessionStore(ret.store),
		WithArtifacts(artifacts.New(worlds, primitives)),
		WithPrimitives(primitives),
		WithEventService(event.New(event.WithHandler(ret.recorder.Handle))),
	}, options...)
	srv, err := New("s1", options...)
	require.NoError(t, err)
	ret.srv = srv
	return ret
}

func TestNew(t *testing.T) {
	_, err := New("s1")
	assert.Error(t, err)
	_, err = New("", WithSessionStore(memory.New()))
	assert.Error(t, err)
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	snapshot, err := f.srv.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.StatusNotStarted, snapshot.Status())

	result, err := f.srv.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Steps)
	assert.Equal(t, state.StatusNotStarted, result.Status())
}

func TestService_StartWorkflow(t *testing.T) {
	testCases := []struct {
		description string
		workflow    ident.FullArtifactID
		steps       int
		status      state.Status
		events      []string
		requests    int
	}{
		{
			description: "chain of operations runs to completion",
			workflow:    "demo:flows:chain",
			steps:       3,
			status:      state.StatusCompleted,
			events:      []string{"First note.", "Second note."},
		},
		{
			description: "request action stops the run",
			workflow:    "demo:flows:review",
			steps:       1,
			status:      state.StatusAwaitingAction,
			requests:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ctx, tracker := progress.WithNewTracker(context.Background(), "s1", string(tc.workflow), nil)
			f := newFixture(t)
			result, err := f.srv.StartWorkflow(ctx, tc.workflow, map[string]interface{}{"user": "ann"})
			require.NoError(t, err)
			assert.Equal(t, tc.steps, result.Steps)
			assert.Equal(t, tc.status, result.Status())
			assert.Len(t, result.State.ActionRequests(), tc.requests)

			var texts []string
			for _, published := range f.recorder.Events() {
				emitted := published.Data.(*state.Event)
				assert.Equal(t, output.EventType, emitted.Type)
				assert.Equal(t, "s1", published.Context.SessionID)
				texts = append(texts, emitted.Payload["text"].(string))
			}
			assert.Equal(t, tc.events, texts)

			persisted, err := f.srv.Snapshot(ctx)
			require.NoError(t, err)
			assert.True(t, persisted.Equal(result.State))

			snapshot := tracker.Snapshot()
			assert.Equal(t, tc.steps, snapshot.Steps)
			assert.Equal(t, len(tc.events), snapshot.Events)
		})
	}
}

func TestService_CompleteActionRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	started, err := f.srv.StartWorkflow(ctx, "demo:flows:review", nil)
	require.NoError(t, err)
	requests := started.State.ActionRequests()
	require.Len(t, requests, 1)
	request := requests[0]
	assert.Equal(t, ident.FullArtifactSectionID("demo:flows:review:review"), request.OperationID)
	assert.Equal(t, "Review", request.Title)

	testCases := []struct {
		description string
		requestID   state.ActionRequestID
		target      string
		expectErr   error
	}{
		{description: "target outside allowed transitions", requestID: request.ID, target: "notes", expectErr: ErrInvalidOperationTransition},
		{description: "target in another artifact", requestID: request.ID, target: "demo:flows:chain:done", expectErr: ErrInvalidOperationTransition},
		{description: "unknown request", requestID: "ar-999", target: "approve", expectErr: state.ErrActionRequestNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := f.srv.CompleteActionRequest(ctx, tc.requestID, tc.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectErr), err.Error())
			snapshot, err := f.srv.Snapshot(ctx)
			require.NoError(t, err)
			assert.True(t, snapshot.Equal(started.State))
		})
	}

	result, err := f.srv.CompleteActionRequest(ctx, request.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Steps)
	assert.Equal(t, state.StatusCompleted, result.Status())
	assert.Empty(t, result.State.Tasks())
	assert.Empty(t, result.State.WorkUnits())
	assert.Empty(t, result.State.ActionRequests())
	require.Len(t, f.recorder.Events(), 1)
	assert.Equal(t, "Approved.", f.recorder.Events()[0].Data.(*state.Event).Payload["text"])
}

func TestService_Run_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	result, err := f.srv.StartWorkflow(ctx, "demo:flows:jump", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOperationTransition), err.Error())
	assert.Equal(t, 0, result.Steps)
	assert.Equal(t, state.StatusRunning, result.Status())

	units := result.State.WorkUnits()
	require.Len(t, units, 1)
	assert.Equal(t, ident.FullArtifactSectionID("demo:flows:jump:jump"), units[0].OperationID)
	persisted, err := f.srv.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, persisted.Equal(result.State))
}

func TestService_Run_StepLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithConfig(Config{MaxSteps: 5, Diff: true}))
	result, err := f.srv.StartWorkflow(ctx, "demo:flows:loop", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepLimitExceeded))
	assert.Equal(t, 5, result.Steps)
	assert.Equal(t, state.StatusRunning, result.Status())
	assert.Len(t, f.recorder.Events(), 5)

	reset, err := f.srv.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.StatusNotStarted, reset.Status())
}

func TestService_StartWorkflow_NotWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.srv.StartWorkflow(ctx, "demo:flows:missing", nil)
	assert.Error(t, err)
	snapshot, err := f.srv.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.StatusNotStarted, snapshot.Status())
}
