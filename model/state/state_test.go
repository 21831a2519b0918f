package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mdflow/model/ident"
)

const (
	startOp  = ident.FullArtifactSectionID("project:flow:start")
	reviewOp = ident.FullArtifactSectionID("project:flow:review")
)

func TestNewID(t *testing.T) {
	testCases := []struct {
		prefix string
		n      int64
	}{
		{prefix: TaskPrefix, n: 1},
		{prefix: WorkUnitPrefix, n: 2},
		{prefix: ActionRequestPrefix, n: 1234567},
	}
	for _, tc := range testCases {
		id := NewID(tc.prefix, tc.n)
		prefix, n, err := ParseID(id)
		require.NoError(t, err, id)
		assert.Equal(t, tc.prefix, prefix)
		assert.Equal(t, tc.n, n)
		assert.Len(t, checksum(tc.n), 3)
	}
	assert.Equal(t, NewID(TaskPrefix, 7), NewID(TaskPrefix, 7))
	assert.NotEqual(t, NewID(TaskPrefix, 7), NewID(TaskPrefix, 8))
}

func TestParseID_Malformed(t *testing.T) {
	valid := NewID(TaskPrefix, 3)
	tampered := valid[:len(valid)-1] + "#"
	for _, id := range []string{"", "T-3", "T-x-abc", "T-03-" + checksum(3), tampered, "-3-" + checksum(3)} {
		_, _, err := ParseID(id)
		assert.True(t, errors.Is(err, ErrMalformedID), id)
	}
}

func TestConsistentState_FreezeMutate(t *testing.T) {
	empty := NewConsistentState()
	assert.True(t, empty.Mutate().Freeze().Equal(empty))

	mutable := empty.Mutate()
	mutable.Started = true
	task := mutable.AddTask(startOp, map[string]interface{}{"nested": map[string]interface{}{"a": 1}})
	_, err := mutable.AddWorkUnit(task.ID, startOp, nil)
	require.NoError(t, err)
	mutable.AddActionRequest(reviewOp, "Review", "Please review")
	frozen := mutable.Freeze()

	assert.True(t, frozen.Mutate().Freeze().Equal(frozen))
	assert.False(t, frozen.Equal(empty))

	// frozen snapshots do not alias the working copy
	mutable.Tasks[0].Context["nested"].(map[string]interface{})["a"] = 2
	tasks := frozen.Tasks()
	assert.Equal(t, 1, tasks[0].Context["nested"].(map[string]interface{})["a"])

	// accessors return copies
	tasks[0].Context["extra"] = true
	_, ok := frozen.Tasks()[0].Context["extra"]
	assert.False(t, ok)
}

func TestConsistentState_JSON(t *testing.T) {
	mutable := NewConsistentState().Mutate()
	mutable.Started = true
	task := mutable.AddTask(startOp, nil)
	_, err := mutable.AddWorkUnit(task.ID, reviewOp, map[string]interface{}{"k": "v"})
	require.NoError(t, err)
	request := mutable.AddActionRequest(reviewOp, "Review", "Do it")
	frozen := mutable.Freeze()

	data, err := Encode(frozen)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"work_units"`)
	assert.Contains(t, string(data), `"last_id": 3`)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(frozen))
	actual, ok := decoded.ActionRequest(request.ID)
	require.True(t, ok)
	assert.Equal(t, "Do it", actual.Request)

	emptyJSON, err := NewConsistentState().MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[],"work_units":[],"action_requests":[],"started":false,"last_id":0}`, string(emptyJSON))
}

func TestConsistentState_DecodeRejectsBadIDs(t *testing.T) {
	_, err := Decode([]byte(`{"tasks":[{"id":"T-1-zzz","workflow_id":"a:b:c"}],"last_id":1}`))
	assert.True(t, errors.Is(err, ErrMalformedID))
	_, err = Decode([]byte(`{"tasks":[{"id":"` + NewID(TaskPrefix, 5) + `","workflow_id":"a:b:c"}],"last_id":1}`))
	assert.True(t, errors.Is(err, ErrMalformedID))
	_, err = Decode([]byte(`{"work_units":[{"id":"` + NewID(TaskPrefix, 1) + `"}],"last_id":1}`))
	assert.True(t, errors.Is(err, ErrMalformedID))
}

func TestStatus(t *testing.T) {
	s := NewConsistentState().Mutate()
	assert.Equal(t, StatusNotStarted, s.Status())

	s.Started = true
	assert.Equal(t, StatusCompleted, s.Status())

	task := s.AddTask(startOp, nil)
	assert.Equal(t, StatusStalled, s.Status())

	unit, err := s.AddWorkUnit(task.ID, startOp, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, s.Status())

	s.RemoveWorkUnit(unit.ID)
	request := s.AddActionRequest(startOp, "t", "r")
	assert.Equal(t, StatusAwaitingAction, s.Status())

	require.NoError(t, s.RemoveActionRequest(request.ID))
	require.NoError(t, s.FinishTask(task.ID))
	assert.Equal(t, StatusCompleted, s.Freeze().Status())
}

func TestMutableState_FIFOPerTask(t *testing.T) {
	s := NewConsistentState().Mutate()
	outer := s.AddTask(startOp, nil)
	_, err := s.AddWorkUnit(outer.ID, startOp, nil)
	require.NoError(t, err)
	inner := s.AddTask(reviewOp, nil)
	first, err := s.AddWorkUnit(inner.ID, reviewOp, nil)
	require.NoError(t, err)
	second, err := s.AddWorkUnit(inner.ID, startOp, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, s.NextWorkUnit().ID)
	s.RemoveWorkUnit(first.ID)
	assert.Equal(t, second.ID, s.NextWorkUnit().ID)

	require.NoError(t, s.FinishTask(inner.ID))
	assert.Len(t, s.WorkUnits, 1)
	assert.Equal(t, outer.ID, s.NextWorkUnit().TaskID)
}

func TestMutableState_Apply(t *testing.T) {
	s := NewConsistentState().Mutate()
	s.Started = true
	assert.True(t, errors.Is(s.Apply(&AddWorkUnit{OperationID: startOp}), ErrNoActiveTask))

	task := s.AddTask(startOp, nil)
	err := s.Apply(
		&AddWorkUnit{OperationID: reviewOp},
		&SetTaskValue{Key: "stdout", Value: "ok"},
		&AddActionRequest{OperationID: reviewOp, Title: "Review", Request: "check"},
		&EmitEvent{Event: Event{Type: "output", Payload: map[string]interface{}{"text": "hi"}}},
	)
	require.NoError(t, err)
	assert.Len(t, s.WorkUnits, 1)
	assert.Equal(t, task.ID, s.WorkUnits[0].TaskID)
	assert.Equal(t, "ok", s.Task(task.ID).Context["stdout"])
	assert.Len(t, s.ActionRequests, 1)
	require.Len(t, s.Events(), 1)
	assert.Equal(t, "output", s.Events()[0].Type)

	require.NoError(t, s.Apply(&FinishTask{}))
	assert.Empty(t, s.Tasks)
	assert.Empty(t, s.WorkUnits)

	assert.True(t, errors.Is(s.Apply(&FinishTask{TaskID: "T-9-abc"}), ErrTaskNotFound))
	assert.Error(t, s.Apply(&EmitEvent{}))
}

func TestDiff(t *testing.T) {
	before := NewConsistentState()
	mutable := before.Mutate()
	mutable.Started = true
	after := mutable.Freeze()

	diff, err := Diff(before, after)
	require.NoError(t, err)
	assert.Contains(t, diff, `-  "started": false`)
	assert.Contains(t, diff, `+  "started": true`)

	diff, err = Diff(after, after)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
