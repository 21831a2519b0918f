package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/service/dao"
	"github.com/viant/mdflow/service/dao/criteria"
	"github.com/viant/mdflow/service/dao/session"
)

func running() *state.ConsistentState {
	mutable := state.NewConsistentState().Mutate()
	mutable.Started = true
	task := mutable.AddTask("project:flow:start", nil)
	_, _ = mutable.AddWorkUnit(task.ID, "project:flow:start", nil)
	return mutable.Freeze()
}

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()

	_, err := srv.Load(ctx, "s1")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	assert.True(t, errors.Is(srv.Save(ctx, &session.Session{ID: "s1"}), dao.ErrNilEntity))
	assert.True(t, errors.Is(srv.Save(ctx, &session.Session{State: running()}), dao.ErrInvalidID))

	snapshot := running()
	require.NoError(t, srv.Save(ctx, &session.Session{ID: "s1", State: snapshot}))
	require.NoError(t, srv.Save(ctx, &session.Session{ID: "s2", State: state.NewConsistentState()}))

	loaded, err := srv.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, snapshot.Equal(loaded.State))
	assert.NotSame(t, snapshot, loaded.State)

	testCases := []struct {
		name       string
		parameters []*dao.Parameter
		expect     []string
	}{
		{name: "all", expect: []string{"s1", "s2"}},
		{name: "running", parameters: []*dao.Parameter{dao.NewParameter(criteria.Status, string(state.StatusRunning))}, expect: []string{"s1"}},
		{name: "not started", parameters: []*dao.Parameter{dao.NewParameter(criteria.Status, string(state.StatusNotStarted))}, expect: []string{"s2"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sessions, err := srv.List(ctx, tc.parameters...)
			require.NoError(t, err)
			var ids []string
			for _, aSession := range sessions {
				ids = append(ids, aSession.ID)
			}
			assert.Equal(t, tc.expect, ids)
		})
	}

	require.NoError(t, srv.Delete(ctx, "s1"))
	assert.True(t, errors.Is(srv.Delete(ctx, "s1"), dao.ErrNotFound))
}
