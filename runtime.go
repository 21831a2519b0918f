package mdflow

import (
	"context"
	"fmt"

	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	artifacts "github.com/viant/mdflow/service/artifact"
	"github.com/viant/mdflow/service/dao"
	"github.com/viant/mdflow/service/dao/criteria"
	"github.com/viant/mdflow/service/dao/session"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/service/processor"
	"github.com/viant/mdflow/service/world"
)

// Runtime represents the mdflow engine runtime
type Runtime struct {
	config     *Config
	worlds     *world.Registry
	primitives *primitive.Registry
	artifacts  *artifacts.Service
	store      session.Store
	events     *event.Service
	logger     logging.Logger
}

// Worlds returns the world registry
func (r *Runtime) Worlds() *world.Registry { return r.worlds }

// Primitives returns the primitives registry
func (r *Runtime) Primitives() *primitive.Registry { return r.primitives }

// Artifacts returns the artifact loader
func (r *Runtime) Artifacts() *artifacts.Service { return r.artifacts }

// Events returns the event service; handlers subscribed later see later events only.
func (r *Runtime) Events() *event.Service { return r.events }

// Session returns a processor bound to sessionID; empty means Config.Session.ID.
func (r *Runtime) Session(sessionID string) (*processor.Service, error) {
	if sessionID == "" {
		sessionID = r.config.Session.ID
	}
	return processor.New(sessionID,
		processor.WithConfig(processor.Config{MaxSteps: r.config.Runtime.MaxSteps, Diff: r.config.Runtime.Diff}),
		processor.WithSessionStore(r.store),
		processor.WithArtifacts(r.artifacts),
		processor.WithPrimitives(r.primitives),
		processor.WithEventService(r.events),
		processor.WithLogger(r.logger),
	)
}

// LoadArtifact returns a constructed artifact.
func (r *Runtime) LoadArtifact(ctx context.Context, id ident.FullArtifactID) (*artifact.Artifact, error) {
	return r.artifacts.Load(ctx, id)
}

// ListArtifacts returns ids matching pattern across all worlds.
func (r *Runtime) ListArtifacts(ctx context.Context, pattern string) ([]ident.FullArtifactID, error) {
	parsed, err := ident.ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return r.artifacts.List(ctx, parsed)
}

// ValidateArtifacts loads every artifact matching pattern and returns the
// findings of those that fail.
func (r *Runtime) ValidateArtifacts(ctx context.Context, pattern string) (map[ident.FullArtifactID][]error, error) {
	parsed, err := ident.ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return r.artifacts.Validate(ctx, parsed)
}

// RefreshArtifact discards cached copies; the next load reads the world again.
func (r *Runtime) RefreshArtifact(ids ...ident.FullArtifactID) {
	r.artifacts.Refresh(ids...)
}

// UpsertArtifact checks that source constructs, writes it to its world and
// drops the cached copy. Nil source only refreshes.
func (r *Runtime) UpsertArtifact(ctx context.Context, id ident.FullArtifactID, source []byte) error {
	if source == nil {
		r.RefreshArtifact(id)
		return nil
	}
	if _, err := r.artifacts.Decode(id, source); err != nil {
		return err
	}
	w, err := r.worlds.Lookup(id.World())
	if err != nil {
		return err
	}
	if err = w.Update(ctx, id.Artifact(), source); err != nil {
		return err
	}
	r.RefreshArtifact(id)
	r.logger.Info("artifact updated", "artifact", id)
	return nil
}

// Snapshot returns the persisted state of a session.
func (r *Runtime) Snapshot(ctx context.Context, sessionID string) (*state.ConsistentState, error) {
	srv, err := r.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return srv.Snapshot(ctx)
}

// Start resets a session.
func (r *Runtime) Start(ctx context.Context, sessionID string) (*state.ConsistentState, error) {
	srv, err := r.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return srv.Start(ctx)
}

// StartWorkflow starts workflowID in a session and runs until the session
// awaits an action, completes or fails.
func (r *Runtime) StartWorkflow(ctx context.Context, sessionID string, workflowID ident.FullArtifactID, init map[string]interface{}) (*processor.Result, error) {
	srv, err := r.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return srv.StartWorkflow(ctx, workflowID, init)
}

// Run resumes a session.
func (r *Runtime) Run(ctx context.Context, sessionID string) (*processor.Result, error) {
	srv, err := r.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return srv.Run(ctx)
}

// CompleteActionRequest answers a pending action request with a transition target.
func (r *Runtime) CompleteActionRequest(ctx context.Context, sessionID string, requestID state.ActionRequestID, target string) (*processor.Result, error) {
	srv, err := r.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return srv.CompleteActionRequest(ctx, requestID, target)
}

// Sessions lists persisted sessions, optionally only those in the given statuses.
func (r *Runtime) Sessions(ctx context.Context, statuses ...state.Status) ([]*session.Session, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		parameters = append(parameters, dao.NewParameter(criteria.Status, values...))
	}
	return r.store.List(ctx, parameters...)
}

// DeleteSession removes a persisted session.
func (r *Runtime) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return r.store.Delete(ctx, sessionID)
}
