package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/mdflow/internal/directive"
	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/service/dao"
	"github.com/viant/mdflow/service/dao/session"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/tracing"
)

// Loader returns constructed artifacts.
type Loader interface {
	Load(ctx context.Context, id ident.FullArtifactID) (*artifact.Artifact, error)
}

// Result is the outcome of a run.
type Result struct {
	State *state.ConsistentState
	// Steps is the number of work units executed.
	Steps int
}

// Status returns the session status after the run.
func (r *Result) Status() state.Status {
	return r.State.Status()
}

// Service runs one session
type Service struct {
	sessionID  string
	config     Config
	store      session.Store
	artifacts  Loader
	primitives *primitive.Registry
	events     *event.Service
	logger     logging.Logger
}

// New creates a processor for sessionID
func New(sessionID string, options ...Option) (*Service, error) {
	s := &Service{sessionID: sessionID, config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if s.store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if s.artifacts == nil {
		return nil, fmt.Errorf("artifact loader is required")
	}
	if s.primitives == nil {
		return nil, fmt.Errorf("primitives registry is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.events == nil {
		s.events = event.New()
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	return s, nil
}

// SessionID returns the session id
func (s *Service) SessionID() string {
	return s.sessionID
}

// Snapshot returns the persisted state; a session never saved is empty and not started.
func (s *Service) Snapshot(ctx context.Context) (*state.ConsistentState, error) {
	aSession, err := s.store.Load(ctx, s.sessionID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return state.NewConsistentState(), nil
		}
		return nil, fmt.Errorf("failed to load session %v: %w", s.sessionID, err)
	}
	return aSession.State, nil
}

// Start resets the session to an empty, not started snapshot.
func (s *Service) Start(ctx context.Context) (*state.ConsistentState, error) {
	ret := state.NewConsistentState()
	if err := s.save(ctx, ret); err != nil {
		return nil, err
	}
	s.logger.Info("session reset", "session", s.sessionID)
	return ret, nil
}

// StartWorkflow pushes a task at the workflow's start operation and runs.
func (s *Service) StartWorkflow(ctx context.Context, workflowID ident.FullArtifactID, init map[string]interface{}) (ret *Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "mdflow.start_workflow", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"session.id": s.sessionID, "workflow.id": string(workflowID)})

	current, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	workflow, err := s.artifacts.Load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(workflow)
	if err != nil {
		return nil, err
	}
	if g.Node(g.StartOperationID) == nil {
		return nil, &graph.OperationError{Err: graph.ErrWrongStartOperation, Operation: g.StartOperationID, Detail: "no such operation"}
	}
	start := workflow.SectionID(g.StartOperationID)
	mutable := current.Mutate()
	mutable.Started = true
	task := mutable.AddTask(start, init)
	if _, err = mutable.AddWorkUnit(task.ID, start, nil); err != nil {
		return nil, err
	}
	next := mutable.Freeze()
	if err = s.save(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("workflow started", "session", s.sessionID, "workflow", workflowID, "task", task.ID)
	return s.Run(ctx)
}

// CompleteActionRequest resolves a pending request by scheduling target, a
// section of the originating operation's artifact, on the current task, then
// runs. A target outside the allowed transitions leaves the session unchanged.
func (s *Service) CompleteActionRequest(ctx context.Context, requestID state.ActionRequestID, target string) (ret *Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "mdflow.complete_action_request", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"session.id": s.sessionID, "request.id": string(requestID), "target": target})

	current, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	request, ok := current.ActionRequest(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: %v", state.ErrActionRequestNotFound, requestID)
	}
	anArtifact, aSection, err := s.operation(ctx, request.OperationID)
	if err != nil {
		return nil, err
	}
	targetID, err := s.transition(anArtifact, aSection, target)
	if err != nil {
		return nil, err
	}
	mutable := current.Mutate()
	task := mutable.CurrentTask()
	if task == nil {
		return nil, state.ErrNoActiveTask
	}
	if err = mutable.RemoveActionRequest(requestID); err != nil {
		return nil, err
	}
	if _, err = mutable.AddWorkUnit(task.ID, targetID, nil); err != nil {
		return nil, err
	}
	if err = s.save(ctx, mutable.Freeze()); err != nil {
		return nil, err
	}
	s.logger.Info("action request completed", "session", s.sessionID, "request", requestID, "target", targetID)
	return s.Run(ctx)
}

// transition resolves target against the operation and checks it is allowed.
func (s *Service) transition(anArtifact *artifact.Artifact, aSection *artifact.Section, target string) (ident.FullArtifactSectionID, error) {
	operationID := anArtifact.SectionID(aSection.ID)
	resolved, err := directive.ResolveSection(anArtifact.ID, target)
	if err != nil {
		return "", fmt.Errorf("%w: %v -> %q: %v", ErrInvalidOperationTransition, operationID, target, err)
	}
	if !allows(anArtifact, aSection, resolved) {
		return "", fmt.Errorf("%w: %v -> %v", ErrInvalidOperationTransition, operationID, resolved)
	}
	return resolved, nil
}

func allows(anArtifact *artifact.Artifact, aSection *artifact.Section, target ident.FullArtifactSectionID) bool {
	meta, ok := aSection.Meta.(*graph.OperationMeta)
	if !ok || meta == nil {
		return false
	}
	return target.FullArtifactID() == anArtifact.ID && meta.Allows(target.Local())
}

func (s *Service) operation(ctx context.Context, id ident.FullArtifactSectionID) (*artifact.Artifact, *artifact.Section, error) {
	anArtifact, err := s.artifacts.Load(ctx, id.FullArtifactID())
	if err != nil {
		return nil, nil, err
	}
	aSection := anArtifact.Section(id.Local())
	if aSection == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrOperationNotFound, id)
	}
	return anArtifact, aSection, nil
}

func (s *Service) save(ctx context.Context, snapshot *state.ConsistentState) error {
	if err := s.store.Save(ctx, &session.Session{ID: s.sessionID, State: snapshot}); err != nil {
		return fmt.Errorf("failed to save session %v: %w", s.sessionID, err)
	}
	return nil
}
