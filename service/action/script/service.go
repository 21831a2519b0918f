// Package script provides the run_script operation kind backed by a shell session.
package script

import (
	"context"
	"fmt"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/runtime/execution"
	"github.com/viant/mdflow/service/action/section"
)

const name = "run_script"

// Service runs the configured script and follows the transition selected by its exit status.
type Service struct {
	runner    Runner
	timeoutMs int
	env       map[string]string
}

// New creates a run_script kind
func New(options ...Option) *Service {
	ret := &Service{timeoutMs: defaultTimeoutMs}
	for _, opt := range options {
		opt(ret)
	}
	if ret.runner == nil {
		ret.runner = NewLocalRunner(ret.env)
	}
	return ret
}

// Name returns the kind name
func (s *Service) Name() string {
	return name
}

func (s *Service) Capability() types.Capability {
	return types.CapabilityOperation
}

func (s *Service) Construct(artifactID ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error) {
	input, err := NewInput(raw.Config)
	if err != nil {
		return nil, err
	}
	ret, err := section.New(raw)
	if err != nil {
		return nil, err
	}
	meta, err := section.Operation(artifactID, raw, graph.ModeNormal)
	if err != nil {
		return nil, err
	}
	for _, target := range input.Targets() {
		local, err := section.Local(artifactID, target)
		if err != nil {
			return nil, err
		}
		meta.AddTransition(local)
	}
	ret.Meta = meta
	return ret, nil
}

func (s *Service) Validate(artifactID ident.FullArtifactID, aSection *artifact.Section) []error {
	var errs []error
	if _, err := section.Meta(aSection); err != nil {
		errs = append(errs, err)
	}
	input, err := NewInput(aSection.Config)
	if err != nil {
		return append(errs, err)
	}
	if input.OnSuccess == "" && input.OnFailure == "" && len(input.OnCode) == 0 {
		errs = append(errs, fmt.Errorf("section %v: %w", aSection.ID, types.NewMissingConfigError(KeyOnSuccess)))
	}
	return errs
}

func (s *Service) Execute(ctx context.Context, exec *execution.Context) ([]state.Change, error) {
	input, err := NewInput(exec.Section.Config)
	if err != nil {
		return nil, err
	}
	timeoutMs := input.TimeoutMs
	if timeoutMs == 0 {
		timeoutMs = s.timeoutMs
	}
	stdout, status, err := s.runner.Run(ctx, input.Script, timeoutMs)
	if err != nil && status == 0 {
		return nil, fmt.Errorf("failed to run script of %v: %w", exec.OperationID(), err)
	}
	next := input.Target(status)
	if next == "" {
		return nil, fmt.Errorf("%v: no transition for exit status %d", exec.OperationID(), status)
	}
	target, err := section.Local(exec.Artifact.ID, next)
	if err != nil {
		return nil, err
	}
	var changes []state.Change
	if input.SaveStdoutTo != "" {
		changes = append(changes, &state.SetTaskValue{TaskID: exec.Task.ID, Key: input.SaveStdoutTo, Value: stdout})
	}
	return append(changes, exec.Goto(target)), nil
}

// Close releases the runner when it holds resources.
func (s *Service) Close() error {
	if closer, ok := s.runner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
