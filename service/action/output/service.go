// Package output provides an operation kind that emits its text as an event.
package output

import (
	"context"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/runtime/execution"
	"github.com/viant/mdflow/service/action/section"
)

const name = "output"

// EventType is the type of events emitted by this kind.
const EventType = "output"

// KeyNextOperation names the successor operation.
const KeyNextOperation = "next_operation"

// Service prints a section as an output event then moves on.
type Service struct{}

// New creates an output kind.
func New() *Service {
	return &Service{}
}

// Name returns the kind name
func (s *Service) Name() string {
	return name
}

func (s *Service) Capability() types.Capability {
	return types.CapabilityOperation
}

func (s *Service) Construct(artifactID ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error) {
	if _, ok, err := section.String(raw.Config, KeyNextOperation); err != nil {
		return nil, err
	} else if !ok {
		return nil, types.NewMissingConfigError(KeyNextOperation)
	}
	ret, err := section.New(raw)
	if err != nil {
		return nil, err
	}
	if ret.Meta, err = section.Operation(artifactID, raw, graph.ModeNormal, KeyNextOperation); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) Validate(artifactID ident.FullArtifactID, aSection *artifact.Section) []error {
	if _, err := section.Meta(aSection); err != nil {
		return []error{err}
	}
	return nil
}

func (s *Service) Execute(ctx context.Context, exec *execution.Context) ([]state.Change, error) {
	next, _, err := section.String(exec.Section.Config, KeyNextOperation)
	if err != nil {
		return nil, err
	}
	target, err := section.Local(exec.Artifact.ID, next)
	if err != nil {
		return nil, err
	}
	event := state.Event{
		Type:        EventType,
		TaskID:      exec.Task.ID,
		OperationID: exec.OperationID(),
		Payload: map[string]interface{}{
			"title": exec.Section.Title,
			"text":  exec.Section.Description,
		},
	}
	return []state.Change{&state.EmitEvent{Event: event}, exec.Goto(target)}, nil
}
