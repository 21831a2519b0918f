// Package request provides the request_action operation kind, which hands
// control to the external actor.
package request

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

const name = "request_action"

// Service raises an action request carrying the section's rendered text.
// Allowed transitions come from goto directives in that text.
type Service struct{}

// New creates a request_action kind.
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
	ret, err := section.New(raw)
	if err != nil {
		return nil, err
	}
	if ret.Meta, err = section.Operation(artifactID, raw, graph.ModeNormal); err != nil {
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
	return []state.Change{
		&state.AddActionRequest{
			OperationID: exec.OperationID(),
			Title:       exec.Section.Title,
			Request:     exec.Section.Description,
		},
	}, nil
}
