// Package workflow provides the workflow artifact kind.
package workflow

import (
	"fmt"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/service/action/section"
	"github.com/viant/mdflow/service/action/specification"
)

const name = "workflow"

// KeyStartOperationID names the start operation in the primary section config.
const KeyStartOperationID = "start_operation_id"

// Service constructs workflows and validates their operation graph.
type Service struct {
	sectionKind string
}

// New creates a workflow kind whose sections default to sectionKind.
func New(sectionKind string) *Service {
	return &Service{sectionKind: sectionKind}
}

// Name returns the kind name
func (s *Service) Name() string {
	return name
}

func (s *Service) Capability() types.Capability {
	return types.CapabilityArtifact
}

func (s *Service) SectionKind() string {
	return s.sectionKind
}

func (s *Service) Construct(id ident.FullArtifactID, head *artifact.RawSection, sections []*artifact.Section) (*artifact.Artifact, error) {
	value, ok, err := section.String(head.Config, KeyStartOperationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NewMissingConfigError(KeyStartOperationID)
	}
	start, err := section.Local(id, value)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", KeyStartOperationID, err)
	}
	primary := section.Primary(head)
	primary.Meta = &graph.WorkflowMeta{StartOperationID: start}
	return specification.Assemble(id, primary, sections), nil
}

// Validate returns graph findings; an artifact without workflow metadata yields graph.ErrNotWorkflow.
func (s *Service) Validate(a *artifact.Artifact) []error {
	g, err := graph.New(a)
	if err != nil {
		return []error{err}
	}
	return g.Validate()
}
