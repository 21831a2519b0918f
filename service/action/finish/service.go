// Package finish provides the final operation kind.
package finish

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

const name = "finish"

// Service pops the executing task.
type Service struct{}

// New creates a finish kind.
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
	meta, err := section.Operation(artifactID, raw, graph.ModeFinal)
	if err != nil {
		return nil, err
	}
	if meta.FSMMode != graph.ModeFinal {
		return nil, types.NewInvalidConfigError(section.KeyFSMMode, meta.FSMMode, string(graph.ModeFinal))
	}
	ret.Meta = meta
	return ret, nil
}

func (s *Service) Validate(artifactID ident.FullArtifactID, aSection *artifact.Section) []error {
	meta, err := section.Meta(aSection)
	if err != nil {
		return []error{err}
	}
	if meta.FSMMode != graph.ModeFinal {
		return []error{fmt.Errorf("section %v: finish must be final, got %v", aSection.ID, meta.FSMMode)}
	}
	return nil
}

func (s *Service) Execute(ctx context.Context, exec *execution.Context) ([]state.Change, error) {
	return []state.Change{&state.FinishTask{TaskID: exec.Task.ID}}, nil
}
