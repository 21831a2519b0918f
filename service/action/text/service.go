// Package text provides the non-executable text section kind.
package text

import (
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/service/action/section"
)

const name = "text"

// Service is a section kind carrying prose only.
type Service struct{}

// New creates a text section kind.
func New() *Service {
	return &Service{}
}

// Name returns the kind name
func (s *Service) Name() string {
	return name
}

func (s *Service) Capability() types.Capability {
	return types.CapabilitySection
}

func (s *Service) Construct(artifactID ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error) {
	return section.New(raw)
}

func (s *Service) Validate(artifactID ident.FullArtifactID, section *artifact.Section) []error {
	return nil
}
