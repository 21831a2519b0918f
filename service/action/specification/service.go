// Package specification provides the plain document artifact kind.
package specification

import (
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/service/action/section"
)

const name = "specification"

// Service is an artifact kind without structural rules.
type Service struct {
	sectionKind string
}

// New creates a specification kind whose sections default to sectionKind.
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
	return Assemble(id, section.Primary(head), sections), nil
}

func (s *Service) Validate(a *artifact.Artifact) []error {
	return nil
}

// Assemble builds an artifact with primary placed first.
func Assemble(id ident.FullArtifactID, primary *artifact.Section, sections []*artifact.Section) *artifact.Artifact {
	ret := &artifact.Artifact{
		ID:          id,
		Title:       primary.Title,
		Description: primary.Description,
		Sections:    make([]*artifact.Section, 0, len(sections)+1),
	}
	ret.Sections = append(ret.Sections, primary)
	ret.Sections = append(ret.Sections, sections...)
	return ret
}
