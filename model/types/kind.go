package types

import (
	"context"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/runtime/execution"
)

// Capability tags the closed set of kind variants.
type Capability int

const (
	CapabilityArtifact Capability = iota + 1
	CapabilitySection
	CapabilityOperation
)

func (c Capability) String() string {
	switch c {
	case CapabilityArtifact:
		return "artifact kind"
	case CapabilitySection:
		return "section kind"
	case CapabilityOperation:
		return "operation kind"
	}
	return "unknown"
}

// Kind is anything the registry can resolve.
type Kind interface {
	Capability() Capability
}

// ArtifactKind constructs and validates whole artifacts.
type ArtifactKind interface {
	Kind
	// SectionKind is the kind applied to sections that do not name one.
	SectionKind() string
	// Construct builds the artifact from its head section and constructed sub-sections.
	Construct(id ident.FullArtifactID, head *artifact.RawSection, sections []*artifact.Section) (*artifact.Artifact, error)
	// Validate returns every structural finding.
	Validate(a *artifact.Artifact) []error
}

// SectionKind constructs one section from its raw form.
type SectionKind interface {
	Kind
	Construct(artifactID ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error)
	Validate(artifactID ident.FullArtifactID, section *artifact.Section) []error
}

// OperationKind is a section kind that can be executed as a workflow step.
type OperationKind interface {
	SectionKind
	Execute(ctx context.Context, exec *execution.Context) ([]state.Change, error)
}
