package artifact

import (
	"github.com/viant/mdflow/model/ident"
)

// Section is a constructed section. The primary section has an empty ID.
type Section struct {
	ID          ident.ArtifactSectionID `json:"id,omitempty"`
	Kind        string                  `json:"kind"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Primary     bool                    `json:"primary,omitempty"`
	Config      map[string]interface{}  `json:"config,omitempty"`
	// Meta holds kind specific metadata.
	Meta interface{} `json:"meta,omitempty"`
}

// Artifact is a parsed and constructed document.
type Artifact struct {
	ID          ident.FullArtifactID `json:"id"`
	Kind        string               `json:"kind"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Sections    []*Section           `json:"sections"`
}

// Primary returns the primary section or nil.
func (a *Artifact) Primary() *Section {
	for _, section := range a.Sections {
		if section.Primary {
			return section
		}
	}
	return nil
}

// Section returns the non-primary section with the given id or nil.
func (a *Artifact) Section(id ident.ArtifactSectionID) *Section {
	for _, section := range a.Sections {
		if !section.Primary && section.ID == id {
			return section
		}
	}
	return nil
}

// SectionID returns the full id of a section of this artifact.
func (a *Artifact) SectionID(id ident.ArtifactSectionID) ident.FullArtifactSectionID {
	return a.ID.Section(id)
}
