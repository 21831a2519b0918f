package ident

import (
	"fmt"
	"strings"
)

const (
	// Delimiter separates identifier segments.
	Delimiter = ':'
	// AnySegment matches exactly one segment in a pattern.
	AnySegment = "*"
	// AnySegments matches zero or more segments in a pattern.
	AnySegments = "**"
)

const delimiter = string(Delimiter)

// WorldID names a storage namespace.
type WorldID string

// ArtifactID names an artifact inside a world.
type ArtifactID string

// FullArtifactID names an artifact across worlds: world:artifact.
type FullArtifactID string

// ArtifactSectionID names a section inside an artifact.
type ArtifactSectionID string

// FullArtifactSectionID names a section across worlds: world:artifact:section.
type FullArtifactSectionID string

func parse(text string, minSegments, maxSegments int) ([]string, error) {
	segments, err := split(text, false)
	if err != nil {
		return nil, err
	}
	if len(segments) < minSegments {
		return nil, malformed(text, fmt.Sprintf("expected at least %d segments, got %d", minSegments, len(segments)))
	}
	if maxSegments > 0 && len(segments) > maxSegments {
		return nil, malformed(text, fmt.Sprintf("expected at most %d segments, got %d", maxSegments, len(segments)))
	}
	return segments, nil
}

// ParseWorldID parses a single-segment world id.
func ParseWorldID(text string) (WorldID, error) {
	if _, err := parse(text, 1, 1); err != nil {
		return "", err
	}
	return WorldID(text), nil
}

// ParseArtifactID parses an artifact id local to a world.
func ParseArtifactID(text string) (ArtifactID, error) {
	if _, err := parse(text, 1, 0); err != nil {
		return "", err
	}
	return ArtifactID(text), nil
}

// ParseFullArtifactID parses world:artifact.
func ParseFullArtifactID(text string) (FullArtifactID, error) {
	if _, err := parse(text, 2, 0); err != nil {
		return "", err
	}
	return FullArtifactID(text), nil
}

// ParseArtifactSectionID parses a single-segment section id.
func ParseArtifactSectionID(text string) (ArtifactSectionID, error) {
	if _, err := parse(text, 1, 1); err != nil {
		return "", err
	}
	return ArtifactSectionID(text), nil
}

// ParseFullArtifactSectionID parses world:artifact:section.
func ParseFullArtifactSectionID(text string) (FullArtifactSectionID, error) {
	if _, err := parse(text, 3, 0); err != nil {
		return "", err
	}
	return FullArtifactSectionID(text), nil
}

func (id WorldID) String() string { return string(id) }

// Artifact returns the full id of an artifact inside this world.
func (id WorldID) Artifact(artifactID ArtifactID) FullArtifactID {
	return FullArtifactID(string(id) + delimiter + string(artifactID))
}

func (id ArtifactID) String() string { return string(id) }

// Segments returns the id segments.
func (id ArtifactID) Segments() []string {
	return strings.Split(string(id), delimiter)
}

// NewArtifactID joins segments; it does not validate them.
func NewArtifactID(segments ...string) ArtifactID {
	return ArtifactID(strings.Join(segments, delimiter))
}

func (id FullArtifactID) String() string { return string(id) }

// Segments returns the id segments, world first.
func (id FullArtifactID) Segments() []string {
	return strings.Split(string(id), delimiter)
}

// World returns the world segment.
func (id FullArtifactID) World() WorldID {
	world, _, _ := strings.Cut(string(id), delimiter)
	return WorldID(world)
}

// Artifact returns the id local to the world.
func (id FullArtifactID) Artifact() ArtifactID {
	_, artifact, _ := strings.Cut(string(id), delimiter)
	return ArtifactID(artifact)
}

// Section returns the full id of a section of this artifact.
func (id FullArtifactID) Section(sectionID ArtifactSectionID) FullArtifactSectionID {
	return FullArtifactSectionID(string(id) + delimiter + string(sectionID))
}

func (id ArtifactSectionID) String() string { return string(id) }

func (id FullArtifactSectionID) String() string { return string(id) }

// Segments returns the id segments, world first.
func (id FullArtifactSectionID) Segments() []string {
	return strings.Split(string(id), delimiter)
}

// FullArtifactID returns the owning artifact.
func (id FullArtifactSectionID) FullArtifactID() FullArtifactID {
	idx := strings.LastIndexByte(string(id), Delimiter)
	if idx < 0 {
		return ""
	}
	return FullArtifactID(id[:idx])
}

// Local returns the section id inside its artifact.
func (id FullArtifactSectionID) Local() ArtifactSectionID {
	idx := strings.LastIndexByte(string(id), Delimiter)
	return ArtifactSectionID(id[idx+1:])
}
