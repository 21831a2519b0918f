// Package world stores artifact sources in named namespaces.
package world

import (
	"context"
	"errors"

	"github.com/viant/mdflow/model/ident"
)

var (
	// ErrArtifactNotFound is returned when a world has no source for an artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrReadOnlyWorld is returned when writing to a read-only world.
	ErrReadOnlyWorld = errors.New("world is read-only")
	// ErrUnknownWorld is returned when no world is registered under an id.
	ErrUnknownWorld = errors.New("unknown world")
)

// World is a namespace of artifact sources.
type World interface {
	ID() ident.WorldID
	ReadOnly() bool
	Has(ctx context.Context, id ident.ArtifactID) (bool, error)
	// Fetch returns the markdown source of an artifact.
	Fetch(ctx context.Context, id ident.ArtifactID) ([]byte, error)
	Update(ctx context.Context, id ident.ArtifactID, source []byte) error
	Remove(ctx context.Context, id ident.ArtifactID) error
	// List returns ids of this world matched by pattern, sorted.
	List(ctx context.Context, pattern ident.FullArtifactIDPattern) ([]ident.FullArtifactID, error)
}
