package world

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/mdflow/model/ident"
)

// Registry resolves worlds by id.
type Registry struct {
	worlds map[ident.WorldID]World
	mux    sync.RWMutex
}

// NewRegistry creates a registry holding worlds.
func NewRegistry(worlds ...World) *Registry {
	ret := &Registry{worlds: map[ident.WorldID]World{}}
	for _, w := range worlds {
		ret.Register(w)
	}
	return ret
}

// Register adds or replaces a world.
func (r *Registry) Register(w World) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.worlds[w.ID()] = w
}

// Lookup returns the world registered under id.
func (r *Registry) Lookup(id ident.WorldID) (World, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	w, ok := r.worlds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownWorld, id)
	}
	return w, nil
}

// IDs returns registered world ids, sorted.
func (r *Registry) IDs() []ident.WorldID {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]ident.WorldID, 0, len(r.worlds))
	for id := range r.worlds {
		ret = append(ret, id)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Fetch returns the source of a full artifact id.
func (r *Registry) Fetch(ctx context.Context, id ident.FullArtifactID) ([]byte, error) {
	w, err := r.Lookup(id.World())
	if err != nil {
		return nil, err
	}
	return w.Fetch(ctx, id.Artifact())
}

// List returns matching ids across every world whose id can match the pattern.
func (r *Registry) List(ctx context.Context, pattern ident.FullArtifactIDPattern) ([]ident.FullArtifactID, error) {
	var ret []ident.FullArtifactID
	for _, id := range r.IDs() {
		if !pattern.CanMatchPrefix([]string{string(id)}) {
			continue
		}
		w, err := r.Lookup(id)
		if err != nil {
			return nil, err
		}
		ids, err := w.List(ctx, pattern)
		if err != nil {
			return nil, err
		}
		ret = append(ret, ids...)
	}
	return ret, nil
}
