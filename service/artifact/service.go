// Package artifact loads markdown artifacts from worlds and constructs them
// with registered kinds.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/mdflow/internal/directive"
	"github.com/viant/mdflow/internal/markdown"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/service/action"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/service/world"
)

// KeyKind names the kind of an artifact (head section) or section.
const KeyKind = "kind"

// Service loads and caches constructed artifacts.
type Service struct {
	worlds      *world.Registry
	primitives  *primitive.Registry
	renderer    *directive.Renderer
	parser      *markdown.Parser
	defaultKind string
	cache       map[ident.FullArtifactID]*artifact.Artifact
	mux         sync.RWMutex
}

// New creates a loader
func New(worlds *world.Registry, primitives *primitive.Registry, options ...Option) *Service {
	ret := &Service{
		worlds:      worlds,
		primitives:  primitives,
		defaultKind: action.SpecificationKind,
		cache:       map[ident.FullArtifactID]*artifact.Artifact{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.renderer == nil {
		ret.renderer = directive.NewRenderer()
	}
	if ret.parser == nil {
		ret.parser = markdown.New()
	}
	return ret
}

// Load returns the constructed artifact, fetching it on first use.
func (s *Service) Load(ctx context.Context, id ident.FullArtifactID) (*artifact.Artifact, error) {
	s.mux.RLock()
	cached, ok := s.cache[id]
	s.mux.RUnlock()
	if ok {
		return cached, nil
	}
	source, err := s.worlds.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	ret, err := s.Decode(id, source)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.cache[id] = ret
	s.mux.Unlock()
	return ret, nil
}

// Section returns an artifact together with one of its non-primary sections.
func (s *Service) Section(ctx context.Context, id ident.FullArtifactSectionID) (*artifact.Artifact, *artifact.Section, error) {
	anArtifact, err := s.Load(ctx, id.FullArtifactID())
	if err != nil {
		return nil, nil, err
	}
	aSection := anArtifact.Section(id.Local())
	if aSection == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSectionNotFound, id)
	}
	return anArtifact, aSection, nil
}

// List returns artifact ids matched by pattern across worlds.
func (s *Service) List(ctx context.Context, pattern ident.FullArtifactIDPattern) ([]ident.FullArtifactID, error) {
	return s.worlds.List(ctx, pattern)
}

// Validate decodes every matched artifact, bypassing the cache, and returns
// findings keyed by id. Valid artifacts are omitted.
func (s *Service) Validate(ctx context.Context, pattern ident.FullArtifactIDPattern) (map[ident.FullArtifactID][]error, error) {
	ids, err := s.List(ctx, pattern)
	if err != nil {
		return nil, err
	}
	ret := map[ident.FullArtifactID][]error{}
	for _, id := range ids {
		source, err := s.worlds.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, err = s.Decode(id, source); err == nil {
			continue
		}
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			ret[id] = validationErr.Errors
			continue
		}
		ret[id] = []error{err}
	}
	return ret, nil
}

// Refresh drops cached artifacts; with no ids the whole cache is cleared.
func (s *Service) Refresh(ids ...ident.FullArtifactID) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if len(ids) == 0 {
		s.cache = map[ident.FullArtifactID]*artifact.Artifact{}
		return
	}
	for _, id := range ids {
		delete(s.cache, id)
	}
}

// Decode builds an artifact from its markdown source.
func (s *Service) Decode(id ident.FullArtifactID, source []byte) (*artifact.Artifact, error) {
	view, analysis, err := s.renderer.RenderBoth(id, string(source))
	if err != nil {
		return nil, err
	}
	viewSections, err := s.parser.Parse([]byte(view))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", id, err)
	}
	analysisSections, err := s.parser.Parse([]byte(analysis))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", id, err)
	}
	if err = directive.Attach(viewSections, analysisSections); err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	return s.construct(id, viewSections[0], viewSections[1:])
}

func (s *Service) construct(id ident.FullArtifactID, head *artifact.RawSection, raws []*artifact.RawSection) (*artifact.Artifact, error) {
	kindID, err := kindOf(head, s.defaultKind)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	artifactKind, err := s.primitives.ArtifactKind(kindID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	var issues []error
	sections := make([]*artifact.Section, 0, len(raws))
	index := map[ident.ArtifactSectionID]bool{}
	for _, raw := range raws {
		sectionKindID, err := kindOf(raw, artifactKind.SectionKind())
		if err != nil {
			return nil, fmt.Errorf("%v: section %q: %w", id, raw.Title, err)
		}
		sectionKind, err := s.primitives.SectionKind(sectionKindID)
		if err != nil {
			return nil, fmt.Errorf("%v: section %q: %w", id, raw.Title, err)
		}
		aSection, err := sectionKind.Construct(id, raw)
		if err != nil {
			return nil, fmt.Errorf("%v: section %q: %w", id, raw.Title, err)
		}
		aSection.Kind = sectionKindID
		if index[aSection.ID] {
			issues = append(issues, fmt.Errorf("%w: %v", ErrDuplicateSection, id.Section(aSection.ID)))
			continue
		}
		index[aSection.ID] = true
		issues = append(issues, sectionKind.Validate(id, aSection)...)
		sections = append(sections, aSection)
	}
	ret, err := artifactKind.Construct(id, head, sections)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	ret.Kind = kindID
	if primary := ret.Primary(); primary != nil {
		primary.Kind = kindID
	}
	issues = append(issues, artifactKind.Validate(ret)...)
	if len(issues) > 0 {
		return nil, &ValidationError{ID: id, Errors: issues}
	}
	return ret, nil
}

func kindOf(raw *artifact.RawSection, fallback string) (string, error) {
	value, ok := raw.Config[KeyKind]
	if !ok || value == nil {
		return fallback, nil
	}
	kind, ok := value.(string)
	if !ok || kind == "" {
		return "", fmt.Errorf("invalid %v: %v", KeyKind, value)
	}
	return kind, nil
}

// Cached returns ids of cached artifacts, sorted.
func (s *Service) Cached() []ident.FullArtifactID {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]ident.FullArtifactID, 0, len(s.cache))
	for id := range s.cache {
		ret = append(ret, id)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
