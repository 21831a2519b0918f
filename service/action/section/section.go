// Package section holds construction helpers shared by the default kinds.
package section

import (
	"fmt"

	"github.com/viant/mdflow/internal/directive"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/graph"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/types"
)

// Common configuration keys.
const (
	KeyID      = "id"
	KeyKind    = "kind"
	KeyFSMMode = "fsm_mode"
)

// ID returns the configured section id or a slug of the title.
func ID(raw *artifact.RawSection) (ident.ArtifactSectionID, error) {
	value, ok, err := String(raw.Config, KeyID)
	if err != nil {
		return "", err
	}
	if !ok {
		value = ident.Slug(raw.Title)
		if value == "" {
			return "", fmt.Errorf("cannot derive section id from title %q, set %v", raw.Title, KeyID)
		}
	}
	return ident.ParseArtifactSectionID(value)
}

// New builds the common part of a non-primary section.
func New(raw *artifact.RawSection) (*artifact.Section, error) {
	id, err := ID(raw)
	if err != nil {
		return nil, err
	}
	return &artifact.Section{
		ID:          id,
		Title:       raw.Title,
		Description: raw.Description(),
		Config:      raw.Config,
	}, nil
}

// Primary builds the primary section of an artifact.
func Primary(head *artifact.RawSection) *artifact.Section {
	return &artifact.Section{
		Primary:     true,
		Title:       head.Title,
		Description: head.Description(),
		Config:      head.Config,
	}
}

// Operation builds operation metadata: the configured fsm_mode (or fallback)
// and transitions declared by goto directives followed by the targets named
// by targetKeys.
func Operation(artifactID ident.FullArtifactID, raw *artifact.RawSection, fallback graph.FSMMode, targetKeys ...string) (*graph.OperationMeta, error) {
	modeText, _, err := String(raw.Config, KeyFSMMode)
	if err != nil {
		return nil, err
	}
	mode, err := graph.ParseFSMMode(modeText, fallback)
	if err != nil {
		return nil, err
	}
	ret := &graph.OperationMeta{FSMMode: mode}
	for _, argument := range raw.DirectiveArguments(directive.Goto) {
		target, err := Local(artifactID, argument)
		if err != nil {
			return nil, err
		}
		ret.AddTransition(target)
	}
	for _, key := range targetKeys {
		value, ok, err := String(raw.Config, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		target, err := Local(artifactID, value)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", key, err)
		}
		ret.AddTransition(target)
	}
	return ret, nil
}

// Local resolves a transition target to a section of artifactID.
func Local(artifactID ident.FullArtifactID, target string) (ident.ArtifactSectionID, error) {
	sectionID, err := directive.ResolveSection(artifactID, target)
	if err != nil {
		return "", err
	}
	if sectionID.FullArtifactID() != artifactID {
		return "", fmt.Errorf("transition %q leaves artifact %v", target, artifactID)
	}
	return sectionID.Local(), nil
}

// String returns a string value; ok is false when the key is absent.
func String(config map[string]interface{}, key string) (string, bool, error) {
	value, ok := config[key]
	if !ok || value == nil {
		return "", false, nil
	}
	text, ok := value.(string)
	if !ok {
		return "", false, types.NewInvalidConfigError(key, value, "string")
	}
	return text, true, nil
}

// Int returns an integer value; ok is false when the key is absent.
func Int(config map[string]interface{}, key string) (int, bool, error) {
	value, ok := config[key]
	if !ok || value == nil {
		return 0, false, nil
	}
	switch actual := value.(type) {
	case int:
		return actual, true, nil
	case int64:
		return int(actual), true, nil
	case float64:
		if actual == float64(int(actual)) {
			return int(actual), true, nil
		}
	}
	return 0, false, types.NewInvalidConfigError(key, value, "integer")
}

// StringMap returns a map of string values keyed by string.
func StringMap(config map[string]interface{}, key string) (map[string]string, error) {
	value, ok := config[key]
	if !ok || value == nil {
		return nil, nil
	}
	aMap, ok := value.(map[string]interface{})
	if !ok {
		return nil, types.NewInvalidConfigError(key, value, "mapping")
	}
	ret := make(map[string]string, len(aMap))
	for k, v := range aMap {
		text, ok := v.(string)
		if !ok {
			return nil, types.NewInvalidConfigError(key+"."+k, v, "string")
		}
		ret[k] = text
	}
	return ret, nil
}

// Meta returns the operation metadata of a constructed section.
func Meta(section *artifact.Section) (*graph.OperationMeta, error) {
	meta, ok := section.Meta.(*graph.OperationMeta)
	if !ok || meta == nil {
		return nil, fmt.Errorf("section %v has no operation metadata", section.ID)
	}
	return meta, nil
}
