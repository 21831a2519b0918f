package graph

import (
	"fmt"

	"github.com/viant/mdflow/model/ident"
)

// FSMMode is the role of an operation in the workflow state machine.
type FSMMode string

const (
	ModeStart  FSMMode = "start"
	ModeNormal FSMMode = "normal"
	ModeFinal  FSMMode = "final"
)

// ParseFSMMode parses a mode; empty text yields fallback.
func ParseFSMMode(text string, fallback FSMMode) (FSMMode, error) {
	switch mode := FSMMode(text); mode {
	case "":
		return fallback, nil
	case ModeStart, ModeNormal, ModeFinal:
		return mode, nil
	}
	return "", fmt.Errorf("unsupported fsm_mode %q, expected one of start, normal, final", text)
}

// WorkflowMeta is the metadata of a workflow's primary section.
type WorkflowMeta struct {
	StartOperationID ident.ArtifactSectionID `json:"start_operation_id"`
}

// OperationMeta is the metadata of an operation section.
type OperationMeta struct {
	FSMMode            FSMMode                   `json:"fsm_mode"`
	AllowedTransitions []ident.ArtifactSectionID `json:"allowed_transitions,omitempty"`
}

// Allows reports whether target is an allowed transition.
func (m *OperationMeta) Allows(target ident.ArtifactSectionID) bool {
	for _, candidate := range m.AllowedTransitions {
		if candidate == target {
			return true
		}
	}
	return false
}

// AddTransition appends target unless already present.
func (m *OperationMeta) AddTransition(target ident.ArtifactSectionID) {
	if !m.Allows(target) {
		m.AllowedTransitions = append(m.AllowedTransitions, target)
	}
}
