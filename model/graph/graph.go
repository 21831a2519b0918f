package graph

import (
	"fmt"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
)

// Node is one operation of a workflow.
type Node struct {
	ID          ident.ArtifactSectionID
	Mode        FSMMode
	Transitions []ident.ArtifactSectionID
}

// Graph is the operation graph of a workflow artifact. Nodes keep declaration order.
type Graph struct {
	WorkflowID       ident.FullArtifactID
	StartOperationID ident.ArtifactSectionID
	Nodes            []*Node
	index            map[ident.ArtifactSectionID]*Node
}

// New builds a graph from a constructed workflow artifact. Sections without
// operation metadata (plain text) are not nodes.
func New(workflow *artifact.Artifact) (*Graph, error) {
	primary := workflow.Primary()
	if primary == nil {
		return nil, fmt.Errorf("%w: %v has no primary section", ErrNotWorkflow, workflow.ID)
	}
	meta, ok := primary.Meta.(*WorkflowMeta)
	if !ok || meta == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkflow, workflow.ID)
	}
	ret := &Graph{
		WorkflowID:       workflow.ID,
		StartOperationID: meta.StartOperationID,
		index:            map[ident.ArtifactSectionID]*Node{},
	}
	for _, section := range workflow.Sections {
		if section.Primary {
			continue
		}
		operation, ok := section.Meta.(*OperationMeta)
		if !ok || operation == nil {
			continue
		}
		ret.add(&Node{ID: section.ID, Mode: operation.FSMMode, Transitions: operation.AllowedTransitions})
	}
	return ret, nil
}

func (g *Graph) add(node *Node) {
	if g.index == nil {
		g.index = map[ident.ArtifactSectionID]*Node{}
	}
	g.Nodes = append(g.Nodes, node)
	if _, ok := g.index[node.ID]; !ok {
		g.index[node.ID] = node
	}
}

// Node returns the node with the given id or nil.
func (g *Graph) Node(id ident.ArtifactSectionID) *Node {
	return g.index[id]
}

// Validate collects every structural finding; an empty result means the graph
// is sound. It does not modify the graph.
func (g *Graph) Validate() []error {
	var issues []error

	start := g.Node(g.StartOperationID)
	if start == nil {
		issues = append(issues, &OperationError{Err: ErrWrongStartOperation, Operation: g.StartOperationID, Detail: "no such operation"})
	} else if start.Mode != ModeStart {
		issues = append(issues, &OperationError{Err: ErrStartOperationMismatch, Operation: start.ID, Detail: fmt.Sprintf("declared start has mode %q", start.Mode)})
	}
	for _, node := range g.Nodes {
		if node.Mode == ModeStart && node.ID != g.StartOperationID {
			issues = append(issues, &OperationError{Err: ErrStartOperationMismatch, Operation: node.ID, Detail: fmt.Sprintf("mode start but workflow starts at %q", g.StartOperationID)})
		}
	}

	for _, node := range g.Nodes {
		if node.Mode == ModeFinal && len(node.Transitions) > 0 {
			issues = append(issues, &OperationError{Err: ErrFinalOperationHasTransitions, Operation: node.ID})
		}
	}
	for _, node := range g.Nodes {
		if node.Mode != ModeFinal && len(node.Transitions) == 0 {
			issues = append(issues, &OperationError{Err: ErrNoOutgoingTransitions, Operation: node.ID})
		}
	}

	if start != nil {
		reachable := g.reachable(start.ID)
		var unreachable []ident.ArtifactSectionID
		for _, node := range g.Nodes {
			if !reachable[node.ID] {
				unreachable = append(unreachable, node.ID)
			}
		}
		if len(unreachable) > 0 {
			issues = append(issues, &NotReachableError{Operations: unreachable})
		}
	}

	for _, node := range g.Nodes {
		for _, target := range node.Transitions {
			if g.Node(target) == nil {
				issues = append(issues, &OperationError{Err: ErrUnknownTransitionTarget, Operation: node.ID, Detail: string(target)})
			}
		}
	}
	return issues
}

// reachable walks transitions depth first from the start operation.
func (g *Graph) reachable(from ident.ArtifactSectionID) map[ident.ArtifactSectionID]bool {
	visited := map[ident.ArtifactSectionID]bool{}
	stack := []ident.ArtifactSectionID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		node := g.Node(id)
		if node == nil {
			continue
		}
		visited[id] = true
		for i := len(node.Transitions) - 1; i >= 0; i-- {
			stack = append(stack, node.Transitions[i])
		}
	}
	return visited
}
