// Package yml adapts yaml.v3 nodes to plain Go values.
package yml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	Node yaml.Node
)

// Decode parses a single YAML document. An empty document yields a nil node.
func Decode(data []byte) (*Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}
	if document.Kind == 0 {
		return nil, nil
	}
	if document.Kind == yaml.DocumentNode {
		if len(document.Content) == 0 {
			return nil, nil
		}
		return (*Node)(document.Content[0]), nil
	}
	return (*Node)(&document), nil
}

// IsMapping reports whether the node is a mapping.
func (n *Node) IsMapping() bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// Pairs iterates mapping entries in declaration order.
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at line %d, got %v", n.Line, kindName(n.Kind))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := n.Content[i+1]
		if err := callback(key, (*Node)(value)); err != nil {
			return err
		}
	}
	return nil
}

// Interface converts the node to plain Go values: map[string]interface{},
// []interface{}, string, bool, int, float64 or nil. Scalars tagged bool, int
// or float are resolved by yaml.v3, so forms such as .inf or 0x1f decode
// to their values and malformed ones fail.
func (n *Node) Interface() (interface{}, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return n.Value, nil
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var value interface{}
			if err := (*yaml.Node)(n).Decode(&value); err != nil {
				return nil, fmt.Errorf("invalid %v at line %d: %w", n.Tag, n.Line, err)
			}
			return value, nil
		default:
			return n.Value, nil
		}
	case yaml.MappingNode:
		var aMap = make(map[string]interface{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			value, err := (*Node)(n.Content[i+1]).Interface()
			if err != nil {
				return nil, err
			}
			aMap[key] = value
		}
		return aMap, nil
	case yaml.SequenceNode:
		var aSlice = make([]interface{}, 0, len(n.Content))
		for i := 0; i < len(n.Content); i++ {
			value, err := (*Node)(n.Content[i]).Interface()
			if err != nil {
				return nil, err
			}
			aSlice = append(aSlice, value)
		}
		return aSlice, nil
	case yaml.AliasNode:
		if n.Alias != nil {
			return (*Node)(n.Alias).Interface()
		}
	}
	return nil, nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
