package attrs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping while keeping the document order of
// its keys, which plain maps would lose.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*a = nil
			return nil
		}
		return fmt.Errorf("attrs: expected mapping, got scalar at line %d", node.Line)
	default:
		return fmt.Errorf("attrs: expected mapping at line %d", node.Line)
	}

	out := make(Attributes, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("attrs: decode %q: %w", keyNode.Value, err)
		}
		switch value.(type) {
		case map[string]any, []any:
			return fmt.Errorf("attrs: attribute %q must be a scalar (line %d)", keyNode.Value, valueNode.Line)
		}
		out = out.Set(keyNode.Value, value)
	}
	*a = out
	return nil
}

// MarshalYAML emits the attributes as an ordered mapping.
func (a Attributes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, attr := range a {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(attr.Value); err != nil {
			return nil, fmt.Errorf("attrs: encode %q: %w", attr.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Key},
			valueNode,
		)
	}
	return node, nil
}
