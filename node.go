package chunkmerge

import (
	"fmt"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// FromNode converts a parsed yaml.v3 node tree into values MergeMaps,
// MergeLists and MergeObj accept. Mappings become ordered gyaml.MapSlice
// values, sequences []any, and scalars nil, bool, int64, float64 or string.
func FromNode(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.MappingNode:
		ms := make(gyaml.MapSlice, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("chunkmerge: line %d: mapping key is not a scalar", k.Line)
			}
			val, err := FromNode(v)
			if err != nil {
				return nil, err
			}
			ms = append(ms, gyaml.MapItem{Key: k.Value, Value: val})
		}
		return ms, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := FromNode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("chunkmerge: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str":
		return n.Value, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("chunkmerge: line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("chunkmerge: line %d: %w", n.Line, err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("chunkmerge: line %d: %w", n.Line, err)
		}
		return f, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("chunkmerge: line %d: %w", n.Line, err)
	}
	return v, nil
}
