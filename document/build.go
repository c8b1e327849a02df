package document

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Build converts a parsed yaml.Node tree into the document
// representation: *Object for mappings, []any for sequences, and typed
// Go scalars (string, int64, float64, bool, nil) for leaves. Both YAML
// and JSON sources produce the same shapes since JSON is a YAML subset.
//
// Mapping nodes record their source line and column. Duplicate keys keep
// the first key's position with the last value. YAML merge keys (<<) are
// expanded with explicit keys taking precedence.
func Build(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return Build(node.Content[0])

	case yaml.MappingNode:
		obj := NewObject()
		obj.SetLocation(node.Line, node.Column)
		// Content alternates: key, value, key, value...
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]

			if keyNode.Tag == "!!merge" {
				if err := mergeInto(obj, valNode); err != nil {
					return nil, err
				}
				continue
			}

			val, err := Build(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := Build(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil

	case yaml.ScalarNode:
		return buildScalar(node)

	case yaml.AliasNode:
		// Aliases expand to independent copies; OpenAPI sharing happens
		// through $ref, not YAML anchors.
		return Build(node.Alias)

	default:
		return nil, fmt.Errorf("document: unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// buildScalar converts a scalar node using yaml's own tag resolution.
func buildScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("document: invalid bool at line %d: %w", node.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, fmt.Errorf("document: invalid integer at line %d: %w", node.Line, err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("document: invalid float at line %d: %w", node.Line, err)
		}
		return f, nil
	default:
		// Strings, timestamps, and custom tags stay textual.
		return node.Value, nil
	}
}

// mergeInto expands a YAML merge key value (a mapping alias or a sequence
// of mapping aliases) into obj. Existing keys win over merged keys.
func mergeInto(obj *Object, valNode *yaml.Node) error {
	merged, err := Build(valNode)
	if err != nil {
		return err
	}

	switch m := merged.(type) {
	case *Object:
		spliceAbsent(obj, m)
	case []any:
		for _, item := range m {
			src, ok := item.(*Object)
			if !ok {
				return fmt.Errorf("document: merge key expects mappings, got %T at line %d", item, valNode.Line)
			}
			spliceAbsent(obj, src)
		}
	default:
		return fmt.Errorf("document: merge key expects a mapping, got %T at line %d", merged, valNode.Line)
	}
	return nil
}

func spliceAbsent(dst, src *Object) {
	for _, p := range src.Pairs() {
		if !dst.Has(p.Key) {
			dst.Set(p.Key, p.Value)
		}
	}
}
