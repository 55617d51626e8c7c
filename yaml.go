package recfmt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

func encodeYAML(w io.Writer, rs RecordSet) error {
	if rs == nil {
		rs = RecordSet{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(rs); err != nil {
		return err
	}
	return enc.Close()
}

func decodeYAML(r io.Reader) (RecordSet, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return RecordSet{}, nil
		}
		return nil, err
	}
	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return RecordSet{}, nil
		}
		root = resolveAlias(root.Content[0])
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return RecordSet{}, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: top level is %s, want a sequence", root.Line, nodeKind(root))
	}

	rs := make(RecordSet, 0, len(root.Content))
	for i, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: element %d is %s, want a mapping", item.Line, i, nodeKind(item))
		}
		rec, err := decodeYAMLMapping(item, nil)
		if err != nil {
			return nil, err
		}
		rs = append(rs, rec)
	}
	return rs, nil
}

// decodeYAMLMapping flattens a mapping into a Record. Fields from merge keys
// ("<<") come first and the mapping's own keys override them. path holds
// the mappings being merged into n, to reject merge cycles.
func decodeYAMLMapping(n *yaml.Node, path []*yaml.Node) (Record, error) {
	if slices.Contains(path, n) {
		return nil, fmt.Errorf("line %d: merge key refers back to its own mapping", n.Line)
	}
	path = append(path, n)
	rec := make(Record, 0, len(n.Content)/2)
	var own []*yaml.Node
	for j := 0; j+1 < len(n.Content); j += 2 {
		k, v := resolveAlias(n.Content[j]), resolveAlias(n.Content[j+1])
		if !isMergeKey(k) {
			own = append(own, k, v)
			continue
		}
		sources := []*yaml.Node{v}
		if v.Kind == yaml.SequenceNode {
			sources = v.Content
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge value is %s, want a mapping", src.Line, nodeKind(src))
			}
			merged, err := decodeYAMLMapping(src, path)
			if err != nil {
				return nil, err
			}
			// Earlier merge sources take precedence over later ones.
			for _, f := range merged {
				if _, ok := rec.Get(f.Key); !ok {
					rec = append(rec, f)
				}
			}
		}
	}
	for j := 0; j+1 < len(own); j += 2 {
		k, v := own[j], own[j+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: field %q: nested values are not supported", v.Line, k.Value)
		}
		val, err := yamlScalar(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: field %q: %w", v.Line, k.Value, err)
		}
		rec.Set(k.Value, val)
	}
	return rec, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// yamlScalar decodes a scalar with the YAML core schema and narrows the
// result to the Record value types.
func yamlScalar(n *yaml.Node) (any, error) {
	var out any
	if err := n.Decode(&out); err != nil {
		return nil, err
	}
	switch v := out.(type) {
	case nil, string, bool, int64, float64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
		return float64(v), nil
	case time.Time:
		return n.Value, nil
	default:
		return n.Value, nil
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return "a scalar"
	default:
		return "an unexpected node"
	}
}
