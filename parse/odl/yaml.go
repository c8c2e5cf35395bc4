package odl

import "gopkg.in/yaml.v3"

// MarshalYAML renders the section as a mapping in key order.
func (s *Section) MarshalYAML() (any, error) {
	return toYAMLNode(s), nil
}

func toYAMLNode(n Node) *yaml.Node {
	switch v := n.(type) {
	case *Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}
	case *List:
		out := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range v.Elems {
			out.Content = append(out.Content, toYAMLNode(e))
		}
		return out
	case *Section:
		out := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.Keys {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAMLNode(v.Items[k]),
			)
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
