package odl

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Target selects one key. A Target with a non-nil Sub selects inside the
// section stored under Key instead of the key itself.
type Target struct {
	Key string
	Sub TargetSpec
}

func (t Target) IsLeaf() bool { return t.Sub == nil }

// TargetSpec is an ordered selection tree for Extract.
type TargetSpec []Target

func Leaf(key string) Target { return Target{Key: key} }

func Within(key string, sub ...Target) Target {
	return Target{Key: key, Sub: append(TargetSpec{}, sub...)}
}

// Leaves returns the leaf key names in order, without duplicates. These are
// exactly the keys Extract produces.
func (s TargetSpec) Leaves() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(TargetSpec)
	walk = func(spec TargetSpec) {
		for _, t := range spec {
			if !t.IsLeaf() {
				walk(t.Sub)
				continue
			}
			if !seen[t.Key] {
				seen[t.Key] = true
				out = append(out, t.Key)
			}
		}
	}
	walk(s)
	return out
}

// ParseTargetPaths builds a spec from dotted paths such as "GROUP_A.FIELD".
// Paths sharing a prefix share one nested entry.
func ParseTargetPaths(paths []string) (TargetSpec, error) {
	var spec TargetSpec
	for _, raw := range paths {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ".")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] == "" {
				return nil, fmt.Errorf("odl: invalid target path %q", raw)
			}
		}
		spec = spec.insert(parts)
	}
	return spec, nil
}

func (s TargetSpec) insert(parts []string) TargetSpec {
	if len(parts) == 1 {
		return append(s, Leaf(parts[0]))
	}
	for i := range s {
		if s[i].Key == parts[0] && !s[i].IsLeaf() {
			s[i].Sub = s[i].Sub.insert(parts[1:])
			return s
		}
	}
	return append(s, Target{Key: parts[0], Sub: TargetSpec{}.insert(parts[1:])})
}

// UnmarshalYAML accepts a sequence whose items are key names or single-entry
// mappings from a key name to a nested sequence:
//
//	- SOLAR_LONGITUDE
//	- OBSERVATION_REQUEST_PARMS:
//	    - RQT_ID
func (s *TargetSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("odl: line %d: target spec must be a sequence", node.Line)
	}
	out := make(TargetSpec, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			if item.Value == "" {
				return fmt.Errorf("odl: line %d: empty target key", item.Line)
			}
			out = append(out, Leaf(item.Value))
		case yaml.MappingNode:
			if len(item.Content) != 2 {
				return fmt.Errorf("odl: line %d: nested target must have exactly one key", item.Line)
			}
			key, val := item.Content[0], item.Content[1]
			if val.Kind != yaml.SequenceNode {
				return fmt.Errorf("odl: line %d: target %q must map to a sequence", val.Line, key.Value)
			}
			var sub TargetSpec
			if err := val.Decode(&sub); err != nil {
				return err
			}
			out = append(out, Within(key.Value, sub...))
		default:
			return fmt.Errorf("odl: line %d: unsupported target entry", item.Line)
		}
	}
	*s = out
	return nil
}

// ParseTargetSpec decodes a YAML target spec.
func ParseTargetSpec(data []byte) (TargetSpec, error) {
	var spec TargetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse target spec YAML: %w", err)
	}
	return spec, nil
}

// LoadTargetSpec reads a YAML target spec from path.
func LoadTargetSpec(path string) (TargetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target spec %s: %w", path, err)
	}
	return ParseTargetSpec(data)
}
