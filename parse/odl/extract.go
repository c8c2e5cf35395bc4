package odl

import "sort"

// Fields is a flat string map that remembers insertion order.
type Fields struct {
	keys   []string
	values map[string]string
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// Set stores v under k. An existing key keeps its position.
func (f *Fields) Set(k, v string) {
	if _, ok := f.values[k]; !ok {
		f.keys = append(f.keys, k)
	}
	f.values[k] = v
}

func (f *Fields) Get(k string) (string, bool) {
	v, ok := f.values[k]
	return v, ok
}

func (f *Fields) Len() int { return len(f.keys) }

func (f *Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

func (f *Fields) SortedKeys() []string {
	keys := f.Keys()
	sort.Strings(keys)
	return keys
}

// Extract flattens the parts of doc selected by spec into one Fields. Nested
// selections merge into the same result; a later key overwrites an earlier one.
func Extract(doc *Section, spec TargetSpec) (*Fields, error) {
	out := NewFields()
	if err := extractInto(out, doc, spec, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func extractInto(out *Fields, doc *Section, spec TargetSpec, path []string) error {
	for _, t := range spec {
		p := append(path[:len(path):len(path)], t.Key)

		n, ok := doc.Items[t.Key]
		if !ok {
			return &PathError{Path: p, Err: ErrKeyNotFound}
		}

		if t.IsLeaf() {
			v, ok := n.(*Scalar)
			if !ok {
				return &PathError{Path: p, Err: ErrNotScalar}
			}
			out.Set(t.Key, v.Text)
			continue
		}

		switch v := n.(type) {
		case *Section:
			if err := extractInto(out, v, t.Sub, p); err != nil {
				return err
			}
		case *List:
			return &PathError{Path: p, Err: ErrRepeatedSection}
		default:
			return &PathError{Path: p, Err: ErrNotSection}
		}
	}
	return nil
}
