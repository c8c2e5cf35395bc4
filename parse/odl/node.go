package odl

// =========================
// AST Definitions
// =========================

type Kind uint8

const (
	KindScalar Kind = iota
	KindSection
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSection:
		return "section"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Node is one value in a parsed document: a *Scalar, a *Section or a *List.
type Node interface {
	Kind() Kind
}

// -------- Scalar --------

// Scalar holds the trimmed text right of " = ". Quotes and parentheses are kept.
type Scalar struct {
	Text string
}

func (*Scalar) Kind() Kind { return KindScalar }

// -------- Section --------

// Section is one scope of key/value pairs. The document root is a Section too.
type Section struct {
	Keys  []string
	Items map[string]Node
}

func NewSection() *Section {
	return &Section{Items: make(map[string]Node)}
}

func (*Section) Kind() Kind { return KindSection }

// Set stores n under key, keeping the position of a key seen before.
func (s *Section) Set(key string, n Node) {
	if _, ok := s.Items[key]; !ok {
		s.Keys = append(s.Keys, key)
	}
	s.Items[key] = n
}

func (s *Section) Get(key string) (Node, bool) {
	n, ok := s.Items[key]
	return n, ok
}

func (s *Section) Len() int { return len(s.Keys) }

// -------- List --------

// List holds sections that closed under the same key, in file order.
type List struct {
	Elems []*Section
}

func (*List) Kind() Kind { return KindList }

// =========================
// Safe Access Helpers
// =========================

func Get(root *Section, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		s, ok := cur.(*Section)
		if !ok {
			return nil, false
		}
		cur, ok = s.Items[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the scalar text at path.
func GetString(root *Section, path ...string) (string, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return "", false
	}
	v, ok := n.(*Scalar)
	if !ok {
		return "", false
	}
	return v.Text, true
}

// Sections returns the sections stored under key whether or not the key was promoted.
func Sections(root *Section, key string) ([]*Section, bool) {
	switch v := root.Items[key].(type) {
	case *Section:
		return []*Section{v}, true
	case *List:
		return v.Elems, true
	default:
		return nil, false
	}
}
