package odl

import "strings"

// Checked in order; the first pair whose opener matches wins.
var multilineDelims = []struct {
	open, close byte
}{
	{'"', '"'},
	{'(', ')'},
}

// opensMultiline reports whether value starts a value that continues on later
// lines, and the byte that will close it.
func opensMultiline(value string) (byte, bool) {
	if value == "" {
		return 0, false
	}
	for _, d := range multilineDelims {
		if value[0] == d.open && (value[len(value)-1] != d.close || len(value) == 1) {
			return d.close, true
		}
	}
	return 0, false
}

// multiline accumulates one value spread over several lines. scope is the
// section that was current when the value started and receives it on commit.
type multiline struct {
	key    string
	closer byte
	scope  *Section
	start  int
	buf    strings.Builder
	open   bool
}

func (m *multiline) begin(scope *Section, key, value string, closer byte, lineNo int) {
	m.key = key
	m.closer = closer
	m.scope = scope
	m.start = lineNo
	m.buf.Reset()
	m.buf.WriteString(value)
	m.open = true
}

func (m *multiline) active() bool { return m.open }

func (m *multiline) append(text string) {
	m.buf.WriteString(strings.TrimSpace(text))
}

func (m *multiline) isClosing(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && text[len(text)-1] == m.closer
}

func (m *multiline) commit() {
	m.scope.Set(m.key, &Scalar{Text: m.buf.String()})
	m.open = false
	m.scope = nil
	m.buf.Reset()
}
