// Package odl parses the key/value notation used by the archive's format (.FMT)
// and label (.LBL) files into a nested document.
//
// Scope:
// - flat "KEY = VALUE" lines
// - OBJECT / GROUP sections closed by END_OBJECT / END_GROUP
// - values continued over several lines inside "..." or (...)
// - repeated sections under one key promoted to a List
//
// Non-goals:
// - schema validation
// - scalar typing (values stay as text, quotes included)
// - comment handling
package odl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// =========================
// Options
// =========================

type config struct {
	tokens []string
	nested bool
}

type Option func(*config)

// WithSectionTokens replaces the keys that open a section (OBJECT and GROUP).
func WithSectionTokens(tokens ...string) Option {
	return func(c *config) {
		c.tokens = append([]string(nil), tokens...)
	}
}

// WithNestedSections lets a section open inside another one. Without it such a
// line fails with ErrNestedSection.
func WithNestedSections(on bool) Option {
	return func(c *config) {
		c.nested = on
	}
}

func defaultConfig() config {
	return config{tokens: []string{"OBJECT", "GROUP"}}
}

// =========================
// Public API
// =========================

// Parse reads the whole of r and returns the document root.
func Parse(r io.Reader, opts ...Option) (*Section, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser{
		reader: bufio.NewReader(r),
		cfg:    cfg,
		root:   NewSection(),
	}

	// ReadString has no line length cap, unlike bufio.Scanner.
	for {
		raw, err := p.reader.ReadString('\n')
		if raw != "" {
			p.lineNo++
			if ferr := p.feed(raw); ferr != nil {
				return nil, ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if p.ml.active() {
		return nil, p.errf(ErrMissingEndToken, "value of %q opened at line %d never closed with %q", p.ml.key, p.ml.start, p.ml.closer)
	}
	if n := len(p.stack); n > 0 {
		top := p.stack[n-1]
		return nil, p.errf(ErrMissingEndToken, "%s %q opened at line %d has no %s%s", top.token, top.key, top.start, endPrefix, top.token)
	}
	return p.root, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string, opts ...Option) (*Section, error) {
	return Parse(strings.NewReader(s), opts...)
}

// =========================
// Parser Implementation
// =========================

type openSection struct {
	token string
	key   string
	start int
	body  *Section
}

type parser struct {
	reader *bufio.Reader
	cfg    config
	root   *Section
	stack  []openSection
	ml     multiline
	lineNo int
}

func (p *parser) state() classState {
	st := classState{inMultiline: p.ml.active(), tokens: p.cfg.tokens}
	if n := len(p.stack); n > 0 {
		st.openToken = p.stack[n-1].token
	}
	return st
}

// scope is the section that plain lines are written to.
func (p *parser) scope() *Section {
	if n := len(p.stack); n > 0 {
		return p.stack[n-1].body
	}
	return p.root
}

func (p *parser) feed(raw string) error {
	ln := classify(raw, p.state())

	switch ln.class {
	case lineIgnore:
	case lineContinue:
		closing := p.ml.isClosing(ln.text)
		p.ml.append(ln.text)
		if closing {
			p.ml.commit()
		}
	case lineMalformed:
		return p.errf(ErrMalformedValueLine, "%q", ln.text)
	case lineOpenSection:
		if len(p.stack) > 0 && !p.cfg.nested {
			return p.errf(ErrNestedSection, "%s = %s inside %s %q", ln.key, ln.value, p.stack[len(p.stack)-1].token, p.stack[len(p.stack)-1].key)
		}
		p.stack = append(p.stack, openSection{
			token: ln.key,
			key:   ln.value,
			start: p.lineNo,
			body:  NewSection(),
		})
	case lineCloseSection:
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if err := commitSection(p.scope(), top.key, top.body); err != nil {
			return p.errf(err, "%s %q", top.token, top.key)
		}
	case lineOpenMultiline:
		p.ml.begin(p.scope(), ln.key, ln.value, ln.closer, p.lineNo)
	case lineValue:
		p.scope().Set(ln.key, &Scalar{Text: ln.value})
	}
	return nil
}

// commitSection stores a finished section under key, promoting to a List when
// the key already holds a section.
func commitSection(parent *Section, key string, body *Section) error {
	switch cur := parent.Items[key].(type) {
	case nil:
		parent.Set(key, body)
	case *Section:
		parent.Set(key, &List{Elems: []*Section{cur, body}})
	case *List:
		cur.Elems = append(cur.Elems, body)
	case *Scalar:
		return ErrSectionConflict
	}
	return nil
}

func (p *parser) errf(err error, format string, args ...any) error {
	return fmt.Errorf("odl:%d: %w: %s", p.lineNo, err, fmt.Sprintf(format, args...))
}
