package odl

import "strings"

const (
	valueSeparator = " = "
	endPrefix      = "END_"
)

type lineClass uint8

const (
	lineIgnore lineClass = iota
	lineOpenSection
	lineCloseSection
	lineContinue
	lineOpenMultiline
	lineValue
	lineMalformed
)

// classState is what the classifier needs to know about the parser.
type classState struct {
	inMultiline bool
	openToken   string // token of the innermost open section, "" at top level
	tokens      []string
}

type line struct {
	class  lineClass
	text   string // trimmed line
	key    string
	value  string
	closer byte
}

func classify(raw string, st classState) line {
	ln := line{text: strings.TrimSpace(raw)}

	if st.inMultiline {
		ln.class = lineContinue
		return ln
	}
	if st.openToken != "" && strings.HasPrefix(ln.text, endPrefix+st.openToken) {
		ln.class = lineCloseSection
		return ln
	}
	if ln.text == "" {
		ln.class = lineIgnore
		return ln
	}

	idx := strings.Index(ln.text, valueSeparator)
	if idx < 0 {
		if st.openToken != "" {
			ln.class = lineMalformed
		} else {
			ln.class = lineIgnore
		}
		return ln
	}
	ln.key = strings.TrimSpace(ln.text[:idx])
	ln.value = strings.TrimSpace(ln.text[idx+len(valueSeparator):])
	if ln.value == "" {
		ln.class = lineMalformed
		return ln
	}

	switch {
	case isSectionToken(ln.key, st.tokens):
		ln.class = lineOpenSection
	default:
		if closer, ok := opensMultiline(ln.value); ok {
			ln.class = lineOpenMultiline
			ln.closer = closer
		} else {
			ln.class = lineValue
		}
	}
	return ln
}

func isSectionToken(key string, tokens []string) bool {
	for _, t := range tokens {
		if key == t {
			return true
		}
	}
	return false
}
