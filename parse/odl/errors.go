package odl

import (
	"errors"
	"strings"
)

var (
	ErrMalformedValueLine = errors.New("malformed value line")
	ErrMissingEndToken    = errors.New("missing end token")
	ErrNestedSection      = errors.New("nested section not supported")
	ErrSectionConflict    = errors.New("section key already holds a scalar")

	ErrKeyNotFound     = errors.New("key not found")
	ErrRepeatedSection = errors.New("key addresses a repeated section")
	ErrNotScalar       = errors.New("key does not hold a scalar")
	ErrNotSection      = errors.New("key does not hold a section")
)

// PathError reports a lookup failure during extraction.
type PathError struct {
	Path []string
	Err  error
}

func (e *PathError) Error() string {
	return "odl: " + strings.Join(e.Path, ".") + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }
