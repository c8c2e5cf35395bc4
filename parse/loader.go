// Package parse loads structured archive files from disk.
package parse

import (
	"fmt"
	"os"

	"github.com/AndCook/rover-data-processor/parse/odl"
)

// File parses the structured file at path. The file is closed before return.
func File(path string, opts ...odl.Option) (*odl.Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := odl.Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Extract parses path and flattens the fields selected by spec. The document
// is dropped once its fields are read.
func Extract(path string, spec odl.TargetSpec, opts ...odl.Option) (*odl.Fields, error) {
	doc, err := File(path, opts...)
	if err != nil {
		return nil, err
	}
	fields, err := odl.Extract(doc, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fields, nil
}
