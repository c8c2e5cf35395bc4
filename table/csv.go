package table

import (
	"encoding/csv"
	"io"
)

// NewReader reads the archive's delimited data files. Records may vary in
// length and quoting is lenient.
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// Writer writes the export: selected cells followed by label values.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

func (w *Writer) WriteHeader(cols []Column, labelKeys []string) error {
	header := append(Names(cols), labelKeys...)
	return w.w.Write(header)
}

func (w *Writer) WriteRow(cells []Cell, labelValues []string) error {
	row := make([]string, 0, len(cells)+len(labelValues))
	for _, c := range cells {
		row = append(row, c.String())
	}
	row = append(row, labelValues...)
	return w.w.Write(row)
}

func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
