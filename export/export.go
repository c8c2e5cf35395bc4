// Package export merges tabular measurements with per-Sol label metadata into
// one CSV file.
package export

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/AndCook/rover-data-processor/archive"
	"github.com/AndCook/rover-data-processor/parse"
	"github.com/AndCook/rover-data-processor/parse/odl"
	"github.com/AndCook/rover-data-processor/pkg"
	"github.com/AndCook/rover-data-processor/table"
)

var ErrMissingLabel = errors.New("no label for sol")

type Options struct {
	Root       string // archive root
	FormatFile string // relative to Root unless absolute
	Output     string
	MaxRows    int // <= 0 means no limit
	Columns    []string
	Labels     odl.TargetSpec
	Layout     archive.Layout
	Parse      []odl.Option
	Logger     *log.Logger
}

type Summary struct {
	Files     int
	Rows      int
	Header    []string
	LabelSols int
}

func (o Options) formatPath() string {
	if filepath.IsAbs(o.FormatFile) {
		return o.FormatFile
	}
	return filepath.Join(o.Root, o.FormatFile)
}

type runner struct {
	opts Options
	log  *log.Logger
}

// Run performs one export. The output file is replaced only when the whole
// run succeeds.
func Run(opts Options) (*Summary, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Layout.SolPattern == nil {
		opts.Layout = archive.DefaultLayout()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	r := &runner{opts: opts, log: logger}
	return r.run()
}

func (r *runner) run() (*Summary, error) {
	format, err := parse.File(r.opts.formatPath(), r.opts.Parse...)
	if err != nil {
		return nil, fmt.Errorf("load format: %w", err)
	}
	cols, err := table.Resolve(format, r.opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.opts.formatPath(), err)
	}

	labels, err := r.loadLabels()
	if err != nil {
		return nil, err
	}
	data, err := r.opts.Layout.DataFiles(r.opts.Root)
	if err != nil {
		return nil, err
	}

	labelKeys := r.opts.Labels.Leaves()
	sort.Strings(labelKeys)

	out, err := pkg.CreateAtomic(r.opts.Output)
	if err != nil {
		return nil, err
	}
	defer out.Abort()

	w := table.NewWriter(out)
	if err := w.WriteHeader(cols, labelKeys); err != nil {
		return nil, err
	}

	sum := &Summary{
		Header:    append(table.Names(cols), labelKeys...),
		LabelSols: len(labels),
	}
	remaining := r.opts.MaxRows
	if remaining <= 0 {
		remaining = -1
	}

	for _, df := range data {
		if remaining == 0 {
			break
		}
		fields, ok := labels[df.Sol]
		if !ok {
			return nil, fmt.Errorf("%s: %w %s", df.Rel, ErrMissingLabel, df.Sol)
		}
		values := make([]string, len(labelKeys))
		for i, k := range labelKeys {
			values[i], _ = fields.Get(k)
		}

		r.log.Printf("Calculating rows for sol %s...", df.Sol)
		n, err := copyRows(w, df.Path, cols, values, remaining)
		if err != nil {
			return nil, err
		}
		sum.Files++
		sum.Rows += n
		if remaining > 0 {
			remaining -= n
		}
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	if err := out.Commit(); err != nil {
		return nil, err
	}
	return sum, nil
}

// loadLabels builds the Sol -> label fields table.
func (r *runner) loadLabels() (map[string]*odl.Fields, error) {
	files, err := r.opts.Layout.Labels(r.opts.Root)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*odl.Fields, len(files))
	for _, f := range files {
		fields, err := parse.Extract(f.Path, r.opts.Labels, r.opts.Parse...)
		if err != nil {
			return nil, err
		}
		if _, dup := out[f.Sol]; dup {
			r.log.Printf("warning: sol %s has more than one label, using %s", f.Sol, f.Rel)
		}
		out[f.Sol] = fields
	}
	return out, nil
}

// copyRows writes up to limit rows of the data file at path (limit < 0 means
// all of them) and returns how many it wrote.
func copyRows(w *table.Writer, path string, cols []table.Column, labelValues []string, limit int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := table.NewReader(f)
	n := 0
	for limit < 0 || n < limit {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		cells, err := table.Select(rec, cols)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return n, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if err := w.WriteRow(cells, labelValues); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
