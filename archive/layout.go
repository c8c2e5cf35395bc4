// Package archive knows where labels and tabular data live in the mission
// archive and how to read the Sol number out of a file path.
package archive

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
)

var ErrPathShape = errors.New("path does not match archive layout")

// Layout is the directory convention of one archive. Globs and SolPattern are
// applied to slash-separated paths relative to the archive root; the first
// capture group of SolPattern is the Sol.
type Layout struct {
	LabelGlob  string
	DataGlob   string
	SolPattern *regexp.Regexp
}

// DefaultLayout matches DATA/SOL_<5 digits>_<5 digits>/SOL<5 digits>/<file>.
func DefaultLayout() Layout {
	return Layout{
		LabelGlob:  "DATA/SOL_?????_?????/SOL?????/*.LBL",
		DataGlob:   "DATA/SOL_?????_?????/SOL?????/*.TAB",
		SolPattern: regexp.MustCompile(`^DATA/SOL_\d{5}_\d{5}/SOL(\d{5})/[^/]+$`),
	}
}

// Sol returns the Sol number encoded in rel, a path relative to the archive root.
func (l Layout) Sol(rel string) (string, error) {
	m := l.SolPattern.FindStringSubmatch(filepath.ToSlash(rel))
	if m == nil || len(m) < 2 {
		return "", fmt.Errorf("%w: %s", ErrPathShape, rel)
	}
	return m[1], nil
}

// Labels lists label files under root in lexical order.
func (l Layout) Labels(root string) ([]File, error) {
	return l.discover(root, l.LabelGlob)
}

// DataFiles lists tabular data files under root in lexical order.
func (l Layout) DataFiles(root string) ([]File, error) {
	return l.discover(root, l.DataGlob)
}

// File is one discovered archive file.
type File struct {
	Path string // as found on disk
	Rel  string // slash-separated, relative to the archive root
	Sol  string
}

func (l Layout) discover(root, pattern string) ([]File, error) {
	matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	files := make([]File, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(root, m)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)
		sol, err := l.Sol(rel)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: m, Rel: rel, Sol: sol})
	}
	return files, nil
}
