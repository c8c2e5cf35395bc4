package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Unknown marks a numeric cell without a value.
const Unknown = "UNK"

// Cell is one coerced value. Null cells carry no value and print empty.
// Text is the source field, trimmed for numeric cells, and is what String
// prints, so "397535244.000" is written back unchanged.
type Cell struct {
	Type  Type
	Null  bool
	Text  string
	Float float64
	Int   int64
}

// Coerce converts raw according to t. Text cells are kept verbatim.
func Coerce(raw string, t Type) (Cell, error) {
	if t == TypeText {
		return Cell{Type: t, Text: raw}, nil
	}

	s := strings.TrimSpace(raw)
	if s == Unknown {
		return Cell{Type: t, Null: true}, nil
	}
	switch t {
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Cell{}, fmt.Errorf("parse %s cell %q: %w", t, raw, err)
		}
		return Cell{Type: t, Text: s, Float: f}, nil
	case TypeInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Cell{}, fmt.Errorf("parse %s cell %q: %w", t, raw, err)
		}
		return Cell{Type: t, Text: s, Int: i}, nil
	}
	return Cell{}, fmt.Errorf("unsupported type %d", t)
}

func (c Cell) String() string {
	if c.Null {
		return ""
	}
	return c.Text
}

// Value returns the Go value of the cell: nil, float64, int64 or string.
func (c Cell) Value() any {
	if c.Null {
		return nil
	}
	switch c.Type {
	case TypeFloat:
		return c.Float
	case TypeInt:
		return c.Int
	default:
		return c.Text
	}
}

// Select coerces the fields of record picked by cols, in cols order.
func Select(record []string, cols []Column) ([]Cell, error) {
	cells := make([]Cell, len(cols))
	for i, c := range cols {
		idx := c.Index()
		if idx < 0 || idx >= len(record) {
			return nil, fmt.Errorf("%w: column %s is %d, record has %d fields", ErrColumnOutOfRange, c.Name, c.Number, len(record))
		}
		cell, err := Coerce(record[idx], c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		cells[i] = cell
	}
	return cells, nil
}
