// Package table turns a format document into column definitions and reads
// and writes the delimited rows they describe.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AndCook/rover-data-processor/parse/odl"
)

var (
	ErrColumnNotFound   = fmt.Errorf("column %w", odl.ErrKeyNotFound)
	ErrColumnOutOfRange = errors.New("column number out of range")
	ErrBadColumnNumber  = errors.New("invalid column number")
)

const columnKey = "COLUMN"

type Type uint8

const (
	TypeText Type = iota
	TypeFloat
	TypeInt
)

func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	default:
		return "text"
	}
}

// ParseType maps a DATA_TYPE value to the type cells are coerced to.
func ParseType(dataType string) Type {
	switch strings.ToUpper(unquote(dataType)) {
	case "ASCII_REAL", "REAL", "FLOAT", "IEEE_REAL", "PC_REAL":
		return TypeFloat
	case "ASCII_INTEGER", "INTEGER", "UNSIGNED_INTEGER", "MSB_INTEGER", "LSB_INTEGER":
		return TypeInt
	default:
		return TypeText
	}
}

// Column is one column of the tabular data files. Number is 1-based.
type Column struct {
	Name   string
	Number int
	Type   Type
}

// Index is the 0-based position of the column in a record.
func (c Column) Index() int { return c.Number - 1 }

// Columns lists every COLUMN section of a format document in file order.
func Columns(format *odl.Section) ([]Column, error) {
	secs, ok := odl.Sections(format, columnKey)
	if !ok {
		return nil, &odl.PathError{Path: []string{columnKey}, Err: odl.ErrKeyNotFound}
	}

	cols := make([]Column, 0, len(secs))
	for i, sec := range secs {
		name, ok := odl.GetString(sec, "NAME")
		if !ok {
			return nil, fmt.Errorf("column %d: %w", i+1, &odl.PathError{Path: []string{columnKey, "NAME"}, Err: odl.ErrKeyNotFound})
		}
		rawNum, ok := odl.GetString(sec, "COLUMN_NUMBER")
		if !ok {
			return nil, fmt.Errorf("column %s: %w", unquote(name), &odl.PathError{Path: []string{columnKey, "COLUMN_NUMBER"}, Err: odl.ErrKeyNotFound})
		}
		num, err := strconv.Atoi(strings.TrimSpace(rawNum))
		if err != nil || num < 1 {
			return nil, fmt.Errorf("column %s: %w: %q", unquote(name), ErrBadColumnNumber, rawNum)
		}
		dataType, _ := odl.GetString(sec, "DATA_TYPE")
		cols = append(cols, Column{
			Name:   unquote(name),
			Number: num,
			Type:   ParseType(dataType),
		})
	}
	return cols, nil
}

// Resolve picks the named columns in the order given. No names means every
// column in format order. Every requested name must exist.
func Resolve(format *odl.Section, names []string) ([]Column, error) {
	all, err := Columns(format)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]Column, len(all))
	for _, c := range all {
		if _, dup := byName[c.Name]; !dup {
			byName[c.Name] = c
		}
	}

	cols := make([]Column, 0, len(names))
	var missing []string
	for _, n := range names {
		c, ok := byName[unquote(n)]
		if !ok {
			missing = append(missing, unquote(n))
			continue
		}
		cols = append(cols, c)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(missing, ", "))
	}
	return cols, nil
}

// Names returns the header names of cols.
func Names(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
