package dataset

import (
	"fmt"
	"strconv"

	"attrilens/domain/core"
)

// Dataset is an immutable tabular view: a fixed column list over rows of raw
// string cells. Derived columns are added copy-on-write via WithColumn; no
// operation ever mutates an existing Dataset or a view derived from one.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Dataset from a header and raw rows. Every row must have
// exactly one cell per column.
func New(columns []string, rows [][]string) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", core.ErrSchemaInvalid, name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				core.ErrSchemaInvalid, i, len(row), len(columns))
		}
	}
	return &Dataset{columns: columns, index: index, rows: rows}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Columns returns the column names in declared order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the column exists (original or derived).
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// MissingColumns returns the subset of names absent from the dataset.
func (d *Dataset) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Value returns the raw cell at (row, column).
func (d *Dataset) Value(row int, column string) (string, bool) {
	col, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return "", false
	}
	return d.rows[row][col], true
}

// Float parses the cell at (row, column) as a number.
func (d *Dataset) Float(row int, column string) (float64, bool) {
	raw, ok := d.Value(row, column)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Column returns a copy of one column's cells in row order.
func (d *Dataset) Column(name string) ([]string, error) {
	col, ok := d.index[name]
	if !ok {
		return nil, core.NewUnknownColumnError(name)
	}
	out := make([]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[col]
	}
	return out, nil
}

// FloatColumn returns the column parsed as numbers, skipping cells that do
// not parse. The second return value counts the parsed cells.
func (d *Dataset) FloatColumn(name string) ([]float64, int, error) {
	raw, err := d.Column(name)
	if err != nil {
		return nil, 0, err
	}
	out := make([]float64, 0, len(raw))
	for _, cell := range raw {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

// Row returns one row as a column-name keyed record.
func (d *Dataset) Row(i int) map[string]string {
	record := make(map[string]string, len(d.columns))
	for name, col := range d.index {
		record[name] = d.rows[i][col]
	}
	return record
}

// WithColumn returns a new Dataset carrying an extra derived column. The
// receiver is left untouched; rows are re-allocated, not aliased.
func (d *Dataset) WithColumn(name string, values []string) (*Dataset, error) {
	if d.HasColumn(name) {
		return nil, fmt.Errorf("%w: column %q already exists", core.ErrSchemaInvalid, name)
	}
	if len(values) != len(d.rows) {
		return nil, fmt.Errorf("%w: column %q has %d values for %d rows",
			core.ErrSchemaInvalid, name, len(values), len(d.rows))
	}

	columns := make([]string, 0, len(d.columns)+1)
	columns = append(columns, d.columns...)
	columns = append(columns, name)

	rows := make([][]string, len(d.rows))
	for i, row := range d.rows {
		next := make([]string, 0, len(row)+1)
		next = append(next, row...)
		next = append(next, values[i])
		rows[i] = next
	}
	return New(columns, rows)
}

// subset builds a filtered view sharing the (never-mutated) backing rows.
func (d *Dataset) subset(keep []int) *Dataset {
	rows := make([][]string, len(keep))
	for i, idx := range keep {
		rows[i] = d.rows[idx]
	}
	return &Dataset{columns: d.columns, index: d.index, rows: rows}
}
