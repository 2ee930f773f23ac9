package dataset

import (
	"strconv"
	"strings"
)

// numericColumnShare is the share of non-empty cells that must parse as
// numbers for a column to be treated as numeric and skipped by Search.
const numericColumnShare = 0.8

// StringColumns returns the columns treated as free text rather than numeric.
func (d *Dataset) StringColumns() []string {
	var out []string
	for _, name := range d.columns {
		if !d.isNumericColumn(name) {
			out = append(out, name)
		}
	}
	return out
}

func (d *Dataset) isNumericColumn(name string) bool {
	col := d.index[name]
	nonEmpty, numeric := 0, 0
	for _, row := range d.rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			numeric++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(numeric)/float64(nonEmpty) >= numericColumnShare
}

// Search returns a filtered view of rows where any string-typed column
// contains the query, case-insensitively. An empty query matches everything.
func (d *Dataset) Search(query string) *Dataset {
	if query == "" {
		return d
	}
	needle := strings.ToLower(query)
	searchable := make([]int, 0, len(d.columns))
	for _, name := range d.StringColumns() {
		searchable = append(searchable, d.index[name])
	}

	keep := make([]int, 0, len(d.rows))
	for i, row := range d.rows {
		for _, col := range searchable {
			if strings.Contains(strings.ToLower(row[col]), needle) {
				keep = append(keep, i)
				break
			}
		}
	}
	return d.subset(keep)
}
