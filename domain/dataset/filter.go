package dataset

// Predicate tests one row of a Dataset.
type Predicate func(d *Dataset, row int) bool

// Filter is a conjunction of predicates. The zero value matches every row,
// so applying a default filter returns the dataset unchanged.
type Filter struct {
	predicates []Predicate
}

// NewFilter builds a filter from the given predicates.
func NewFilter(predicates ...Predicate) Filter {
	return Filter{predicates: predicates}
}

// With returns a new filter carrying one more predicate.
func (f Filter) With(p Predicate) Filter {
	predicates := make([]Predicate, 0, len(f.predicates)+1)
	predicates = append(predicates, f.predicates...)
	predicates = append(predicates, p)
	return Filter{predicates: predicates}
}

// And combines two filters; applying the result equals applying both in turn.
func (f Filter) And(other Filter) Filter {
	predicates := make([]Predicate, 0, len(f.predicates)+len(other.predicates))
	predicates = append(predicates, f.predicates...)
	predicates = append(predicates, other.predicates...)
	return Filter{predicates: predicates}
}

// IsEmpty reports whether the filter carries no predicates.
func (f Filter) IsEmpty() bool {
	return len(f.predicates) == 0
}

// Apply returns a new filtered view. The input dataset is never mutated.
func (f Filter) Apply(d *Dataset) *Dataset {
	if f.IsEmpty() {
		return d
	}
	keep := make([]int, 0, d.Len())
rows:
	for i := 0; i < d.Len(); i++ {
		for _, p := range f.predicates {
			if !p(d, i) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return d.subset(keep)
}

// Equal matches rows whose cell equals value exactly.
func Equal(column, value string) Predicate {
	return func(d *Dataset, row int) bool {
		cell, ok := d.Value(row, column)
		return ok && cell == value
	}
}

// In matches rows whose cell is one of the given values.
func In(column string, values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(d *Dataset, row int) bool {
		cell, ok := d.Value(row, column)
		if !ok {
			return false
		}
		_, member := set[cell]
		return member
	}
}

// Between matches rows whose numeric cell lies in [lo, hi]. Cells that do
// not parse as numbers never match.
func Between(column string, lo, hi float64) Predicate {
	return func(d *Dataset, row int) bool {
		v, ok := d.Float(row, column)
		return ok && v >= lo && v <= hi
	}
}

// AtMost matches rows whose numeric cell is <= limit.
func AtMost(column string, limit float64) Predicate {
	return func(d *Dataset, row int) bool {
		v, ok := d.Float(row, column)
		return ok && v <= limit
	}
}
