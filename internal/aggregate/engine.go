package aggregate

import (
	"sort"
	"strconv"

	"attrilens/domain/attrition"
	"attrilens/domain/core"
	"attrilens/domain/dataset"
)

// Engine computes grouped attrition-rate summaries over an immutable
// Dataset. All methods are pure: they allocate fresh result structures and
// share no state, so concurrent calls need no locking.
type Engine struct{}

// NewEngine creates a new aggregation engine
func NewEngine() *Engine {
	return &Engine{}
}

// leaver reports whether the row carries the positive outcome flag.
func leaver(ds *dataset.Dataset, row int) bool {
	flag, ok := ds.Value(row, attrition.ColAttritionFlag)
	return ok && flag == "1"
}

// rate applies the fixed empty-group convention: zero total means rate 0.
func rate(leavers, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(leavers) / float64(total)
}

// Summarize partitions the dataset by distinct values of key and returns one
// GroupSummary per observed value. Bucket-derived keys keep their declared
// label order so charts render chronologically; natural categories are
// ordered by descending rate, ties broken by key.
func (e *Engine) Summarize(ds *dataset.Dataset, key string) ([]attrition.GroupSummary, error) {
	if err := requireColumns(ds, key, attrition.ColAttritionFlag); err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	leavers := make(map[string]int)
	var order []string
	for i := 0; i < ds.Len(); i++ {
		value, _ := ds.Value(i, key)
		if _, seen := totals[value]; !seen {
			order = append(order, value)
		}
		totals[value]++
		if leaver(ds, i) {
			leavers[value]++
		}
	}

	summaries := make([]attrition.GroupSummary, 0, len(order))
	for _, value := range order {
		summaries = append(summaries, attrition.GroupSummary{
			Key:     value,
			Total:   totals[value],
			Leavers: leavers[value],
			Rate:    rate(leavers[value], totals[value]),
		})
	}

	if spec, ok := attrition.BucketSpecFor(key); ok {
		orderByLabels(summaries, spec.Ordered())
	} else {
		sort.SliceStable(summaries, func(i, j int) bool {
			if summaries[i].Rate != summaries[j].Rate {
				return summaries[i].Rate > summaries[j].Rate
			}
			return summaries[i].Key < summaries[j].Key
		})
	}
	return summaries, nil
}

// Summarize2D cross-tabulates the dataset by two keys and returns a complete
// rowKey x colKey rate matrix. Coordinates with no observations carry the
// empty-group sentinel (zero counts, rate 0), never an absent cell, so a
// heatmap consumer has a value everywhere. Rates are always recomputed from
// raw counts, never averaged from precomputed percentages.
func (e *Engine) Summarize2D(ds *dataset.Dataset, rowKey, colKey string) (*attrition.RateMatrix, error) {
	if err := requireColumns(ds, rowKey, colKey, attrition.ColAttritionFlag); err != nil {
		return nil, err
	}

	rowLabels := labelsFor(ds, rowKey)
	colLabels := labelsFor(ds, colKey)
	rowIndex := indexOf(rowLabels)
	colIndex := indexOf(colLabels)

	m := &attrition.RateMatrix{
		RowKey:    rowKey,
		ColKey:    colKey,
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Totals:    make([][]int, len(rowLabels)),
		Leavers:   make([][]int, len(rowLabels)),
		Rates:     make([][]float64, len(rowLabels)),
	}
	for i := range rowLabels {
		m.Totals[i] = make([]int, len(colLabels))
		m.Leavers[i] = make([]int, len(colLabels))
		m.Rates[i] = make([]float64, len(colLabels))
	}

	for i := 0; i < ds.Len(); i++ {
		rowValue, _ := ds.Value(i, rowKey)
		colValue, _ := ds.Value(i, colKey)
		r, okRow := rowIndex[rowValue]
		c, okCol := colIndex[colValue]
		if !okRow || !okCol {
			continue
		}
		m.Totals[r][c]++
		if leaver(ds, i) {
			m.Leavers[r][c]++
		}
	}

	for r := range m.Rates {
		for c := range m.Rates[r] {
			m.Rates[r][c] = rate(m.Leavers[r][c], m.Totals[r][c])
		}
	}
	return m, nil
}

// CountPath counts rows per distinct value path over the given columns, the
// payload behind hierarchical (sunburst) charts. Paths are ordered by their
// component values.
func (e *Engine) CountPath(ds *dataset.Dataset, columns ...string) ([]attrition.PathCount, error) {
	if err := requireColumns(ds, columns...); err != nil {
		return nil, err
	}

	type node struct {
		path  []string
		count int
	}
	counts := make(map[string]*node)
	for i := 0; i < ds.Len(); i++ {
		path := make([]string, len(columns))
		for j, col := range columns {
			path[j], _ = ds.Value(i, col)
		}
		key := joinPath(path)
		if n, ok := counts[key]; ok {
			n.count++
		} else {
			counts[key] = &node{path: path, count: 1}
		}
	}

	out := make([]attrition.PathCount, 0, len(counts))
	for _, n := range counts {
		out = append(out, attrition.PathCount{Path: n.path, Count: n.count})
	}
	sort.Slice(out, func(i, j int) bool {
		return joinPath(out[i].Path) < joinPath(out[j].Path)
	})
	return out, nil
}

func requireColumns(ds *dataset.Dataset, columns ...string) error {
	for _, col := range columns {
		if !ds.HasColumn(col) {
			return core.NewUnknownColumnError(col)
		}
	}
	return nil
}

// labelsFor fixes the axis label set for one key: declared order for bucket
// columns (Unclassified only when observed), otherwise the observed distinct
// values in ascending numeric-aware order.
func labelsFor(ds *dataset.Dataset, key string) []string {
	observed := make(map[string]struct{})
	for i := 0; i < ds.Len(); i++ {
		value, _ := ds.Value(i, key)
		observed[value] = struct{}{}
	}

	if spec, ok := attrition.BucketSpecFor(key); ok {
		labels := make([]string, 0, len(spec.Labels)+1)
		labels = append(labels, spec.Labels...)
		if _, has := observed[attrition.Unclassified]; has {
			labels = append(labels, attrition.Unclassified)
		}
		return labels
	}

	labels := make([]string, 0, len(observed))
	for value := range observed {
		labels = append(labels, value)
	}
	sort.Slice(labels, func(i, j int) bool { return lessNatural(labels[i], labels[j]) })
	return labels
}

// lessNatural compares numerically when both values parse as numbers, so
// ordinal scales like JobLevel sort 1..10 instead of lexically.
func lessNatural(a, b string) bool {
	av, aerr := strconv.ParseFloat(a, 64)
	bv, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		return av < bv
	}
	return a < b
}

func indexOf(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return index
}

// orderByLabels reorders summaries to the declared label order, keeping
// unknown keys (none expected) at the end in their incoming order.
func orderByLabels(summaries []attrition.GroupSummary, labels []string) {
	rank := make(map[string]int, len(labels))
	for i, label := range labels {
		rank[label] = i
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		ri, iok := rank[summaries[i].Key]
		rj, jok := rank[summaries[j].Key]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
}

// joinPath builds a collision-safe map key from path components.
func joinPath(path []string) string {
	key := ""
	for _, p := range path {
		key += strconv.Itoa(len(p)) + ":" + p + "|"
	}
	return key
}
