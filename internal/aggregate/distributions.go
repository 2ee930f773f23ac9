package aggregate

import (
	"fmt"
	"strconv"

	"attrilens/domain/attrition"
	"attrilens/domain/dataset"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Overview computes the headline metrics: headcount, overall attrition rate,
// and mean job satisfaction / monthly income. An empty dataset yields zeros.
func (e *Engine) Overview(ds *dataset.Dataset) (attrition.Overview, error) {
	if err := requireColumns(ds, attrition.ColAttritionFlag,
		attrition.ColJobSatisfaction, attrition.ColMonthlyIncome); err != nil {
		return attrition.Overview{}, err
	}

	overview := attrition.Overview{Headcount: ds.Len()}
	if ds.Len() == 0 {
		return overview, nil
	}

	for i := 0; i < ds.Len(); i++ {
		if leaver(ds, i) {
			overview.Leavers++
		}
	}
	overview.AttritionRate = rate(overview.Leavers, overview.Headcount)

	satisfaction, _, err := ds.FloatColumn(attrition.ColJobSatisfaction)
	if err != nil {
		return attrition.Overview{}, err
	}
	income, _, err := ds.FloatColumn(attrition.ColMonthlyIncome)
	if err != nil {
		return attrition.Overview{}, err
	}
	if len(satisfaction) > 0 {
		if overview.AvgJobSatisfaction, err = stats.Mean(satisfaction); err != nil {
			return attrition.Overview{}, err
		}
	}
	if len(income) > 0 {
		if overview.AvgMonthlyIncome, err = stats.Mean(income); err != nil {
			return attrition.Overview{}, err
		}
	}
	return overview, nil
}

// BoxStats computes per-group five-number summaries of one numeric column,
// grouped by a categorical column. Groups whose column never parses (or with
// no rows) are omitted rather than reported with fabricated numbers.
func (e *Engine) BoxStats(ds *dataset.Dataset, valueColumn, byColumn string) ([]attrition.BoxStats, error) {
	if err := requireColumns(ds, valueColumn, byColumn); err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	var order []string
	for i := 0; i < ds.Len(); i++ {
		group, _ := ds.Value(i, byColumn)
		raw, _ := ds.Value(i, valueColumn)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if _, seen := groups[group]; !seen {
			order = append(order, group)
		}
		groups[group] = append(groups[group], v)
	}

	out := make([]attrition.BoxStats, 0, len(order))
	for _, group := range order {
		data := groups[group]
		box, err := summarizeBox(group, data)
		if err != nil {
			return nil, fmt.Errorf("box stats for %s=%s: %w", byColumn, group, err)
		}
		out = append(out, box)
	}
	return out, nil
}

func summarizeBox(group string, data []float64) (attrition.BoxStats, error) {
	box := attrition.BoxStats{Group: group, Count: len(data)}

	var err error
	if box.Min, err = stats.Min(data); err != nil {
		return box, err
	}
	if box.Max, err = stats.Max(data); err != nil {
		return box, err
	}
	if box.Median, err = stats.Median(data); err != nil {
		return box, err
	}
	if box.Mean, err = stats.Mean(data); err != nil {
		return box, err
	}
	quartiles, err := stats.Quartile(data)
	if err != nil {
		// Quartile needs at least 4 samples; fall back to the median.
		box.Q1, box.Q3 = box.Median, box.Median
		return box, nil
	}
	box.Q1, box.Q3 = quartiles.Q1, quartiles.Q3
	return box, nil
}

// Correlation computes the pairwise Pearson correlation matrix over the
// given numeric columns. Rows where either cell fails to parse are excluded
// from that pair's denominator.
func (e *Engine) Correlation(ds *dataset.Dataset, columns []string) (*attrition.CorrelationMatrix, error) {
	if err := requireColumns(ds, columns...); err != nil {
		return nil, err
	}

	m := &attrition.CorrelationMatrix{
		Columns: columns,
		Values:  make([][]float64, len(columns)),
	}
	for i := range columns {
		m.Values[i] = make([]float64, len(columns))
		m.Values[i][i] = 1
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			xs, ys := pairedColumns(ds, columns[i], columns[j])
			var r float64
			if len(xs) > 1 {
				r = stat.Correlation(xs, ys, nil)
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// pairedColumns extracts the rows where both columns parse as numbers.
func pairedColumns(ds *dataset.Dataset, a, b string) ([]float64, []float64) {
	xs := make([]float64, 0, ds.Len())
	ys := make([]float64, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		x, okA := ds.Float(i, a)
		y, okB := ds.Float(i, b)
		if okA && okB {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}
