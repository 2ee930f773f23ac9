package attrition

// GroupSummary is the per-group aggregation result: how many rows fell into
// the group, how many of them are leavers, and the leaver share in percent.
type GroupSummary struct {
	Key     string  `json:"key"`
	Total   int     `json:"total_count"`
	Leavers int     `json:"positive_count"`
	Rate    float64 `json:"rate_percent"`
}

// RateMatrix is the two-dimensional aggregation result. Every
// (row, column) coordinate is populated: cells with no observations carry
// the empty-group sentinel (zero counts, rate 0), never an absent value.
type RateMatrix struct {
	RowKey    string      `json:"row_key"`
	ColKey    string      `json:"col_key"`
	RowLabels []string    `json:"row_labels"`
	ColLabels []string    `json:"col_labels"`
	Totals    [][]int     `json:"totals"`
	Leavers   [][]int     `json:"leavers"`
	Rates     [][]float64 `json:"rates"`
}

// Cell returns the totals and rate at one coordinate.
func (m *RateMatrix) Cell(row, col int) (total, leavers int, rate float64) {
	return m.Totals[row][col], m.Leavers[row][col], m.Rates[row][col]
}

// BoxStats is a per-group five-number summary (plus mean) of one numeric
// column, the payload behind the distribution box plots.
type BoxStats struct {
	Group  string  `json:"group"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// PathCount is one node count of a hierarchical (sunburst) breakdown: the
// number of rows matching every value along Path, in column order.
type PathCount struct {
	Path  []string `json:"path"`
	Count int      `json:"count"`
}

// Overview carries the headline dashboard metrics.
type Overview struct {
	Headcount          int     `json:"headcount"`
	Leavers            int     `json:"leavers"`
	AttritionRate      float64 `json:"attrition_rate"`
	AvgJobSatisfaction float64 `json:"avg_job_satisfaction"`
	AvgMonthlyIncome   float64 `json:"avg_monthly_income"`
}

// CorrelationMatrix holds pairwise Pearson correlations between numeric
// columns, in the order of Columns.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}
