package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrilens/domain/attrition"
	"attrilens/domain/core"
)

func TestOverview(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColAttritionFlag, attrition.ColJobSatisfaction, attrition.ColMonthlyIncome},
		[][]string{
			{"1", "2", "3000"},
			{"0", "4", "5000"},
			{"0", "3", "7000"},
			{"1", "3", "4000"},
		})

	overview, err := NewEngine().Overview(ds)
	require.NoError(t, err)
	assert.Equal(t, 4, overview.Headcount)
	assert.Equal(t, 2, overview.Leavers)
	assert.Equal(t, 50.0, overview.AttritionRate)
	assert.Equal(t, 3.0, overview.AvgJobSatisfaction)
	assert.Equal(t, 4750.0, overview.AvgMonthlyIncome)
}

func TestOverviewEmptyDataset(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColAttritionFlag, attrition.ColJobSatisfaction, attrition.ColMonthlyIncome},
		nil)

	overview, err := NewEngine().Overview(ds)
	require.NoError(t, err)
	assert.Equal(t, attrition.Overview{}, overview)
}

func TestOverviewMissingColumn(t *testing.T) {
	ds := makeDataset(t, []string{attrition.ColAttritionFlag}, nil)
	_, err := NewEngine().Overview(ds)
	assert.True(t, core.IsSchemaInvalid(err))
}

func TestBoxStats(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColMonthlyIncome, attrition.ColAttrition},
		[][]string{
			{"1000", "Yes"},
			{"2000", "Yes"},
			{"3000", "Yes"},
			{"4000", "Yes"},
			{"5000", "No"},
			{"not-a-number", "No"},
		})

	boxes, err := NewEngine().BoxStats(ds, attrition.ColMonthlyIncome, attrition.ColAttrition)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	yes := boxes[0]
	assert.Equal(t, "Yes", yes.Group)
	assert.Equal(t, 4, yes.Count)
	assert.Equal(t, 1000.0, yes.Min)
	assert.Equal(t, 4000.0, yes.Max)
	assert.Equal(t, 2500.0, yes.Median)
	assert.Equal(t, 2500.0, yes.Mean)
	assert.Equal(t, 1500.0, yes.Q1)
	assert.Equal(t, 3500.0, yes.Q3)

	// the unparseable cell leaves one sample; quartiles fall back to median
	no := boxes[1]
	assert.Equal(t, 1, no.Count)
	assert.Equal(t, 5000.0, no.Median)
	assert.Equal(t, no.Median, no.Q1)
	assert.Equal(t, no.Median, no.Q3)
}

func TestBoxStatsOmitsGroupsWithoutSamples(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColMonthlyIncome, attrition.ColAttrition},
		[][]string{
			{"n/a", "Yes"},
			{"1200", "No"},
		})

	boxes, err := NewEngine().BoxStats(ds, attrition.ColMonthlyIncome, attrition.ColAttrition)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "No", boxes[0].Group)
}

func TestCorrelation(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColAge, attrition.ColTotalWorkingYears, attrition.ColJobSatisfaction},
		[][]string{
			{"20", "2", "4"},
			{"30", "8", "2"},
			{"40", "14", "3"},
			{"50", "20", "1"},
		})

	m, err := NewEngine().Correlation(ds, []string{
		attrition.ColAge, attrition.ColTotalWorkingYears, attrition.ColJobSatisfaction,
	})
	require.NoError(t, err)

	for i := range m.Columns {
		assert.Equal(t, 1.0, m.Values[i][i])
	}
	// Age and TotalWorkingYears are perfectly linear here
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
	assert.Equal(t, m.Values[0][1], m.Values[1][0])
	assert.Equal(t, m.Values[0][2], m.Values[2][0])
	assert.LessOrEqual(t, m.Values[0][2], 0.0)
}

func TestCorrelationSkipsUnparseablePairs(t *testing.T) {
	ds := makeDataset(t,
		[]string{attrition.ColAge, attrition.ColTotalWorkingYears},
		[][]string{
			{"20", "2"},
			{"30", "oops"},
			{"40", "6"},
			{"50", "8"},
		})

	m, err := NewEngine().Correlation(ds, []string{attrition.ColAge, attrition.ColTotalWorkingYears})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
}
