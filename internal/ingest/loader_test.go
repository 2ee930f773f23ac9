package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrilens/domain/attrition"
	"attrilens/domain/core"
)

const fixtureCSV = `Attrition,Age,Department,JobRole,Gender,MaritalStatus,YearsAtCompany,MonthlyIncome,JobSatisfaction,OverTime,BusinessTravel,WorkLifeBalance,YearsSinceLastPromotion,DistanceFromHome,JobLevel,TotalWorkingYears
Yes,29,Sales,Sales Executive,Male,Single,1,3200,2,Yes,Travel_Frequently,2,0,10,1,4
No,41,Research & Development,Research Scientist,Female,Married,7,6500,4,No,Travel_Rarely,3,2,3,2,15
No,35,Sales,Sales Executive,Male,Divorced,4,5100,3,No,Travel_Rarely,3,1,12,2,9
Yes,52,Human Resources,Human Resources,Female,Married,15,9800,1,Yes,Non-Travel,2,8,5,4,27
No,60,Research & Development,Manager,Male,Married,22,17000,3,No,Travel_Rarely,4,10,2,5,38
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attrition.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNormalizesDataset(t *testing.T) {
	path := writeFixture(t, fixtureCSV)

	ds, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())

	// derived columns are attached alongside the originals
	for _, col := range []string{
		attrition.ColAttritionFlag,
		attrition.ColAgeBand,
		attrition.ColTenureBand,
		attrition.ColPromotionBand,
	} {
		assert.True(t, ds.HasColumn(col), col)
	}

	flag, _ := ds.Value(0, attrition.ColAttritionFlag)
	assert.Equal(t, "1", flag)
	flag, _ = ds.Value(1, attrition.ColAttritionFlag)
	assert.Equal(t, "0", flag)

	band, _ := ds.Value(0, attrition.ColAgeBand)
	assert.Equal(t, "20s", band)
	band, _ = ds.Value(4, attrition.ColAgeBand)
	assert.Equal(t, attrition.Unclassified, band)

	band, _ = ds.Value(3, attrition.ColTenureBand)
	assert.Equal(t, "11+ Years", band)
	band, _ = ds.Value(2, attrition.ColPromotionBand)
	assert.Equal(t, "1-2 Years", band)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, core.IsDataNotFound(err))
}

func TestLoadMissingColumnsNamedInError(t *testing.T) {
	// drop two required columns from the header and every row
	lines := strings.Split(strings.TrimSpace(fixtureCSV), "\n")
	var trimmed []string
	for _, line := range lines {
		cells := strings.Split(line, ",")
		trimmed = append(trimmed, strings.Join(cells[:len(cells)-2], ","))
	}
	path := writeFixture(t, strings.Join(trimmed, "\n")+"\n")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, core.IsSchemaInvalid(err))
	assert.Contains(t, err.Error(), attrition.ColJobLevel)
	assert.Contains(t, err.Error(), attrition.ColTotalWorkingYears)
}

func TestLoadIsMemoizedPerPath(t *testing.T) {
	path := writeFixture(t, fixtureCSV)
	loader := NewLoader()

	first, err := loader.Load(path)
	require.NoError(t, err)

	// rewrite the file; the cached dataset must still be served
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV+fixtureCSV), 0o644))
	second, err := loader.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInvalidateForcesReload(t *testing.T) {
	path := writeFixture(t, fixtureCSV)
	loader := NewLoader()

	first, err := loader.Load(path)
	require.NoError(t, err)

	loader.Invalidate(path)
	second, err := loader.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Len(), second.Len())
}

func TestUnparseableSourceValueBecomesUnclassified(t *testing.T) {
	broken := strings.Replace(fixtureCSV, "Yes,29,", "Yes,unknown,", 1)
	path := writeFixture(t, broken)

	ds, err := NewLoader().Load(path)
	require.NoError(t, err)
	band, _ := ds.Value(0, attrition.ColAgeBand)
	assert.Equal(t, attrition.Unclassified, band)
}
