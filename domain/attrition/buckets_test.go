package attrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaredSpecsAreValid(t *testing.T) {
	for _, spec := range BucketSpecs {
		assert.NoError(t, spec.Validate(), spec.Derived)
	}
}

func TestAgeBandCut(t *testing.T) {
	cases := []struct {
		age  float64
		want string
	}{
		{25, "20s"},
		{32, "30s"},
		{45, "40s"},
		{58, "50s+"},
		{18, "20s"},
		{29, "20s"},
		{30, "30s"}, // half-open: 30 starts the next band
		{49, "40s"},
		{50, "50s+"},
		{59, "50s+"},
		{60, Unclassified}, // bounded table: 60 falls outside
		{17, Unclassified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AgeBands.Cut(tc.age), "age %.0f", tc.age)
	}
}

func TestTenureBandCut(t *testing.T) {
	cases := []struct {
		years float64
		want  string
	}{
		{0, "0-2 Years"},
		{1, "0-2 Years"},
		{2, "3-5 Years"},
		{4, "3-5 Years"},
		{5, "6-10 Years"},
		{9, "6-10 Years"},
		{10, "11+ Years"},
		{40, "11+ Years"}, // open-ended: no value exceeds the last band
		{-1, Unclassified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TenureBands.Cut(tc.years), "years %.0f", tc.years)
	}
}

func TestPromotionBandCut(t *testing.T) {
	cases := []struct {
		years float64
		want  string
	}{
		{0, "0 Years"},
		{1, "1-2 Years"},
		{2, "1-2 Years"},
		{3, "3-5 Years"},
		{5, "3-5 Years"},
		{6, "6+ Years"},
		{15, "6+ Years"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PromotionBands.Cut(tc.years), "years %.0f", tc.years)
	}
}

func TestCutIsDeterministic(t *testing.T) {
	for v := -5.0; v <= 70; v++ {
		first := AgeBands.Cut(v)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, AgeBands.Cut(v))
		}
	}
}

func TestOrderedEndsWithUnclassified(t *testing.T) {
	ordered := TenureBands.Ordered()
	require.Len(t, ordered, 5)
	assert.Equal(t, "0-2 Years", ordered[0])
	assert.Equal(t, Unclassified, ordered[4])
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	bad := BucketSpec{Source: "X", Derived: "XBand", Edges: []float64{0, 1}, Labels: []string{"a", "b", "c"}}
	assert.Error(t, bad.Validate())

	unsorted := BucketSpec{Source: "X", Derived: "XBand", Edges: []float64{0, 5, 3}, Labels: []string{"a", "b", "c"}}
	assert.Error(t, unsorted.Validate())
}

func TestBucketSpecFor(t *testing.T) {
	spec, ok := BucketSpecFor(ColAgeBand)
	require.True(t, ok)
	assert.Equal(t, ColAge, spec.Source)

	_, ok = BucketSpecFor("NoSuchBand")
	assert.False(t, ok)
}
