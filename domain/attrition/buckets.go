package attrition

import "fmt"

// Unclassified labels values that fall outside every declared interval.
// They stay in the output as their own group rather than being dropped.
const Unclassified = "Unclassified"

// BucketSpec derives an ordered categorical column from a continuous one
// using fixed half-open intervals [Edges[i], Edges[i+1]). When len(Edges)
// equals len(Labels) the last interval is open-ended on the right, so the
// maximum observed value can never silently fall out of range.
type BucketSpec struct {
	Source  string
	Derived string
	Edges   []float64
	Labels  []string
}

// Validate checks the edge/label arity and edge ordering.
func (s BucketSpec) Validate() error {
	if len(s.Edges) != len(s.Labels) && len(s.Edges) != len(s.Labels)+1 {
		return fmt.Errorf("bucket spec %s: %d edges cannot carry %d labels",
			s.Derived, len(s.Edges), len(s.Labels))
	}
	for i := 1; i < len(s.Edges); i++ {
		if s.Edges[i] <= s.Edges[i-1] {
			return fmt.Errorf("bucket spec %s: edges not strictly increasing at %d", s.Derived, i)
		}
	}
	return nil
}

// openEnded reports whether the last interval has no upper bound.
func (s BucketSpec) openEnded() bool {
	return len(s.Edges) == len(s.Labels)
}

// Cut maps one value to its bucket label. It is a pure function: the same
// input always yields the same label, and out-of-range values map to
// Unclassified instead of erroring.
func (s BucketSpec) Cut(v float64) string {
	if len(s.Labels) == 0 || v < s.Edges[0] {
		return Unclassified
	}
	for i := 1; i < len(s.Edges); i++ {
		if v < s.Edges[i] {
			return s.Labels[i-1]
		}
	}
	if s.openEnded() {
		return s.Labels[len(s.Labels)-1]
	}
	return Unclassified
}

// Ordered returns the declared label order charts should render, with
// Unclassified as the trailing catch-all slot.
func (s BucketSpec) Ordered() []string {
	out := make([]string, 0, len(s.Labels)+1)
	out = append(out, s.Labels...)
	out = append(out, Unclassified)
	return out
}

// Declared bucket tables. Edge values are fixed for output parity with the
// published dashboards; do not tune them per call site.
var (
	// AgeBands buckets Age into decades. The table is bounded above at 60,
	// so a 60-year-old lands in Unclassified.
	AgeBands = BucketSpec{
		Source:  ColAge,
		Derived: ColAgeBand,
		Edges:   []float64{18, 30, 40, 50, 60},
		Labels:  []string{"20s", "30s", "40s", "50s+"},
	}

	// TenureBands buckets YearsAtCompany, open-ended on the right.
	TenureBands = BucketSpec{
		Source:  ColYearsAtCompany,
		Derived: ColTenureBand,
		Edges:   []float64{0, 2, 5, 10},
		Labels:  []string{"0-2 Years", "3-5 Years", "6-10 Years", "11+ Years"},
	}

	// PromotionBands buckets YearsSinceLastPromotion so each label contains
	// exactly the integer years it names: {0}, {1,2}, {3,4,5}, {6+}.
	PromotionBands = BucketSpec{
		Source:  ColYearsSinceLastPromotion,
		Derived: ColPromotionBand,
		Edges:   []float64{0, 1, 3, 6},
		Labels:  []string{"0 Years", "1-2 Years", "3-5 Years", "6+ Years"},
	}
)

// BucketSpecs lists every derivation the loader applies, in order.
var BucketSpecs = []BucketSpec{AgeBands, TenureBands, PromotionBands}

// BucketSpecFor returns the spec whose derived column matches name.
func BucketSpecFor(name string) (BucketSpec, bool) {
	for _, spec := range BucketSpecs {
		if spec.Derived == name {
			return spec, true
		}
	}
	return BucketSpec{}, false
}
