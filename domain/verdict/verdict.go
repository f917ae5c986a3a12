package verdict

// JitterRatioThreshold is the ratio above which the jitter hypothesis is
// considered supported.
const JitterRatioThreshold = 1.5

// RatioEpsilon stabilizes the ratio against a near-zero divisible-group
// average.
const RatioEpsilon = 0.0001

// Status is the outcome of the jitter-ratio hypothesis test.
type Status string

const (
	// StatusSupported: nonzero-remainder cases showed significantly higher jitter.
	StatusSupported Status = "supported"
	// StatusUnsupported: the jitter difference did not clear the threshold.
	StatusUnsupported Status = "unsupported"
	// StatusInconclusive: one or both remainder groups were empty, so no
	// ratio could be computed.
	StatusInconclusive Status = "inconclusive"
)

// GroupSummary holds the jitter statistics of one remainder class.
type GroupSummary struct {
	Count      int
	MeanJitter float64
	StdDev     float64
}

// Summary is the cross-case aggregate: per-group jitter statistics, their
// ratio, and the verdict. HasZero/HasNonzero gate which lines a reporter may
// render; Ratio is meaningful only when both are true.
type Summary struct {
	Zero       GroupSummary
	Nonzero    GroupSummary
	HasZero    bool
	HasNonzero bool
	Ratio      float64
	Status     Status
}
