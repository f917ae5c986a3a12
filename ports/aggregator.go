package ports

import (
	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

// AggregatorPort partitions completed run records by expected-remainder class
// and computes the jitter summary. A group average is only computed when that
// group is non-empty; the ratio only when both are.
type AggregatorPort interface {
	Summarize(records []experiment.RunRecord) *verdict.Summary
}
