// Package jitterstats aggregates peak-jitter measurements across completed
// experiment cases and scores the remainder-turbulence hypothesis.
package jitterstats

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

// Aggregator partitions run records into the zero-remainder and
// nonzero-remainder classes and computes per-group jitter statistics.
type Aggregator struct{}

// NewAggregator creates a jitter aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Summarize computes group averages and the jitter ratio. Group statistics
// are computed only for non-empty groups, and the ratio only when both
// groups are populated; otherwise the verdict is inconclusive.
func (a *Aggregator) Summarize(records []experiment.RunRecord) *verdict.Summary {
	var zeroJitter, nonzeroJitter []float64
	for _, r := range records {
		if r.ExpectedRemainder == 0 {
			zeroJitter = append(zeroJitter, r.PeakJitter)
		} else {
			nonzeroJitter = append(nonzeroJitter, r.PeakJitter)
		}
	}

	summary := &verdict.Summary{
		HasZero:    len(zeroJitter) > 0,
		HasNonzero: len(nonzeroJitter) > 0,
		Status:     verdict.StatusInconclusive,
	}

	if summary.HasZero {
		summary.Zero = groupSummary(zeroJitter)
	}
	if summary.HasNonzero {
		summary.Nonzero = groupSummary(nonzeroJitter)
	}

	if summary.HasZero && summary.HasNonzero {
		summary.Ratio = summary.Nonzero.MeanJitter / (summary.Zero.MeanJitter + verdict.RatioEpsilon)
		if summary.Ratio > verdict.JitterRatioThreshold {
			summary.Status = verdict.StatusSupported
		} else {
			summary.Status = verdict.StatusUnsupported
		}
	}

	return summary
}

func groupSummary(jitter []float64) verdict.GroupSummary {
	// stats.Mean only errors on empty input, which callers exclude.
	mean, _ := stats.Mean(jitter)
	return verdict.GroupSummary{
		Count:      len(jitter),
		MeanJitter: mean,
		StdDev:     stat.PopStdDev(jitter, nil),
	}
}
