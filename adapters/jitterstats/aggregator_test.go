package jitterstats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

func records(pairs ...[2]float64) []experiment.RunRecord {
	out := make([]experiment.RunRecord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, experiment.RunRecord{
			ExpectedRemainder: p[0],
			PeakJitter:        p[1],
		})
	}
	return out
}

func TestSummarize_ExactGroupMeansAndRatio(t *testing.T) {
	// zero group: 0.1, 0.3 -> mean 0.2; nonzero group: 0.5, 0.7 -> mean 0.6
	agg := NewAggregator()
	s := agg.Summarize(records(
		[2]float64{0, 0.1},
		[2]float64{1, 0.5},
		[2]float64{0, 0.3},
		[2]float64{2, 0.7},
	))

	assert.True(t, s.HasZero)
	assert.True(t, s.HasNonzero)
	assert.InDelta(t, 0.2, s.Zero.MeanJitter, 1e-12)
	assert.InDelta(t, 0.6, s.Nonzero.MeanJitter, 1e-12)
	assert.Equal(t, 2, s.Zero.Count)
	assert.Equal(t, 2, s.Nonzero.Count)
	assert.InDelta(t, 0.6/(0.2+verdict.RatioEpsilon), s.Ratio, 1e-12)
	assert.Equal(t, verdict.StatusSupported, s.Status)
}

func TestSummarize_BelowThresholdIsUnsupported(t *testing.T) {
	agg := NewAggregator()
	s := agg.Summarize(records(
		[2]float64{0, 0.4},
		[2]float64{1, 0.5},
	))

	assert.Less(t, s.Ratio, verdict.JitterRatioThreshold)
	assert.Equal(t, verdict.StatusUnsupported, s.Status)
}

func TestSummarize_ThresholdIsStrict(t *testing.T) {
	// ratio exactly at the threshold must not count as supported
	agg := NewAggregator()
	zero := 0.2
	nonzero := verdict.JitterRatioThreshold * (zero + verdict.RatioEpsilon)
	s := agg.Summarize(records(
		[2]float64{0, zero},
		[2]float64{1, nonzero},
	))

	assert.InDelta(t, verdict.JitterRatioThreshold, s.Ratio, 1e-12)
	assert.Equal(t, verdict.StatusUnsupported, s.Status)
}

func TestSummarize_EpsilonGuardsZeroDivisibleMean(t *testing.T) {
	agg := NewAggregator()
	s := agg.Summarize(records(
		[2]float64{0, 0},
		[2]float64{1, 0.5},
	))

	assert.InDelta(t, 0.5/verdict.RatioEpsilon, s.Ratio, 1e-6)
	assert.Equal(t, verdict.StatusSupported, s.Status)
}

func TestSummarize_MissingGroups(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name       string
		recs       []experiment.RunRecord
		hasZero    bool
		hasNonzero bool
	}{
		{"only zero class", records([2]float64{0, 0.1}, [2]float64{0, 0.2}), true, false},
		{"only nonzero class", records([2]float64{1, 0.5}), false, true},
		{"no records at all", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := agg.Summarize(tt.recs)
			assert.Equal(t, tt.hasZero, s.HasZero)
			assert.Equal(t, tt.hasNonzero, s.HasNonzero)
			assert.Zero(t, s.Ratio, "no ratio may be computed with a missing group")
			assert.Equal(t, verdict.StatusInconclusive, s.Status)
		})
	}
}

func TestSummarize_SpreadOfSingletonGroupIsZero(t *testing.T) {
	agg := NewAggregator()
	s := agg.Summarize(records([2]float64{0, 0.3}, [2]float64{1, 0.9}))

	assert.Zero(t, s.Zero.StdDev)
	assert.Zero(t, s.Nonzero.StdDev)
}
