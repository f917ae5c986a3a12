// Package consolereport renders the experiment transcript for a human
// operator.
package consolereport

import (
	"fmt"
	"io"
	"math"
	"strings"

	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

const rule = 60

// Reporter writes per-case blocks and the final summary to a writer.
// Pure presentation; all decisions are made upstream.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a console reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// BatchStarted announces the battery run.
func (r *Reporter) BatchStarted(cases int) {
	fmt.Fprintf(r.out, "Division Settlement Harness\n")
	fmt.Fprintf(r.out, "Running %d experiments against the division-physics collaborator\n", cases)
}

// CaseStarted opens a per-case block.
func (r *Reporter) CaseStarted(tc experiment.TestCase) {
	quotient := math.Floor(tc.Dividend / tc.Divisor)
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("=", rule))
	fmt.Fprintf(r.out, "TEST: %g / %g = %g remainder %g\n", tc.Dividend, tc.Divisor, quotient, tc.ExpectedRemainder)
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("=", rule))
}

// CaseAccepted reports the collaborator's acknowledgement.
func (r *Reporter) CaseAccepted(ack *experiment.StartAck) {
	msg := ack.Message
	if msg == "" {
		msg = "OK"
	}
	fmt.Fprintf(r.out, "  Started: %s\n", msg)
}

// CaseWarning reports a non-fatal per-case condition.
func (r *Reporter) CaseWarning(tc experiment.TestCase, msg string) {
	fmt.Fprintf(r.out, "  WARNING: %s\n", msg)
}

// CaseFailed reports a fatal per-case condition.
func (r *Reporter) CaseFailed(tc experiment.TestCase, stage string, err error) {
	fmt.Fprintf(r.out, "  ERROR: %s failed: %v\n", stage, err)
}

// CaseResult renders all collected measurement fields.
func (r *Reporter) CaseResult(tc experiment.TestCase, res *experiment.Result) {
	fmt.Fprintf(r.out, "  Result:\n")
	fmt.Fprintf(r.out, "    Quotient:         %g\n", res.Quotient)
	fmt.Fprintf(r.out, "    Remainder:        %g\n", res.Remainder)
	fmt.Fprintf(r.out, "    Is Divisible:     %t\n", res.IsDivisible)
	fmt.Fprintf(r.out, "    Peak Jitter:      %.4f\n", res.PeakJitter)
	fmt.Fprintf(r.out, "    Velocity Sigma:   %.4f\n", res.VelocitySigma)
	fmt.Fprintf(r.out, "    Turbulence:       %.2f\n", res.TurbulenceEnergy)
	fmt.Fprintf(r.out, "    Ticks to Settle:  %d\n", res.TicksToSettle)
	fmt.Fprintf(r.out, "    Node Occupancy:   %v\n", res.NodeOccupancy)
	if res.Interpretation != "" {
		fmt.Fprintf(r.out, "    Interpretation:   %s\n", res.Interpretation)
	}
}

// Summary renders the cross-case aggregate and verdict. Lines for empty
// groups are omitted; the ratio line only appears when both groups exist.
func (r *Reporter) Summary(s *verdict.Summary) {
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("=", rule))
	fmt.Fprintf(r.out, "SUMMARY: Peak Jitter by Remainder\n")
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("=", rule))

	if s.HasZero {
		fmt.Fprintf(r.out, "  Divisible cases (r=0):   avg jitter = %.4f (n=%d, sd=%.4f)\n",
			s.Zero.MeanJitter, s.Zero.Count, s.Zero.StdDev)
	}
	if s.HasNonzero {
		fmt.Fprintf(r.out, "  Remainder cases (r>0):   avg jitter = %.4f (n=%d, sd=%.4f)\n",
			s.Nonzero.MeanJitter, s.Nonzero.Count, s.Nonzero.StdDev)
	}

	if !s.HasZero || !s.HasNonzero {
		fmt.Fprintf(r.out, "\n  Verdict: inconclusive (need cases in both remainder classes)\n")
		return
	}

	fmt.Fprintf(r.out, "\n  Jitter Ratio (remainder/divisible): %.2fx\n", s.Ratio)
	switch s.Status {
	case verdict.StatusSupported:
		fmt.Fprintf(r.out, "  SUCCESS: Remainder cases show significantly higher jitter!\n")
	default:
		fmt.Fprintf(r.out, "  NEEDS TUNING: Jitter difference not significant enough\n")
	}
}
