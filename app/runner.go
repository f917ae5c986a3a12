package app

import (
	"context"

	"divlab/domain/experiment"
	"divlab/internal"
	"divlab/ports"
)

// CaseRunner executes one experiment lifecycle: submit, wait for settlement,
// collect the latest result, report. Submission and collection failures end
// the case; a settlement timeout is a warning and the pipeline continues,
// since a usable result may exist anyway.
type CaseRunner struct {
	collaborator ports.CollaboratorPort
	waiter       *SettlementWaiter
	collector    *ResultCollector
	reporter     ports.ReporterPort
	salinity     float64
	logger       *internal.Logger
}

// NewCaseRunner composes the per-case pipeline.
func NewCaseRunner(collaborator ports.CollaboratorPort, waiter *SettlementWaiter, collector *ResultCollector, reporter ports.ReporterPort, salinity float64, logger *internal.Logger) *CaseRunner {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CaseRunner{
		collaborator: collaborator,
		waiter:       waiter,
		collector:    collector,
		reporter:     reporter,
		salinity:     salinity,
		logger:       logger,
	}
}

// Run drives one test case through submit, wait, collect, report. It returns
// nil when the case failed; failures are reported, never propagated, so the
// battery continues. No retries at any step.
func (r *CaseRunner) Run(ctx context.Context, tc experiment.TestCase) *experiment.RunRecord {
	r.reporter.CaseStarted(tc)

	req := experiment.Request{
		Dividend: tc.Dividend,
		Divisor:  tc.Divisor,
		Salinity: r.salinity,
	}

	ack, err := r.collaborator.Start(ctx, req)
	if err != nil {
		r.logger.Error("case %g/%g: start failed: %v", tc.Dividend, tc.Divisor, err)
		r.reporter.CaseFailed(tc, "start", err)
		return nil
	}
	r.reporter.CaseAccepted(ack)

	if !r.waiter.Wait(ctx) {
		r.logger.Warn("case %g/%g: settlement budget exceeded", tc.Dividend, tc.Divisor)
		r.reporter.CaseWarning(tc, "Experiment did not settle in time")
	}

	res, err := r.collector.Latest(ctx)
	if err != nil {
		r.logger.Error("case %g/%g: collection failed: %v", tc.Dividend, tc.Divisor, err)
		r.reporter.CaseFailed(tc, "collect", err)
		return nil
	}
	r.reporter.CaseResult(tc, res)

	record := experiment.NewRunRecord(tc, res)
	return &record
}
