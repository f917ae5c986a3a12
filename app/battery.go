package app

import (
	"context"
	"time"

	"divlab/domain/experiment"
	"divlab/domain/verdict"
	"divlab/internal"
	"divlab/ports"
)

// BatteryService drives a fixed fixture list through the case runner,
// strictly sequentially, and aggregates the surviving records into the
// jitter summary. One lifecycle completes before the next begins; a fixed
// pause separates cases so the collaborator's settlement bookkeeping is
// never raced.
type BatteryService struct {
	runner     *CaseRunner
	aggregator ports.AggregatorPort
	reporter   ports.ReporterPort
	casePause  time.Duration
	logger     *internal.Logger
}

// BatteryResult is the in-process outcome of one battery run.
type BatteryResult struct {
	BatchID experiment.BatchID
	Records []experiment.RunRecord
	Summary *verdict.Summary
}

// NewBatteryService creates the battery orchestrator.
func NewBatteryService(runner *CaseRunner, aggregator ports.AggregatorPort, reporter ports.ReporterPort, casePause time.Duration, logger *internal.Logger) *BatteryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &BatteryService{
		runner:     runner,
		aggregator: aggregator,
		reporter:   reporter,
		casePause:  casePause,
		logger:     logger,
	}
}

// Run executes every fixture in order, accumulating records in execution
// order. Case failures shrink the aggregate sample but never abort the
// batch. The summary is reported after the last case.
func (s *BatteryService) Run(ctx context.Context, cases []experiment.TestCase) *BatteryResult {
	batchID := experiment.BatchID(experiment.NewID())
	s.logger.Info("battery %s: running %d cases", batchID, len(cases))
	s.reporter.BatchStarted(len(cases))

	records := make([]experiment.RunRecord, 0, len(cases))
loop:
	for i, tc := range cases {
		if record := s.runner.Run(ctx, tc); record != nil {
			records = append(records, *record)
		}

		if i == len(cases)-1 {
			break
		}
		select {
		case <-ctx.Done():
			s.logger.Warn("battery %s: cancelled after %d cases", batchID, i+1)
			break loop
		case <-time.After(s.casePause):
		}
	}

	summary := s.aggregator.Summarize(records)
	s.reporter.Summary(summary)
	s.logger.Info("battery %s: %d/%d cases collected, verdict %s",
		batchID, len(records), len(cases), summary.Status)

	return &BatteryResult{
		BatchID: batchID,
		Records: records,
		Summary: summary,
	}
}
