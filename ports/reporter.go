package ports

import (
	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

// ReporterPort is the output sink the orchestration emits to. Implementations
// render for a human operator; the pipeline itself never writes to the console
// directly, so it can be tested against a recording sink.
type ReporterPort interface {
	// BatchStarted announces the battery run.
	BatchStarted(cases int)

	// CaseStarted opens a per-case block before submission.
	CaseStarted(tc experiment.TestCase)

	// CaseAccepted reports the collaborator's acknowledgement message.
	CaseAccepted(ack *experiment.StartAck)

	// CaseWarning reports a non-fatal condition (settlement timeout).
	CaseWarning(tc experiment.TestCase, msg string)

	// CaseFailed reports a fatal per-case condition; the case is skipped.
	CaseFailed(tc experiment.TestCase, stage string, err error)

	// CaseResult renders all collected result fields.
	CaseResult(tc experiment.TestCase, res *experiment.Result)

	// Summary renders the cross-case aggregate and verdict.
	Summary(s *verdict.Summary)
}
