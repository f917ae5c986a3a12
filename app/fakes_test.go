package app

import (
	"context"
	"fmt"
	"math"
	"sync"

	"divlab/domain/experiment"
	"divlab/domain/verdict"
)

// fakeCollaborator scripts the collaborator port for pipeline tests.
type fakeCollaborator struct {
	mu sync.Mutex

	startErr error
	// failStarts fails the first N Start calls, then succeeds.
	failStarts int
	startCalls int
	startAck   *experiment.StartAck

	// statusScript is consumed one entry per poll; when exhausted the last
	// entry repeats.
	statusScript []bool
	statusCalls  int
	resultsErr   error
	results      []experiment.Result

	// appendOnStart simulates the collaborator appending a result for each
	// accepted submission once polls begin.
	appendOnStart *experiment.Result

	// computeOnStart synthesizes a correct division result per submission,
	// with remainder cases jittering harder than clean ones.
	computeOnStart bool
}

func (f *fakeCollaborator) Start(ctx context.Context, req experiment.Request) (*experiment.StartAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return nil, f.startErr
	}
	if f.startCalls <= f.failStarts {
		return nil, fmt.Errorf("scripted start failure %d", f.startCalls)
	}
	if f.appendOnStart != nil {
		res := *f.appendOnStart
		res.Dividend = req.Dividend
		res.Divisor = req.Divisor
		f.results = append(f.results, res)
	}
	if f.computeOnStart {
		remainder := math.Mod(req.Dividend, req.Divisor)
		jitter := 0.05
		if remainder != 0 {
			jitter = 0.4 + 0.05*remainder
		}
		f.results = append(f.results, experiment.Result{
			Dividend:    req.Dividend,
			Divisor:     req.Divisor,
			Quotient:    math.Floor(req.Dividend / req.Divisor),
			Remainder:   remainder,
			IsDivisible: remainder == 0,
			PeakJitter:  jitter,
		})
	}
	if f.startAck != nil {
		return f.startAck, nil
	}
	return &experiment.StartAck{
		Message: fmt.Sprintf("accepted %g/%g", req.Dividend, req.Divisor),
	}, nil
}

func (f *fakeCollaborator) Status(ctx context.Context) (*experiment.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statusScript) == 0 {
		return &experiment.Status{Active: false}, nil
	}
	idx := f.statusCalls
	if idx >= len(f.statusScript) {
		idx = len(f.statusScript) - 1
	}
	f.statusCalls++
	return &experiment.Status{Active: f.statusScript[idx]}, nil
}

func (f *fakeCollaborator) Results(ctx context.Context) ([]experiment.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resultsErr != nil {
		return nil, f.resultsErr
	}
	out := make([]experiment.Result, len(f.results))
	copy(out, f.results)
	return out, nil
}

// reporterEvent records one emission to the reporter sink.
type reporterEvent struct {
	kind  string
	stage string
	msg   string
}

// recordingReporter captures the emission sequence so pipeline ordering can
// be asserted without parsing console text.
type recordingReporter struct {
	events  []reporterEvent
	summary *verdict.Summary
}

func (r *recordingReporter) BatchStarted(cases int) {
	r.events = append(r.events, reporterEvent{kind: "batch"})
}

func (r *recordingReporter) CaseStarted(tc experiment.TestCase) {
	r.events = append(r.events, reporterEvent{kind: "started"})
}

func (r *recordingReporter) CaseAccepted(ack *experiment.StartAck) {
	r.events = append(r.events, reporterEvent{kind: "accepted", msg: ack.Message})
}

func (r *recordingReporter) CaseWarning(tc experiment.TestCase, msg string) {
	r.events = append(r.events, reporterEvent{kind: "warning", msg: msg})
}

func (r *recordingReporter) CaseFailed(tc experiment.TestCase, stage string, err error) {
	r.events = append(r.events, reporterEvent{kind: "failed", stage: stage, msg: err.Error()})
}

func (r *recordingReporter) CaseResult(tc experiment.TestCase, res *experiment.Result) {
	r.events = append(r.events, reporterEvent{kind: "result"})
}

func (r *recordingReporter) Summary(s *verdict.Summary) {
	r.events = append(r.events, reporterEvent{kind: "summary"})
	r.summary = s
}

func (r *recordingReporter) kinds() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.kind
	}
	return out
}
