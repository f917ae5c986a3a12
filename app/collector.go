package app

import (
	"context"

	"divlab/domain/experiment"
	"divlab/ports"
)

// ResultCollector retrieves the most recently produced result from the
// collaborator's monotonically appended history. It cannot tell a fresh
// result from a stale one; correctness rests on the collaborator running
// one experiment at a time.
type ResultCollector struct {
	collaborator ports.CollaboratorPort
}

// NewResultCollector creates a collector over the collaborator port.
func NewResultCollector(collaborator ports.CollaboratorPort) *ResultCollector {
	return &ResultCollector{collaborator: collaborator}
}

// Latest returns the last element of the result history, or ErrNoResults
// when the history is empty.
func (c *ResultCollector) Latest(ctx context.Context) (*experiment.Result, error) {
	results, err := c.collaborator.Results(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, experiment.ErrNoResults
	}
	last := results[len(results)-1]
	return &last, nil
}
