package ports

import (
	"context"

	"divlab/domain/experiment"
)

// CollaboratorPort is the remote division-physics service as seen by the
// harness. Start submits an experiment; Status and Results are read-only and
// must not alter collaborator state. Results returns the full history,
// oldest first; an empty history is valid.
type CollaboratorPort interface {
	Start(ctx context.Context, req experiment.Request) (*experiment.StartAck, error)
	Status(ctx context.Context) (*experiment.Status, error)
	Results(ctx context.Context) ([]experiment.Result, error)
}
