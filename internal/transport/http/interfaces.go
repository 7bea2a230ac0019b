package http

import (
	"context"

	"fftcli/internal/operations"
)

// RunService defines the run manager operations the handlers need.
type RunService interface {
	Execute(ctx context.Context, req operations.RunRequest) (*operations.RunResponse, error)
	GetRun(id string) (*operations.RunResponse, bool)
	ListRuns() []*operations.RunResponse
}
