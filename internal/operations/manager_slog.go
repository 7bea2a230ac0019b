package operations

import (
	"context"
	"log/slog"
	"time"
)

// logRunStart logs the start of a run execution
func (m *Manager) logRunStart(ctx context.Context, runID string, req RunRequest) {
	slog.InfoContext(ctx, "run_start",
		slog.String("run_id", runID),
		slog.Any("services", req.Services))
}

// logRunComplete logs the completion of a run execution
func (m *Manager) logRunComplete(ctx context.Context, runID string, duration time.Duration, status RunStatus) {
	slog.InfoContext(ctx, "run_complete",
		slog.String("run_id", runID),
		slog.String("status", string(status)),
		slog.Duration("duration", duration))
}

// logRunError logs a run error
func (m *Manager) logRunError(ctx context.Context, runID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	slog.ErrorContext(ctx, "run_error",
		slog.String("run_id", runID),
		slog.String("error", errorMsg))
}

// logStepStart logs the start of a step execution
func (m *Manager) logStepStart(ctx context.Context, runID, stepID string) {
	slog.InfoContext(ctx, "step_start",
		slog.String("run_id", runID),
		slog.String("step", stepID))
}

// logStepComplete logs the completion of a step execution
func (m *Manager) logStepComplete(ctx context.Context, runID, stepID string, duration time.Duration) {
	slog.InfoContext(ctx, "step_complete",
		slog.String("run_id", runID),
		slog.String("step", stepID),
		slog.Duration("duration", duration))
}

// logStepError logs a step error against one survey stream
func (m *Manager) logStepError(ctx context.Context, runID, stepID, service string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	slog.ErrorContext(ctx, "step_error",
		slog.String("run_id", runID),
		slog.String("step", stepID),
		slog.String("service", service),
		slog.String("error", errorMsg))
}
