package operations

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fftcli/internal/config"
	"fftcli/internal/files"
)

// Manager orchestrates run execution and tracks run state in memory.
type Manager struct {
	pipeline  *Pipeline
	discovery *files.Discovery
	paths     *config.Paths
	hub       WebSocketHub

	mu   sync.RWMutex
	runs map[string]*RunState
}

// NewManager creates a new run manager with dependency injection. The
// hub may be nil when nothing listens for progress.
func NewManager(pipeline *Pipeline, discovery *files.Discovery, paths *config.Paths, hub WebSocketHub) *Manager {
	return &Manager{
		pipeline:  pipeline,
		discovery: discovery,
		paths:     paths,
		hub:       hub,
		runs:      make(map[string]*RunState),
	}
}

// phase is one pipeline step applied to a single stream.
type phase struct {
	stepID string
	fn     func(ctx context.Context, a *streamArtifacts) error
}

// Execute runs a disclosure-control batch. Streams fail independently;
// the returned response reports failed when any stream produced no
// output. The returned error covers only failures to execute the run
// at all.
func (m *Manager) Execute(ctx context.Context, req RunRequest) (*RunResponse, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	state := NewRunState(req.ID)
	m.storeRun(state)

	state.Start()
	m.logRunStart(ctx, req.ID, req)
	m.broadcast(EventTypeRunStatus, "", string(RunStatusRunning), map[string]interface{}{"run_id": req.ID})

	artifacts, err := m.discover(ctx, state, req)
	if err != nil {
		state.Fail(err)
		m.logRunError(ctx, req.ID, err)
		m.broadcast(EventTypeRunError, StepIDDiscover, string(RunStatusFailed), map[string]interface{}{
			"run_id": req.ID,
			"error":  err.Error(),
		})
		return state.Response(), err
	}

	phases := []phase{
		{StepIDParse, func(_ context.Context, a *streamArtifacts) error { return m.pipeline.Parse(a) }},
		{StepIDAggregate, func(_ context.Context, a *streamArtifacts) error { return m.pipeline.Aggregate(a) }},
		{StepIDSuppress, func(ctx context.Context, a *streamArtifacts) error { return m.pipeline.Suppress(ctx, a) }},
		{StepIDRedact, func(_ context.Context, a *streamArtifacts) error { return m.pipeline.Redact(a) }},
		{StepIDExport, func(_ context.Context, a *streamArtifacts) error { return m.pipeline.Export(a) }},
	}

	for _, p := range phases {
		m.runPhase(ctx, state, p, artifacts)
	}

	m.finish(ctx, state)
	return state.Response(), nil
}

// discover locates the extracts the run will process and records a
// failed result for every explicitly requested stream with no extract.
func (m *Manager) discover(ctx context.Context, state *RunState, req RunRequest) ([]*streamArtifacts, error) {
	step := state.Step(StepIDDiscover)
	step.Start()
	m.logStepStart(ctx, state.ID, StepIDDiscover)
	m.broadcast(EventTypeRunProgress, StepIDDiscover, string(StepStatusActive), nil)

	latest, err := m.discovery.FindLatestExtracts(m.paths.ExtractsDir)
	if err != nil {
		step.Fail(err)
		return nil, err
	}

	requested := req.Services
	if len(requested) == 0 {
		for svc := range latest {
			requested = append(requested, svc)
		}
		sort.Slice(requested, func(i, j int) bool { return requested[i] < requested[j] })
	}

	var artifacts []*streamArtifacts
	for _, svc := range requested {
		extract, ok := latest[svc]
		if !ok {
			state.SetServiceResult(&ServiceResult{
				Service: svc,
				Error:   "no extract found for stream",
			})
			continue
		}

		result := &ServiceResult{
			Service:     svc,
			Period:      extract.Period,
			ExtractFile: extract.Name,
		}
		state.SetServiceResult(result)
		artifacts = append(artifacts, &streamArtifacts{extract: extract, result: result})
	}

	step.Complete(fmt.Sprintf("%d extracts found", len(artifacts)))
	m.logStepComplete(ctx, state.ID, StepIDDiscover, step.Duration())
	return artifacts, nil
}

// runPhase applies one pipeline step to every surviving stream. A
// stream that errors is marked failed and excluded from later phases;
// the rest of the batch carries on.
func (m *Manager) runPhase(ctx context.Context, state *RunState, p phase, artifacts []*streamArtifacts) {
	step := state.Step(p.stepID)

	survivors := 0
	for _, a := range artifacts {
		if !a.result.Failed() {
			survivors++
		}
	}
	if survivors == 0 {
		step.Skip("no surviving streams")
		return
	}

	step.Start()
	m.logStepStart(ctx, state.ID, p.stepID)
	m.broadcast(EventTypeRunProgress, p.stepID, string(StepStatusActive), nil)

	succeeded := 0
	for _, a := range artifacts {
		if a.result.Failed() {
			continue
		}
		if err := p.fn(ctx, a); err != nil {
			a.result.Error = err.Error()
			m.logStepError(ctx, state.ID, p.stepID, string(a.extract.Service), err)
			continue
		}
		succeeded++
	}

	if succeeded == 0 {
		step.Fail(fmt.Errorf("all %d streams failed", survivors))
		return
	}
	step.Complete(fmt.Sprintf("%d of %d streams", succeeded, survivors))
	m.logStepComplete(ctx, state.ID, p.stepID, step.Duration())
}

// finish settles the run status from the per-stream outcomes.
func (m *Manager) finish(ctx context.Context, state *RunState) {
	failed := state.FailedServices()
	if len(failed) > 0 {
		err := fmt.Errorf("%d of %d streams failed", len(failed), len(state.Response().Services))
		state.Fail(err)
		m.logRunError(ctx, state.ID, err)
		m.broadcast(EventTypeRunError, "", string(RunStatusFailed), map[string]interface{}{
			"run_id":          state.ID,
			"failed_services": failed,
		})
	} else {
		state.Complete()
		m.broadcast(EventTypeRunComplete, "", string(RunStatusCompleted), map[string]interface{}{"run_id": state.ID})
	}
	m.logRunComplete(ctx, state.ID, state.Duration(), state.CurrentStatus())
}

// GetRun returns the response snapshot of a run by ID.
func (m *Manager) GetRun(id string) (*RunResponse, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.runs[id]
	if !ok {
		return nil, false
	}
	return state.Response(), true
}

// ListRuns returns snapshots of every known run, newest first.
func (m *Manager) ListRuns() []*RunResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]*RunState, 0, len(m.runs))
	for _, s := range m.runs {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].StartTime.After(states[j].StartTime)
	})

	responses := make([]*RunResponse, 0, len(states))
	for _, s := range states {
		responses = append(responses, s.Response())
	}
	return responses
}

func (m *Manager) storeRun(state *RunState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[state.ID] = state
}

func (m *Manager) broadcast(eventType, step, status string, metadata interface{}) {
	if m.hub == nil {
		return
	}
	m.hub.BroadcastUpdate(eventType, step, status, metadata)
}
