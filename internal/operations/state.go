package operations

import (
	"sync"
	"time"

	"fftcli/pkg/contracts/domain"
)

// RunStatus represents the overall run status enum
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// StepStatus represents the current status of a step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState represents the runtime state of a step
type StepState struct {
	mu        sync.RWMutex
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// NewStepState creates a new step state with default values
func NewStepState(id string) *StepState {
	return &StepState{
		ID:     id,
		Name:   StepName(id),
		Status: StepStatusPending,
	}
}

// Start marks the step as active and sets the start time
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the step as completed and sets the end time
func (s *StepState) Complete(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
	s.Message = message
}

// Fail marks the step as failed with the given error
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	if err != nil {
		s.Error = err.Error()
	}
}

// Skip marks the step as skipped with the given reason
func (s *StepState) Skip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusSkipped
	s.Message = reason
}

// Duration returns the duration of the step execution
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// CurrentStatus returns the step status under the lock.
func (s *StepState) CurrentStatus() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// RunState represents the complete state of one run execution
type RunState struct {
	mu sync.RWMutex

	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Steps    map[string]*StepState                 `json:"steps"`
	Services map[domain.ServiceType]*ServiceResult `json:"services"`

	Error error `json:"error,omitempty"`
}

// NewRunState creates a new run state with every pipeline step pending.
func NewRunState(id string) *RunState {
	steps := make(map[string]*StepState, len(StepOrder()))
	for _, stepID := range StepOrder() {
		steps[stepID] = NewStepState(stepID)
	}
	return &RunState{
		ID:        id,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Steps:     steps,
		Services:  make(map[domain.ServiceType]*ServiceResult),
	}
}

// Start marks the run as running
func (r *RunState) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = RunStatusRunning
	r.StartTime = time.Now()
}

// Complete marks the run as completed
func (r *RunState) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (r *RunState) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusFailed
	r.Error = err
}

// Cancel marks the run as cancelled
func (r *RunState) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusCancelled
}

// Step returns the state of a specific step
func (r *RunState) Step(stepID string) *StepState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Steps[stepID]
}

// SetServiceResult records the outcome of one survey stream
func (r *RunState) SetServiceResult(result *ServiceResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Services[result.Service] = result
}

// FailedServices returns the streams that produced no output
func (r *RunState) FailedServices() []domain.ServiceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var failed []domain.ServiceType
	for svc, result := range r.Services {
		if result.Failed() {
			failed = append(failed, svc)
		}
	}
	return failed
}

// Duration returns the duration of the run execution
func (r *RunState) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}

// CurrentStatus returns the run status under the lock.
func (r *RunState) CurrentStatus() RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Status
}

// Response builds the immutable response snapshot of the run.
func (r *RunState) Response() *RunResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resp := &RunResponse{
		ID:       r.ID,
		Status:   r.Status,
		Steps:    make(map[string]*StepState, len(r.Steps)),
		Services: make(map[domain.ServiceType]*ServiceResult, len(r.Services)),
	}
	if r.EndTime != nil {
		resp.Duration = r.EndTime.Sub(r.StartTime)
	} else {
		resp.Duration = time.Since(r.StartTime)
	}
	for k, v := range r.Steps {
		resp.Steps[k] = v
	}
	for k, v := range r.Services {
		resp.Services[k] = v
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}
	return resp
}
