// Package events contains the event contract definitions for
// WebSocket communication with the run progress stream.
package events

import (
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Run lifecycle messages
	MessageTypeRunStatus   MessageType = "run:status"
	MessageTypeRunProgress MessageType = "run:progress"
	MessageTypeRunComplete MessageType = "run:complete"
	MessageTypeRunError    MessageType = "run:error"

	// Connection messages
	MessageTypeConnect    MessageType = "connect"
	MessageTypeDisconnect MessageType = "disconnect"
)

// RunUpdate is the message pushed for every run and step transition.
type RunUpdate struct {
	Type      string      `json:"type"`
	Step      string      `json:"step,omitempty"`
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Metadata  interface{} `json:"metadata,omitempty"`
}

// StepSnapshot represents the state of a single run step
type StepSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RunSnapshot is the full run state pushed on request or completion.
type RunSnapshot struct {
	RunID       string         `json:"run_id"`
	Status      string         `json:"status"`
	Steps       []StepSnapshot `json:"steps"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Error       string         `json:"error,omitempty"`
}
