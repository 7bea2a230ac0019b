package operations

import (
	"time"

	"fftcli/pkg/contracts/domain"
)

// Run step identifiers
const (
	StepIDDiscover  = "discover"
	StepIDParse     = "parse"
	StepIDAggregate = "aggregate"
	StepIDSuppress  = "suppress"
	StepIDRedact    = "redact"
	StepIDExport    = "export"
)

// Run step names
const (
	StepNameDiscover  = "Extract Discovery"
	StepNameParse     = "Extract Parsing"
	StepNameAggregate = "Hierarchy Aggregation"
	StepNameSuppress  = "Suppression Cascade"
	StepNameRedact    = "Value Redaction"
	StepNameExport    = "Report Export"
)

// WebSocket event types
const (
	EventTypeRunStatus   = "run:status"
	EventTypeRunProgress = "run:progress"
	EventTypeRunComplete = "run:complete"
	EventTypeRunError    = "run:error"
)

// StepOrder returns the pipeline steps in execution order.
func StepOrder() []string {
	return []string{
		StepIDDiscover, StepIDParse, StepIDAggregate,
		StepIDSuppress, StepIDRedact, StepIDExport,
	}
}

// StepName returns the human-readable name of a step.
func StepName(id string) string {
	switch id {
	case StepIDDiscover:
		return StepNameDiscover
	case StepIDParse:
		return StepNameParse
	case StepIDAggregate:
		return StepNameAggregate
	case StepIDSuppress:
		return StepNameSuppress
	case StepIDRedact:
		return StepNameRedact
	case StepIDExport:
		return StepNameExport
	default:
		return id
	}
}

// RunRequest asks for a disclosure-control run. An empty Services list
// means every stream with an extract available this month.
type RunRequest struct {
	ID       string               `json:"id,omitempty"`
	Services []domain.ServiceType `json:"services,omitempty"`
}

// RunResponse is the result of a run execution.
type RunResponse struct {
	ID       string                                 `json:"id"`
	Status   RunStatus                              `json:"status"`
	Duration time.Duration                          `json:"duration"`
	Steps    map[string]*StepState                  `json:"steps"`
	Services map[domain.ServiceType]*ServiceResult  `json:"services"`
	Error    string                                 `json:"error,omitempty"`
}

// ServiceResult records what one survey stream produced.
type ServiceResult struct {
	Service     domain.ServiceType   `json:"service"`
	Period      string               `json:"period"`
	ExtractFile string               `json:"extract_file"`
	ReportFiles []string             `json:"report_files,omitempty"`
	Workbook    string               `json:"workbook,omitempty"`
	RowCounts   map[domain.Level]int `json:"row_counts,omitempty"`
	Suppressed  map[domain.Level]int `json:"suppressed,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// Failed reports whether the stream produced no published output.
func (r *ServiceResult) Failed() bool {
	return r.Error != ""
}
