// Package api contains the versioned API contract definitions for the
// disclosure-control service. Version v1 is the current stable API.
package api

// RunStartRequest asks the service to start a disclosure-control run.
// An empty services list runs every stream with an extract available
// this month.
type RunStartRequest struct {
	Services []string `json:"services,omitempty" validate:"omitempty,dive,oneof=inpatient ae maternity community ambulance"`
}

// RunAcceptedResponse acknowledges an accepted run request.
type RunAcceptedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
