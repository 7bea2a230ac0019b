package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "fftcli/internal/errors"
	"fftcli/internal/infrastructure"
	"fftcli/internal/operations"
	v1 "fftcli/pkg/contracts/api/v1"
	"fftcli/pkg/contracts/domain"
)

// RunsHandler handles run-related HTTP requests
type RunsHandler struct {
	service  RunService
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
	validate *validator.Validate

	// runTimeout bounds background run execution
	runTimeout time.Duration
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(service RunService, logger *slog.Logger, runTimeout time.Duration) *RunsHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RunsHandler{
		service:    service,
		logger:     logger.With(slog.String("handler", "runs")),
		validate:   validator.New(),
		runTimeout: runTimeout,
	}
}

// SetMetrics sets the business metrics for the handler
func (h *RunsHandler) SetMetrics(metrics *infrastructure.BusinessMetrics) {
	h.metrics = metrics
}

// Routes mounts the run endpoints.
func (h *RunsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.StartRun)
	r.Get("/", h.ListRuns)
	r.Get("/{id}", h.GetRun)
	return r
}

// StartRun launches a run in the background and returns 202 with the
// run ID for polling.
func (h *RunsHandler) StartRun(w http.ResponseWriter, r *http.Request) {
	data := &v1.RunStartRequest{}
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, data); err != nil {
			apperrors.WriteError(w, apperrors.InvalidRequestWithError(err))
			return
		}
		if err := h.validate.Struct(data); err != nil {
			apperrors.WriteError(w, apperrors.InvalidRequestWithError(err))
			return
		}
	}

	services := make([]domain.ServiceType, 0, len(data.Services))
	for _, svc := range data.Services {
		services = append(services, domain.ServiceType(svc))
	}

	runID := uuid.New().String()
	req := operations.RunRequest{ID: runID, Services: services}

	if h.metrics != nil {
		h.metrics.RunExecutionsTotal.Add(r.Context(), 1)
	}

	// Detach from the request context; the run outlives the POST.
	traceID := infrastructure.GetTraceID(r.Context())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.runTimeout)
		defer cancel()
		if traceID != "" {
			ctx = infrastructure.WithTraceID(ctx, traceID)
		}

		start := time.Now()
		if _, err := h.service.Execute(ctx, req); err != nil {
			h.logger.ErrorContext(ctx, "run execution failed",
				slog.String("run_id", runID),
				slog.String("error", err.Error()))
			if h.metrics != nil {
				h.metrics.RunErrors.Add(ctx, 1)
			}
		}
		if h.metrics != nil {
			h.metrics.RunExecutionDuration.Record(ctx, time.Since(start).Seconds())
		}
	}()

	h.logger.InfoContext(r.Context(), "run accepted",
		slog.String("run_id", runID),
		slog.Any("services", data.Services))

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, v1.RunAcceptedResponse{
		ID:     runID,
		Status: string(operations.RunStatusPending),
	})
}

// GetRun returns the current state of one run.
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, ok := h.service.GetRun(id)
	if !ok {
		apperrors.WriteError(w, apperrors.ErrRunNotFound)
		return
	}
	render.JSON(w, r, resp)
}

// ListRuns returns every known run, newest first.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"runs": h.service.ListRuns(),
	})
}
