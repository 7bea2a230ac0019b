package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fftcli/internal/operations"
	"fftcli/pkg/contracts/domain"
)

// fakeRunService records Execute calls and serves canned runs.
type fakeRunService struct {
	mu       sync.Mutex
	executed []operations.RunRequest
	runs     map[string]*operations.RunResponse
}

func newFakeRunService() *fakeRunService {
	return &fakeRunService{runs: make(map[string]*operations.RunResponse)}
}

func (f *fakeRunService) Execute(ctx context.Context, req operations.RunRequest) (*operations.RunResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, req)
	resp := &operations.RunResponse{ID: req.ID, Status: operations.RunStatusCompleted}
	f.runs[req.ID] = resp
	return resp, nil
}

func (f *fakeRunService) GetRun(id string) (*operations.RunResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp, ok := f.runs[id]
	return resp, ok
}

func (f *fakeRunService) ListRuns() []*operations.RunResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*operations.RunResponse, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, r)
	}
	return out
}

func (f *fakeRunService) waitForExecute(t *testing.T) operations.RunRequest {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		f.mu.Lock()
		if len(f.executed) > 0 {
			req := f.executed[0]
			f.mu.Unlock()
			return req
		}
		f.mu.Unlock()
		if time.Now().After(deadline) {
			t.Fatal("Execute never called")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func newTestRouter(svc RunService) chi.Router {
	r := chi.NewRouter()
	r.Mount("/api/runs", NewRunsHandler(svc, nil, time.Minute).Routes())
	return r
}

func TestStartRun(t *testing.T) {
	svc := newFakeRunService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/runs",
		strings.NewReader(`{"services":["inpatient","ae"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, string(operations.RunStatusPending), body["status"])

	executed := svc.waitForExecute(t)
	assert.Equal(t, body["id"], executed.ID)
	assert.Equal(t, []domain.ServiceType{domain.ServiceInpatient, domain.ServiceAE}, executed.Services)
}

func TestStartRun_EmptyBodyRunsEverything(t *testing.T) {
	svc := newFakeRunService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	executed := svc.waitForExecute(t)
	assert.Empty(t, executed.Services)
}

func TestStartRun_UnknownService(t *testing.T) {
	svc := newFakeRunService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/runs",
		strings.NewReader(`{"services":["outpatient"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.executed)
}

func TestGetRun(t *testing.T) {
	svc := newFakeRunService()
	svc.runs["run-1"] = &operations.RunResponse{ID: "run-1", Status: operations.RunStatusFailed}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/run-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp operations.RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, operations.RunStatusFailed, resp.Status)
}

func TestGetRun_NotFound(t *testing.T) {
	router := newTestRouter(newFakeRunService())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/absent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RUN_NOT_FOUND")
}

func TestListRuns(t *testing.T) {
	svc := newFakeRunService()
	svc.runs["a"] = &operations.RunResponse{ID: "a"}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Runs []*operations.RunResponse `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Runs, 1)
}
