package operations

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fftcli/internal/config"
	"fftcli/internal/files"
	"fftcli/internal/suppression"
	"fftcli/pkg/contracts/domain"
)

// captureHub records broadcasts for assertion.
type captureHub struct {
	mu     sync.Mutex
	events []string
}

func (h *captureHub) BroadcastUpdate(eventType, step, status string, metadata interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, eventType)
}

func (h *captureHub) captured() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func newTestManager(t *testing.T) (*Manager, *config.Paths, *captureHub) {
	t.Helper()

	paths := &config.Paths{
		ExtractsDir: t.TempDir(),
		ReportsDir:  t.TempDir(),
	}

	engine, err := suppression.NewEngine(suppression.DefaultParams(), slog.Default())
	require.NoError(t, err)

	hub := &captureHub{}
	m := NewManager(NewPipeline(engine, paths), files.NewDiscovery(paths.ExtractsDir), paths, hub)
	return m, paths, hub
}

// writeInpatientExtract builds a small but complete ward extract with
// one ward under the threshold so the run exercises real suppression.
func writeInpatientExtract(t *testing.T, dir string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Inpatient")
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	rows := [][]interface{}{
		{"ICB_Code", "Trust_Code", "Site_Code", "Ward_Code", "Org_Name",
			"Total Responses", "Total Eligible",
			"Very Good", "Good", "Neither Good Nor Poor", "Poor", "Very Poor", "Dont Know"},
		{"QE1", "RX1", "S1", "W1", "Ward A", 10, 25, 6, 2, 1, 0, 1, 0},
		{"QE1", "RX1", "S1", "W2", "Ward B", 3, 10, 1, 1, 0, 0, 1, 0},
		{"QE1", "RX2", "S2", "W3", "Ward C", 20, 40, 12, 5, 1, 1, 1, 0},
		{"QE1", "ISX1", "S3", "W4", "Ward D", 15, 30, 10, 3, 1, 0, 1, 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Inpatient", cell, &row))
	}

	require.NoError(t, f.SaveAs(filepath.Join(dir, "FFT_Inpatient_202607.xlsx")))
}

func TestManagerExecute_FullRun(t *testing.T) {
	m, paths, hub := newTestManager(t)
	writeInpatientExtract(t, paths.ExtractsDir)

	resp, err := m.Execute(context.Background(), RunRequest{})
	require.NoError(t, err)
	require.Equal(t, RunStatusCompleted, resp.Status)

	for _, stepID := range StepOrder() {
		assert.Equal(t, StepStatusCompleted, resp.Steps[stepID].CurrentStatus(), "step %s", stepID)
	}

	result, ok := resp.Services[domain.ServiceInpatient]
	require.True(t, ok)
	assert.False(t, result.Failed())
	assert.Equal(t, "2026-07", result.Period)
	assert.Equal(t, "FFT_Inpatient_202607.xlsx", result.ExtractFile)

	// 4 level CSVs plus the national CSV, plus the workbook
	assert.Len(t, result.ReportFiles, 5)
	require.NotEmpty(t, result.Workbook)
	for _, name := range append(result.ReportFiles, result.Workbook) {
		_, err := os.Stat(filepath.Join(paths.ReportsDir, name))
		assert.NoError(t, err, "report file %s", name)
	}

	assert.Equal(t, 4, result.RowCounts[domain.LevelWard])
	assert.Equal(t, 3, result.RowCounts[domain.LevelTrust])
	assert.Equal(t, 1, result.RowCounts[domain.LevelICB])

	// W2 sits under the threshold, and the rank-2 ward sharing its
	// site is second-level suppressed alongside it
	assert.Equal(t, 2, result.Suppressed[domain.LevelWard])

	assert.Contains(t, hub.captured(), EventTypeRunComplete)
}

func TestManagerExecute_MissingRequestedStream(t *testing.T) {
	m, _, hub := newTestManager(t)

	resp, err := m.Execute(context.Background(), RunRequest{
		Services: []domain.ServiceType{domain.ServiceMaternity},
	})
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, resp.Status)

	result := resp.Services[domain.ServiceMaternity]
	require.NotNil(t, result)
	assert.True(t, result.Failed())

	// nothing to process, so every pipeline step after discovery skips
	assert.Equal(t, StepStatusCompleted, resp.Steps[StepIDDiscover].CurrentStatus())
	assert.Equal(t, StepStatusSkipped, resp.Steps[StepIDParse].CurrentStatus())
	assert.Equal(t, StepStatusSkipped, resp.Steps[StepIDExport].CurrentStatus())

	assert.Contains(t, hub.captured(), EventTypeRunError)
}

func TestManagerExecute_BadExtractFailsClosed(t *testing.T) {
	m, paths, _ := newTestManager(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(paths.ExtractsDir, "FFT_Inpatient_202607.xlsx"),
		[]byte("not a workbook"), 0o644))

	resp, err := m.Execute(context.Background(), RunRequest{})
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, resp.Status)

	result := resp.Services[domain.ServiceInpatient]
	require.NotNil(t, result)
	assert.True(t, result.Failed())
	assert.Empty(t, result.ReportFiles, "failed stream publishes nothing")

	assert.Equal(t, StepStatusFailed, resp.Steps[StepIDParse].CurrentStatus())
	assert.Equal(t, StepStatusSkipped, resp.Steps[StepIDSuppress].CurrentStatus())
}

func TestManagerExecute_OneStreamFailureDoesNotStopBatch(t *testing.T) {
	m, paths, _ := newTestManager(t)
	writeInpatientExtract(t, paths.ExtractsDir)
	require.NoError(t, os.WriteFile(
		filepath.Join(paths.ExtractsDir, "FFT_AE_202607.xlsx"),
		[]byte("not a workbook"), 0o644))

	resp, err := m.Execute(context.Background(), RunRequest{})
	require.NoError(t, err)

	// the batch fails overall but the good stream still publishes
	assert.Equal(t, RunStatusFailed, resp.Status)
	assert.True(t, resp.Services[domain.ServiceAE].Failed())

	inpatient := resp.Services[domain.ServiceInpatient]
	require.NotNil(t, inpatient)
	assert.False(t, inpatient.Failed())
	assert.Len(t, inpatient.ReportFiles, 5)
}

func TestManagerGetRun(t *testing.T) {
	m, paths, _ := newTestManager(t)
	writeInpatientExtract(t, paths.ExtractsDir)

	resp, err := m.Execute(context.Background(), RunRequest{ID: "run-42"})
	require.NoError(t, err)
	assert.Equal(t, "run-42", resp.ID)

	got, ok := m.GetRun("run-42")
	require.True(t, ok)
	assert.Equal(t, RunStatusCompleted, got.Status)

	_, ok = m.GetRun("absent")
	assert.False(t, ok)

	runs := m.ListRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, "run-42", runs[0].ID)
}
