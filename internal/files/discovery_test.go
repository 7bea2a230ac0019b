package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fftcli/internal/config"
	"fftcli/pkg/contracts/domain"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func inpatientCfg(t *testing.T) config.ServiceTypeConfig {
	t.Helper()
	cfg, err := config.ServiceConfig(domain.ServiceInpatient)
	require.NoError(t, err)
	return cfg
}

func TestFindExtracts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "FFT_Inpatient_202606.xlsx")
	touch(t, dir, "FFT_Inpatient_202607.xlsx")
	touch(t, dir, "FFT_AE_202607.xlsx")
	touch(t, dir, "notes.txt")
	touch(t, dir, "~$FFT_Inpatient_202607.xlsx")

	d := NewDiscovery(dir)
	found, err := d.FindExtracts(".", inpatientCfg(t))
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "FFT_Inpatient_202606.xlsx", found[0].Name)
	assert.Equal(t, "2026-06", found[0].Period)
	assert.Equal(t, "FFT_Inpatient_202607.xlsx", found[1].Name)
	assert.Equal(t, "2026-07", found[1].Period)
	assert.Equal(t, domain.ServiceInpatient, found[1].Service)
}

func TestFindExtracts_AbsoluteDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "fft_inpatient_202607.XLSX")

	// base path points elsewhere; the absolute dir wins
	d := NewDiscovery(t.TempDir())
	found, err := d.FindExtracts(dir, inpatientCfg(t))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2026-07", found[0].Period)
}

func TestFindLatestExtract(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "FFT_Inpatient_202605.xlsx")
	touch(t, dir, "FFT_Inpatient_202607.xlsx")
	touch(t, dir, "FFT_Inpatient_202606.xlsx")

	d := NewDiscovery(dir)
	latest, ok, err := d.FindLatestExtract(".", inpatientCfg(t))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "FFT_Inpatient_202607.xlsx", latest.Name)
}

func TestFindLatestExtract_NoneFound(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, ok, err := d.FindLatestExtract(".", inpatientCfg(t))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindLatestExtracts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "FFT_Inpatient_202607.xlsx")
	touch(t, dir, "FFT_AE_202607.xlsx")

	d := NewDiscovery(dir)
	latest, err := d.FindLatestExtracts(".")
	require.NoError(t, err)

	// only the streams with a file this month are present
	require.Len(t, latest, 2)
	assert.Contains(t, latest, domain.ServiceInpatient)
	assert.Contains(t, latest, domain.ServiceAE)
	assert.NotContains(t, latest, domain.ServiceMaternity)
}

func TestFindExtracts_MissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindExtracts("absent", inpatientCfg(t))
	require.Error(t, err)
}

func TestPeriodFromName(t *testing.T) {
	assert.Equal(t, "2026-07", periodFromName("FFT_Inpatient_202607.xlsx"))
	assert.Equal(t, "2025-12", periodFromName("FFT_AE_202512_final.xlsx"))
	assert.Equal(t, "", periodFromName("FFT_Inpatient.xlsx"))
}
