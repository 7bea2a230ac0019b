package exporter

import (
	"fmt"
	"strings"

	"fftcli/pkg/contracts/domain"
)

// formatFloat formats a percentage value for CSV output with exactly 4
// decimal places, matching how the published tables present fractions.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// reportFileName builds the per-level report filename, e.g.
// FFT_inpatient_2026-07_ward.csv.
func reportFileName(service domain.ServiceType, period string, suffix, ext string) string {
	return fmt.Sprintf("FFT_%s_%s_%s.%s", service, period, strings.ToLower(suffix), ext)
}
