package exporter

import (
	"fmt"

	"fftcli/internal/config"
	"fftcli/pkg/contracts/domain"
)

// ReportExporter renders finalized report tables to CSV files in the
// reports directory.
type ReportExporter struct {
	csvWriter *CSVWriter
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{csvWriter: NewCSVWriter(paths)}
}

// ExportLevel writes one geography level's report table to its CSV
// file and returns the relative filename.
func (e *ReportExporter) ExportLevel(rt *domain.ReportTable) (string, error) {
	headers := levelHeaders(rt.Level)

	records := make([][]string, 0, len(rt.Rows))
	for _, row := range rt.Rows {
		records = append(records, levelRecord(rt.Level, row))
	}

	name := reportFileName(rt.Service, rt.Period, rt.Level.String(), "csv")
	if err := e.csvWriter.WriteSimpleCSV(name, headers, records); err != nil {
		return "", fmt.Errorf("failed to export %s report: %w", rt.Level, err)
	}
	return name, nil
}

// ExportNational writes the national Total / NHS / Independent split
// to its CSV file and returns the relative filename.
func (e *ReportExporter) ExportNational(split *domain.ProviderSplit, service domain.ServiceType, period string) (string, error) {
	headers := []string{
		domain.ColSubmitterType, "Organisation Count",
		domain.ColTotalResponses, domain.ColTotalEligible,
		domain.ColVeryGood, domain.ColGood, domain.ColNeither,
		domain.ColPoor, domain.ColVeryPoor, domain.ColDontKnow,
		domain.ColPctPositive, domain.ColPctNegative,
	}

	records := make([][]string, 0, len(split.Rows))
	for _, row := range split.Rows {
		records = append(records, []string{
			string(row.SubmitterType),
			formatInt(split.OrgCounts[row.SubmitterType]),
			formatInt(row.TotalResponses),
			formatInt(row.TotalEligible),
			formatInt(row.Counts.VeryGood),
			formatInt(row.Counts.Good),
			formatInt(row.Counts.Neither),
			formatInt(row.Counts.Poor),
			formatInt(row.Counts.VeryPoor),
			formatInt(row.Counts.DontKnow),
			formatFloat(row.PctPositive),
			formatFloat(row.PctNegative),
		})
	}

	name := reportFileName(service, period, "national", "csv")
	if err := e.csvWriter.WriteSimpleCSV(name, headers, records); err != nil {
		return "", fmt.Errorf("failed to export national report: %w", err)
	}
	return name, nil
}

// codeColumns returns the organisational code columns carried at a
// level, outermost first.
func codeColumns(level domain.Level) []string {
	var cols []string
	for _, l := range domain.Levels() {
		cols = append(cols, l.CodeColumn())
		if l == level {
			break
		}
	}
	return cols
}

func levelHeaders(level domain.Level) []string {
	headers := codeColumns(level)
	headers = append(headers, domain.ColOrgName,
		domain.ColTotalResponses, domain.ColTotalEligible,
		domain.ColVeryGood, domain.ColGood, domain.ColNeither,
		domain.ColPoor, domain.ColVeryPoor, domain.ColDontKnow,
		domain.ColPctPositive, domain.ColPctNegative,
		"Rank", "First Level Suppression", "Second Level Suppression",
		"Cascade Suppression", "Suppression Required")
	return headers
}

func levelRecord(level domain.Level, row domain.ReportRow) []string {
	codes := map[string]string{
		domain.ColICBCode:   row.ICBCode,
		domain.ColTrustCode: row.TrustCode,
		domain.ColSiteCode:  row.SiteCode,
		domain.ColWardCode:  row.WardCode,
	}

	var record []string
	for _, col := range codeColumns(level) {
		record = append(record, codes[col])
	}
	record = append(record, row.OrgName,
		formatInt(row.TotalResponses),
		formatInt(row.TotalEligible),
		row.VeryGood.String(),
		row.Good.String(),
		row.Neither.String(),
		row.Poor.String(),
		row.VeryPoor.String(),
		row.DontKnow.String(),
		row.PctPositive.String(),
		row.PctNegative.String(),
		formatInt(row.Rank),
		formatInt(row.FirstLevel),
		formatInt(row.SecondLevel),
		formatInt(row.Cascade),
		formatInt(row.SuppressionRequired))
	return record
}
