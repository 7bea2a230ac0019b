package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fftcli/internal/config"
	"fftcli/pkg/contracts/domain"
)

// ExcelExporter renders the full monthly output as one workbook with a
// sheet per geography level plus the national provider split.
type ExcelExporter struct {
	paths *config.Paths
}

// NewExcelExporter creates a new workbook exporter
func NewExcelExporter(paths *config.Paths) *ExcelExporter {
	return &ExcelExporter{paths: paths}
}

// ExportWorkbook writes the monthly report workbook and returns its
// relative filename. Levels absent from the reports map are skipped.
func (e *ExcelExporter) ExportWorkbook(reports map[domain.Level]*domain.ReportTable, split *domain.ProviderSplit, service domain.ServiceType, period string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for _, level := range domain.Levels() {
		rt, ok := reports[level]
		if !ok {
			continue
		}
		if err := e.writeLevelSheet(f, headerStyle, rt); err != nil {
			return "", err
		}
	}

	if split != nil {
		if err := e.writeNationalSheet(f, headerStyle, split); err != nil {
			return "", err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	name := reportFileName(service, period, "report", "xlsx")
	fullPath := e.paths.GetReportPath(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("wrote report workbook",
		slog.String("path", fullPath),
		slog.String("service", string(service)),
		slog.String("period", period))
	return name, nil
}

func (e *ExcelExporter) writeLevelSheet(f *excelize.File, headerStyle int, rt *domain.ReportTable) error {
	sheet := rt.Level.String()
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := writeRow(f, sheet, 1, toInterfaces(levelHeaders(rt.Level))); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, headerStyle, len(levelHeaders(rt.Level))); err != nil {
		return err
	}

	for i, row := range rt.Rows {
		if err := writeRow(f, sheet, i+2, toInterfaces(levelRecord(rt.Level, row))); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeNationalSheet(f *excelize.File, headerStyle int, split *domain.ProviderSplit) error {
	const sheet = "National"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{
		domain.ColSubmitterType, "Organisation Count",
		domain.ColTotalResponses, domain.ColTotalEligible,
		domain.ColVeryGood, domain.ColGood, domain.ColNeither,
		domain.ColPoor, domain.ColVeryPoor, domain.ColDontKnow,
		domain.ColPctPositive, domain.ColPctNegative,
	}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}

	for i, row := range split.Rows {
		cells := []interface{}{
			string(row.SubmitterType),
			split.OrgCounts[row.SubmitterType],
			row.TotalResponses,
			row.TotalEligible,
			row.Counts.VeryGood,
			row.Counts.Good,
			row.Counts.Neither,
			row.Counts.Poor,
			row.Counts.VeryPoor,
			row.Counts.DontKnow,
			row.PctPositive,
			row.PctNegative,
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, style, width int) error {
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return fmt.Errorf("failed to address header of %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return nil
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
