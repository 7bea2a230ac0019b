package operations

import (
	"context"
	"fmt"

	"fftcli/internal/aggregation"
	"fftcli/internal/config"
	"fftcli/internal/dataprocessing"
	"fftcli/internal/exporter"
	"fftcli/internal/files"
	"fftcli/internal/suppression"
	"fftcli/pkg/contracts/domain"
)

// Pipeline holds the per-stream processing phases. Each phase is pure
// with respect to the stream artifacts, so the manager can drive all
// streams through one phase before moving to the next.
type Pipeline struct {
	engine  *suppression.Engine
	reports *exporter.ReportExporter
	excel   *exporter.ExcelExporter
}

// NewPipeline creates a pipeline around a configured suppression
// engine and the report output directory.
func NewPipeline(engine *suppression.Engine, paths *config.Paths) *Pipeline {
	return &Pipeline{
		engine:  engine,
		reports: exporter.NewReportExporter(paths),
		excel:   exporter.NewExcelExporter(paths),
	}
}

// streamArtifacts carries one survey stream through the run.
type streamArtifacts struct {
	extract files.ExtractFile
	ward    *domain.Table

	// tables holds the pre-suppression rollups per level; processed
	// holds the same tables with finalized suppression decisions.
	tables    map[domain.Level]*domain.Table
	processed map[domain.Level]*domain.Table

	split   *domain.ProviderSplit
	reports map[domain.Level]*domain.ReportTable

	result *ServiceResult
}

// Parse loads the stream's extract into a ward-level table.
func (p *Pipeline) Parse(a *streamArtifacts) error {
	svcCfg, err := config.ServiceConfig(a.extract.Service)
	if err != nil {
		return err
	}

	ward, err := dataprocessing.ParseExtract(a.extract.Path, svcCfg, a.extract.Period)
	if err != nil {
		return err
	}

	a.ward = ward
	a.result.RowCounts = map[domain.Level]int{domain.LevelWard: len(ward.Rows)}
	return nil
}

// Aggregate rolls the ward counts up the hierarchy and builds the
// national provider split from the trust-level rollup.
func (p *Pipeline) Aggregate(a *streamArtifacts) error {
	a.tables = map[domain.Level]*domain.Table{domain.LevelWard: a.ward}
	for _, level := range []domain.Level{domain.LevelSite, domain.LevelTrust, domain.LevelICB} {
		rolled, err := aggregation.Rollup(a.ward, level)
		if err != nil {
			return fmt.Errorf("rollup to %s: %w", level, err)
		}
		a.tables[level] = rolled
		a.result.RowCounts[level] = len(rolled.Rows)
	}

	split, err := aggregation.AggregateNational(a.tables[domain.LevelTrust])
	if err != nil {
		return fmt.Errorf("national aggregate: %w", err)
	}
	a.split = split
	return nil
}

// Suppress runs the top-down suppression cascade over every level.
func (p *Pipeline) Suppress(ctx context.Context, a *streamArtifacts) error {
	processed, err := p.engine.ProcessAll(ctx, a.tables)
	if err != nil {
		return err
	}
	a.processed = processed
	return nil
}

// Redact builds the publishable report tables and drops the values of
// every suppressed cell.
func (p *Pipeline) Redact(a *streamArtifacts) error {
	a.reports = make(map[domain.Level]*domain.ReportTable, len(a.processed))
	a.result.Suppressed = make(map[domain.Level]int, len(a.processed))

	for level, table := range a.processed {
		rt := suppression.Redact(suppression.BuildReport(table))
		a.reports[level] = rt

		suppressed := 0
		for _, row := range rt.Rows {
			if row.SuppressionRequired == 1 {
				suppressed++
			}
		}
		a.result.Suppressed[level] = suppressed
	}
	return nil
}

// Export writes the per-level CSVs, the national CSV and the workbook.
func (p *Pipeline) Export(a *streamArtifacts) error {
	for _, level := range domain.Levels() {
		rt, ok := a.reports[level]
		if !ok {
			continue
		}
		name, err := p.reports.ExportLevel(rt)
		if err != nil {
			return err
		}
		a.result.ReportFiles = append(a.result.ReportFiles, name)
	}

	name, err := p.reports.ExportNational(a.split, a.extract.Service, a.extract.Period)
	if err != nil {
		return err
	}
	a.result.ReportFiles = append(a.result.ReportFiles, name)

	workbook, err := p.excel.ExportWorkbook(a.reports, a.split, a.extract.Service, a.extract.Period)
	if err != nil {
		return err
	}
	a.result.Workbook = workbook
	return nil
}
