// Package exporter writes the published FFT report files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending, and UTF-8 BOM for Excel compatibility.
//
// ReportExporter: Renders finalized per-level report tables and the
// national provider split to CSV, one file per geography level.
//
// ExcelExporter: Renders the same output as a single workbook with one
// sheet per geography level plus the national sheet.
//
// Suppressed cells are rendered through the report cell types, so a
// suppressed count or percentage always appears as the disclosure
// marker regardless of the output format.
package exporter
