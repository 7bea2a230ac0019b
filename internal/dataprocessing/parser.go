package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fftcli/internal/config"
	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

// ParseExtract reads one monthly extract workbook and returns the
// ward-level table for the given survey stream. The returned table
// records which canonical columns were actually found in the sheet.
func ParseExtract(path string, svcCfg config.ServiceTypeConfig, period string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open extract %s", path), err)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f, svcCfg)
	if err != nil {
		return nil, err
	}

	headerRow, columnMap := findHeaderRow(rows, svcCfg.HeaderAliases)
	if headerRow < 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("no recognisable header row in sheet %q of %s", sheetName, path), nil)
	}

	slog.Debug("mapped extract columns",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("header_row", headerRow),
		slog.Int("columns", len(columnMap)))

	var tableRows []domain.Row
	for i := headerRow + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		tableRows = append(tableRows, parseDataRow(rows[i], columnMap))
	}

	cols := make([]string, 0, len(columnMap))
	for c := range columnMap {
		cols = append(cols, c)
	}

	table := domain.NewTable(domain.LevelWard, svcCfg.Service, period, tableRows, cols...)

	// Some streams ship without the percentage columns; they are
	// derivable from the counts, so fill them in rather than failing
	// the whole extract.
	if !table.HasColumn(domain.ColPctPositive) || !table.HasColumn(domain.ColPctNegative) {
		for i := range table.Rows {
			table.Rows[i].RecomputePercentages()
		}
		cols = append(cols, domain.ColPctPositive, domain.ColPctNegative)
		table = domain.NewTable(domain.LevelWard, svcCfg.Service, period, table.Rows, cols...)
	}

	return table, nil
}

// findDataSheet tries the configured sheet names first, then falls
// back to scanning every sheet for one that holds a recognisable
// header.
func findDataSheet(f *excelize.File, svcCfg config.ServiceTypeConfig) ([][]string, string, error) {
	for _, name := range svcCfg.SheetNames {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 1 {
			return rows, name, nil
		}
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		if headerRow, _ := findHeaderRow(rows, svcCfg.HeaderAliases); headerRow >= 0 {
			return rows, name, nil
		}
	}

	return nil, "", apperrors.NewParsingError("could not find survey data sheet in workbook", nil)
}

// findHeaderRow locates the first row mapping at least three canonical
// columns and returns it with the canonical-column-to-index map.
func findHeaderRow(rows [][]string, aliases map[string][]string) (int, map[string]int) {
	// Only look near the top; extracts carry at most a few banner rows
	// above the header.
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}

	for i := 0; i < limit; i++ {
		columnMap := mapHeaders(rows[i], aliases)
		if len(columnMap) >= 3 {
			return i, columnMap
		}
	}
	return -1, nil
}

// mapHeaders matches one candidate header row against the alias table.
func mapHeaders(header []string, aliases map[string][]string) map[string]int {
	columnMap := make(map[string]int)
	for j, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if normalized == "" {
			continue
		}
		for canonical, variants := range aliases {
			if _, seen := columnMap[canonical]; seen {
				continue
			}
			for _, v := range variants {
				if normalized == v {
					columnMap[canonical] = j
					break
				}
			}
		}
	}
	return columnMap
}

func parseDataRow(cells []string, columnMap map[string]int) domain.Row {
	get := func(col string) string {
		idx, ok := columnMap[col]
		if !ok || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	r := domain.Row{
		ICBCode:   get(domain.ColICBCode),
		TrustCode: get(domain.ColTrustCode),
		SiteCode:  get(domain.ColSiteCode),
		WardCode:  get(domain.ColWardCode),
		OrgName:   get(domain.ColOrgName),

		TotalResponses: parseInt(get(domain.ColTotalResponses)),
		TotalEligible:  parseInt(get(domain.ColTotalEligible)),
		Counts: domain.LikertCounts{
			VeryGood: parseInt(get(domain.ColVeryGood)),
			Good:     parseInt(get(domain.ColGood)),
			Neither:  parseInt(get(domain.ColNeither)),
			Poor:     parseInt(get(domain.ColPoor)),
			VeryPoor: parseInt(get(domain.ColVeryPoor)),
			DontKnow: parseInt(get(domain.ColDontKnow)),
		},
		PctPositive: parseFloat(get(domain.ColPctPositive)),
		PctNegative: parseFloat(get(domain.ColPctNegative)),
	}
	return r
}

// parseInt reads a count cell. Extracts format large counts with
// thousands separators; anything unreadable counts as zero rather than
// failing the file, matching how blank cells behave.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}

// parseFloat reads a percentage cell, accepting both fractional (0.85)
// and percent-formatted ("85%") values.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	if percent {
		f /= 100
	}
	return f
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
