// Package aggregation rolls child-level FFT tables up to parent
// groupings and builds the national provider split. Aggregation always
// consumes pre-redaction tables; summing a redacted table would
// corrupt every total above it.
package aggregation

import (
	"fmt"

	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

// countColumns are the numeric columns every aggregation requires.
var countColumns = []string{
	domain.ColTotalResponses,
	domain.ColTotalEligible,
	domain.ColVeryGood,
	domain.ColGood,
	domain.ColNeither,
	domain.ColPoor,
	domain.ColVeryPoor,
	domain.ColDontKnow,
}

func requireColumns(t *domain.Table, cols ...string) error {
	for _, c := range cols {
		if c == "" {
			continue
		}
		if !t.HasColumn(c) {
			return apperrors.NewMissingColumnError(c, fmt.Sprintf("%s %s table", t.Service, t.Level))
		}
	}
	return nil
}

// Rollup sums a child-level table up to the target level, grouping by
// the target's own code column and summing every count column. The
// two percentage fields are recomputed from the summed counts, never
// averaged: an average of child percentages over unequal group sizes
// is simply wrong. Group order follows first appearance in the input;
// the sums themselves are independent of input row order. The input is
// not mutated.
func Rollup(t *domain.Table, target domain.Level) (*domain.Table, error) {
	groupCol := target.CodeColumn()
	required := append([]string{groupCol}, countColumns...)
	if err := requireColumns(t, required...); err != nil {
		return nil, err
	}

	order := make([]string, 0)
	grouped := make(map[string]*domain.Row)

	for _, r := range t.Rows {
		key := r.CodeValue(groupCol)
		agg, ok := grouped[key]
		if !ok {
			order = append(order, key)
			agg = &domain.Row{
				ICBCode:   r.ICBCode,
				TrustCode: keepCode(r.TrustCode, target, domain.LevelTrust),
				SiteCode:  keepCode(r.SiteCode, target, domain.LevelSite),
				WardCode:  keepCode(r.WardCode, target, domain.LevelWard),
			}
			grouped[key] = agg
		}
		agg.TotalResponses += r.TotalResponses
		agg.TotalEligible += r.TotalEligible
		agg.Counts = agg.Counts.Add(r.Counts)
	}

	rows := make([]domain.Row, 0, len(order))
	for _, key := range order {
		agg := grouped[key]
		agg.RecomputePercentages()
		rows = append(rows, *agg)
	}

	cols := []string{
		domain.ColPctPositive,
		domain.ColPctNegative,
	}
	cols = append(cols, countColumns...)
	for _, l := range domain.Levels() {
		if l <= target {
			cols = append(cols, l.CodeColumn())
		}
	}

	return domain.NewTable(target, t.Service, t.Period, rows, cols...), nil
}

// keepCode clears code columns below the target level; an aggregate
// row has no single ward or site of its own.
func keepCode(code string, target, codeLevel domain.Level) string {
	if codeLevel > target {
		return ""
	}
	return code
}
