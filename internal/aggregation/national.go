package aggregation

import (
	"strings"

	"fftcli/internal/config"
	"fftcli/pkg/contracts/domain"
)

// IsIndependentProvider reports whether an organisation code belongs
// to an independent-sector provider (codes beginning "IS", e.g. IS1).
func IsIndependentProvider(code string) bool {
	return strings.HasPrefix(code, config.IndependentProviderPrefix)
}

// AggregateNational partitions organisation-level rows into NHS and
// independent-sector providers and sums each partition plus the
// combined total. Percentages are recomputed from the summed Likert
// counts. Returns the three split rows (Total, NHS, Independent) and
// the number of organisations contributing to each partition.
func AggregateNational(t *domain.Table) (*domain.ProviderSplit, error) {
	codeCol := t.Level.CodeColumn()
	required := append([]string{codeCol}, countColumns...)
	if err := requireColumns(t, required...); err != nil {
		return nil, err
	}

	total := domain.Row{SubmitterType: domain.SubmitterTotal}
	nhs := domain.Row{SubmitterType: domain.SubmitterNHS}
	independent := domain.Row{SubmitterType: domain.SubmitterIndependent}
	counts := map[domain.SubmitterType]int{
		domain.SubmitterTotal:       0,
		domain.SubmitterNHS:         0,
		domain.SubmitterIndependent: 0,
	}

	accumulate := func(dst *domain.Row, r domain.Row) {
		dst.TotalResponses += r.TotalResponses
		dst.TotalEligible += r.TotalEligible
		dst.Counts = dst.Counts.Add(r.Counts)
	}

	for _, r := range t.Rows {
		accumulate(&total, r)
		counts[domain.SubmitterTotal]++
		if IsIndependentProvider(r.CodeValue(codeCol)) {
			accumulate(&independent, r)
			counts[domain.SubmitterIndependent]++
		} else {
			accumulate(&nhs, r)
			counts[domain.SubmitterNHS]++
		}
	}

	total.RecomputePercentages()
	nhs.RecomputePercentages()
	independent.RecomputePercentages()

	return &domain.ProviderSplit{
		Rows:      []domain.Row{total, nhs, independent},
		OrgCounts: counts,
	}, nil
}
