package suppression

import (
	"fftcli/pkg/contracts/domain"
)

// BuildReport converts a finalized table into its publishable form
// with all cells still visible. Flags become the 0/1 decision columns
// of the output contract.
func BuildReport(t *domain.Table) *domain.ReportTable {
	rows := make([]domain.ReportRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = domain.ReportRow{
			ICBCode:       r.ICBCode,
			TrustCode:     r.TrustCode,
			SiteCode:      r.SiteCode,
			WardCode:      r.WardCode,
			OrgName:       r.OrgName,
			SubmitterType: r.SubmitterType,

			TotalResponses: r.TotalResponses,
			TotalEligible:  r.TotalEligible,

			VeryGood: domain.Count{N: r.Counts.VeryGood},
			Good:     domain.Count{N: r.Counts.Good},
			Neither:  domain.Count{N: r.Counts.Neither},
			Poor:     domain.Count{N: r.Counts.Poor},
			VeryPoor: domain.Count{N: r.Counts.VeryPoor},
			DontKnow: domain.Count{N: r.Counts.DontKnow},

			PctPositive: domain.Percent{V: r.PctPositive},
			PctNegative: domain.Percent{V: r.PctNegative},

			Rank:                r.Rank,
			FirstLevel:          boolToFlag(r.FirstLevel),
			SecondLevel:         boolToFlag(r.SecondLevel),
			Cascade:             boolToFlag(r.Cascade),
			SuppressionRequired: boolToFlag(r.SuppressionRequired),
		}
	}
	return &domain.ReportTable{
		Level:   t.Level,
		Service: t.Service,
		Period:  t.Period,
		Rows:    rows,
	}
}

// Redact applies the final, irreversible value redaction: every row
// whose combined decision is set has its six Likert counts replaced by
// the marker, and rows suppressed at first level specifically lose
// their two percentage cells as well (a percentage over fewer than
// threshold responses identifies the respondents almost as directly as
// the count). The underlying numbers are zeroed so no representation
// of the table can leak them. Must run only after every level's flags
// are finalized; re-aggregating a redacted table would corrupt totals.
// Applying Redact to an already redacted table is a no-op.
func Redact(rt *domain.ReportTable) *domain.ReportTable {
	rows := make([]domain.ReportRow, len(rt.Rows))
	copy(rows, rt.Rows)

	for i := range rows {
		r := &rows[i]
		if r.SuppressionRequired == 0 {
			continue
		}

		suppressed := domain.Count{Suppressed: true}
		r.VeryGood = suppressed
		r.Good = suppressed
		r.Neither = suppressed
		r.Poor = suppressed
		r.VeryPoor = suppressed
		r.DontKnow = suppressed

		if r.FirstLevel == 1 {
			r.PctPositive = domain.Percent{Suppressed: true}
			r.PctNegative = domain.Percent{Suppressed: true}
		}
	}

	return &domain.ReportTable{
		Level:   rt.Level,
		Service: rt.Service,
		Period:  rt.Period,
		Rows:    rows,
	}
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
