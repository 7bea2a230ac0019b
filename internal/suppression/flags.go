package suppression

import (
	"fftcli/pkg/contracts/domain"
)

// FlagFirstLevel marks every row with more than zero but fewer than
// threshold responses. Zero-response rows are never suppressed; there
// is nobody to re-identify. Returns a new table.
func FlagFirstLevel(t *domain.Table, threshold int) (*domain.Table, error) {
	if err := requireColumns(t, domain.ColTotalResponses); err != nil {
		return nil, err
	}

	out := t.Clone()
	for i := range out.Rows {
		r := &out.Rows[i]
		r.FirstLevel = r.TotalResponses > 0 && r.TotalResponses < threshold
	}
	return out, nil
}

// FlagSecondLevel marks the rank-2 rows of every group whose rank-1
// row is first-level suppressed. Hiding only the smallest row still
// leaks it: group total minus the visible rows gives it back.
// Suppressing the second-smallest as well leaves two unknowns in that
// one equation. Groups keyed by rank rather than physical adjacency,
// so the pass is independent of row order; a group whose only non-zero
// row is rank 1 has no rank-2 row and gains nothing here. Requires
// AssignRanks and FlagFirstLevel to have run. Returns a new table.
func FlagSecondLevel(t *domain.Table, groupCol string) (*domain.Table, error) {
	if err := requireColumns(t, domain.ColTotalResponses, groupCol); err != nil {
		return nil, err
	}

	out := t.Clone()

	exposed := make(map[string]bool)
	for _, r := range out.Rows {
		if r.Rank == 1 && r.FirstLevel {
			exposed[r.CodeValue(groupCol)] = true
		}
	}

	for i := range out.Rows {
		r := &out.Rows[i]
		r.SecondLevel = r.Rank == 2 && exposed[r.CodeValue(groupCol)]
	}
	return out, nil
}
