package suppression

import (
	"fmt"
	"sort"

	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

// tableName describes a table in error messages.
func tableName(t *domain.Table) string {
	return fmt.Sprintf("%s %s table", t.Service, t.Level)
}

// requireColumns returns a MissingColumn error for the first required
// column absent from the table.
func requireColumns(t *domain.Table, cols ...string) error {
	for _, c := range cols {
		if c == "" {
			continue
		}
		if !t.HasColumn(c) {
			return apperrors.NewMissingColumnError(c, tableName(t))
		}
	}
	return nil
}

// AssignRanks dense-ranks each row's response count ascending within
// its parent group and returns a new table with the ranks set. Rows
// with zero responses get rank 0 and are excluded from the ranking.
// Ties share a rank, so a group can hold two rank-1 rows and no rank-2
// row. groupCol may be empty (top of the hierarchy), in which case the
// whole table is one group. Input row order is preserved and the input
// table is not mutated; the result depends only on values, never on
// row position.
func AssignRanks(t *domain.Table, groupCol string) (*domain.Table, error) {
	if err := requireColumns(t, domain.ColTotalResponses, groupCol); err != nil {
		return nil, err
	}

	out := t.Clone()

	// Collect the distinct non-zero response counts per group.
	groupValues := make(map[string]map[int]struct{})
	for _, r := range out.Rows {
		if r.TotalResponses == 0 {
			continue
		}
		key := r.CodeValue(groupCol)
		if groupValues[key] == nil {
			groupValues[key] = make(map[int]struct{})
		}
		groupValues[key][r.TotalResponses] = struct{}{}
	}

	// Dense rank: sorted distinct values map to 1..k with no gaps.
	rankOf := make(map[string]map[int]int, len(groupValues))
	for key, set := range groupValues {
		values := make([]int, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Ints(values)
		ranks := make(map[int]int, len(values))
		for i, v := range values {
			ranks[v] = i + 1
		}
		rankOf[key] = ranks
	}

	for i := range out.Rows {
		r := &out.Rows[i]
		if r.TotalResponses == 0 {
			r.Rank = 0
			continue
		}
		r.Rank = rankOf[r.CodeValue(groupCol)][r.TotalResponses]
	}

	return out, nil
}
