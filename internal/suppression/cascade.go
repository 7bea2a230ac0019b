package suppression

import (
	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

// ApplyCascade propagates a finalized parent level's suppression
// decisions down to the child level: wherever the parent row matched
// by code is suppressed, the child's rank-1..depth rows (its smallest
// siblings, ranked at the child's own level) are suppressed too.
// Publishing a suppressed parent's exact child breakdown would let an
// analyst rebuild the hidden parent total, whatever originally
// triggered the parent's suppression. Children of unsuppressed parents
// get the flag cleared. The parent table must already be finalized;
// returns a new child table.
func ApplyCascade(parent, child *domain.Table, parentCodeCol, childCodeCol string, depth int) (*domain.Table, error) {
	if parentCodeCol == "" || !parent.HasColumn(parentCodeCol) {
		return nil, apperrors.NewMissingColumnError(parentCodeCol, tableName(parent))
	}
	if childCodeCol == "" || !child.HasColumn(childCodeCol) {
		return nil, apperrors.NewMissingColumnError(childCodeCol, tableName(child))
	}

	suppressed := make(map[string]bool, len(parent.Rows))
	for _, r := range parent.Rows {
		if r.SuppressionRequired {
			suppressed[r.CodeValue(parentCodeCol)] = true
		}
	}

	out := child.Clone()
	for i := range out.Rows {
		r := &out.Rows[i]
		r.Cascade = suppressed[r.CodeValue(childCodeCol)] && r.Rank >= 1 && r.Rank <= depth
	}
	return out, nil
}
