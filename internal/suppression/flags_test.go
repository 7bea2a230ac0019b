package suppression

import (
	"testing"

	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

func TestFlagFirstLevel(t *testing.T) {
	tests := []struct {
		responses int
		expected  bool
	}{
		{0, false}, // nothing to protect
		{1, true},
		{4, true},
		{5, false}, // threshold itself publishes
		{100, false},
	}

	rows := make([]domain.Row, len(tests))
	for i, tt := range tests {
		rows[i] = wardRow("S1", "W", tt.responses)
	}

	out, err := FlagFirstLevel(wardTable(rows), 5)
	if err != nil {
		t.Fatalf("FlagFirstLevel returned error: %v", err)
	}
	for i, tt := range tests {
		if out.Rows[i].FirstLevel != tt.expected {
			t.Errorf("responses=%d: first_level = %v, want %v", tt.responses, out.Rows[i].FirstLevel, tt.expected)
		}
	}
}

func TestFlagFirstLevel_MissingColumn(t *testing.T) {
	tbl := domain.NewTable(domain.LevelWard, domain.ServiceInpatient, "2026-07", nil, domain.ColSiteCode)
	if _, err := FlagFirstLevel(tbl, 5); !apperrors.IsMissingColumn(err) {
		t.Errorf("expected MissingColumn, got %v", err)
	}
}

func TestFlagSecondLevel(t *testing.T) {
	tests := []struct {
		name      string
		rows      []domain.Row
		expected  []bool
	}{
		{
			name: "rank-2 flagged when rank-1 first-level suppressed",
			rows: []domain.Row{
				{SiteCode: "S1", WardCode: "W1", TotalResponses: 3, Rank: 1, FirstLevel: true},
				{SiteCode: "S1", WardCode: "W2", TotalResponses: 8, Rank: 2},
				{SiteCode: "S1", WardCode: "W3", TotalResponses: 20, Rank: 3},
			},
			expected: []bool{false, true, false},
		},
		{
			name: "rank-2 clear when rank-1 publishes",
			rows: []domain.Row{
				{SiteCode: "S1", WardCode: "W1", TotalResponses: 6, Rank: 1},
				{SiteCode: "S1", WardCode: "W2", TotalResponses: 8, Rank: 2},
			},
			expected: []bool{false, false},
		},
		{
			name: "single non-zero row group has no rank-2 to protect",
			rows: []domain.Row{
				{SiteCode: "S1", WardCode: "W1", TotalResponses: 2, Rank: 1, FirstLevel: true},
				{SiteCode: "S1", WardCode: "W2", TotalResponses: 0, Rank: 0},
			},
			expected: []bool{false, false},
		},
		{
			name: "group key separates siblings",
			rows: []domain.Row{
				{SiteCode: "S1", WardCode: "W1", TotalResponses: 2, Rank: 1, FirstLevel: true},
				{SiteCode: "S2", WardCode: "W2", TotalResponses: 8, Rank: 2},
				{SiteCode: "S1", WardCode: "W3", TotalResponses: 9, Rank: 2},
			},
			expected: []bool{false, false, true},
		},
		{
			name: "tied rank-2 rows are all flagged",
			rows: []domain.Row{
				{SiteCode: "S1", WardCode: "W1", TotalResponses: 1, Rank: 1, FirstLevel: true},
				{SiteCode: "S1", WardCode: "W2", TotalResponses: 7, Rank: 2},
				{SiteCode: "S1", WardCode: "W3", TotalResponses: 7, Rank: 2},
			},
			expected: []bool{false, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FlagSecondLevel(wardTable(tt.rows), domain.ColSiteCode)
			if err != nil {
				t.Fatalf("FlagSecondLevel returned error: %v", err)
			}
			for i := range tt.rows {
				if out.Rows[i].SecondLevel != tt.expected[i] {
					t.Errorf("row %d (%s): second_level = %v, want %v",
						i, tt.rows[i].WardCode, out.Rows[i].SecondLevel, tt.expected[i])
				}
			}
		})
	}
}

func TestFlagSecondLevel_NoGroupColumn(t *testing.T) {
	rows := []domain.Row{
		{ICBCode: "QE1", TotalResponses: 4, Rank: 1, FirstLevel: true},
		{ICBCode: "QF1", TotalResponses: 90, Rank: 2},
	}
	tbl := domain.NewTable(domain.LevelICB, domain.ServiceInpatient, "2026-07", rows,
		domain.ColTotalResponses, domain.ColICBCode)

	out, err := FlagSecondLevel(tbl, "")
	if err != nil {
		t.Fatalf("FlagSecondLevel returned error: %v", err)
	}
	if !out.Rows[1].SecondLevel {
		t.Error("national rank-2 row should be flagged when rank-1 is first-level suppressed")
	}
}

func TestFlagSecondLevel_MissingGroupColumn(t *testing.T) {
	tbl := domain.NewTable(domain.LevelWard, domain.ServiceInpatient, "2026-07", nil,
		domain.ColTotalResponses)
	if _, err := FlagSecondLevel(tbl, domain.ColSiteCode); !apperrors.IsMissingColumn(err) {
		t.Errorf("expected MissingColumn, got %v", err)
	}
}
