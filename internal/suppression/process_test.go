package suppression

import (
	"context"
	"testing"

	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultParams(), nil)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	return e
}

func TestNewEngine_RejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero threshold", Params{Threshold: 0, CascadeDepth: 2}},
		{"negative threshold", Params{Threshold: -5, CascadeDepth: 2}},
		{"zero depth", Params{Threshold: 5, CascadeDepth: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.params, nil); !apperrors.IsConfig(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestProcessLevel_CombinesFlags(t *testing.T) {
	e := newTestEngine(t)

	rows := []domain.Row{
		wardRow("S1", "W1", 3),  // first-level
		wardRow("S1", "W2", 8),  // rank 2, second-level
		wardRow("S1", "W3", 50), // publishes
	}

	out, err := e.ProcessLevel(context.Background(), wardTable(rows), nil)
	if err != nil {
		t.Fatalf("ProcessLevel returned error: %v", err)
	}

	expected := []bool{true, true, false}
	for i, r := range out.Rows {
		if r.SuppressionRequired != expected[i] {
			t.Errorf("ward %s: suppression_required = %v, want %v", r.WardCode, r.SuppressionRequired, expected[i])
		}
		combined := r.FirstLevel || r.SecondLevel || r.Cascade
		if r.SuppressionRequired != combined {
			t.Errorf("ward %s: combined decision must be the OR of the three flags", r.WardCode)
		}
	}
}

// Full hierarchy: an ICB suppressed at the top must pull its two
// smallest trusts down, and those trusts their two smallest sites, and
// so on to wards.
func TestProcessAll_TopDownCascade(t *testing.T) {
	e := newTestEngine(t)

	icb := domain.NewTable(domain.LevelICB, domain.ServiceInpatient, "2026-07", []domain.Row{
		{ICBCode: "QE1", TotalResponses: 3},   // first-level
		{ICBCode: "QF1", TotalResponses: 100}, // rank 2: second-level
	}, domain.ColTotalResponses, domain.ColICBCode)

	trust := domain.NewTable(domain.LevelTrust, domain.ServiceInpatient, "2026-07", []domain.Row{
		{ICBCode: "QE1", TrustCode: "RA", TotalResponses: 10},
		{ICBCode: "QE1", TrustCode: "RB", TotalResponses: 20},
		{ICBCode: "QE1", TrustCode: "RC", TotalResponses: 50},
	}, domain.ColTotalResponses, domain.ColICBCode, domain.ColTrustCode)

	site := domain.NewTable(domain.LevelSite, domain.ServiceInpatient, "2026-07", []domain.Row{
		{TrustCode: "RA", SiteCode: "S1", TotalResponses: 4},
		{TrustCode: "RA", SiteCode: "S2", TotalResponses: 6},
		{TrustCode: "RC", SiteCode: "S3", TotalResponses: 8},
	}, domain.ColTotalResponses, domain.ColTrustCode, domain.ColSiteCode)

	ward := domain.NewTable(domain.LevelWard, domain.ServiceInpatient, "2026-07", []domain.Row{
		{SiteCode: "S2", WardCode: "W1", TotalResponses: 9},
		{SiteCode: "S2", WardCode: "W2", TotalResponses: 12},
		{SiteCode: "S2", WardCode: "W3", TotalResponses: 15},
		{SiteCode: "S3", WardCode: "W4", TotalResponses: 2},
	}, domain.ColTotalResponses, domain.ColSiteCode, domain.ColWardCode)

	finalized, err := e.ProcessAll(context.Background(), map[domain.Level]*domain.Table{
		domain.LevelICB:   icb,
		domain.LevelTrust: trust,
		domain.LevelSite:  site,
		domain.LevelWard:  ward,
	})
	if err != nil {
		t.Fatalf("ProcessAll returned error: %v", err)
	}

	// ICB: rank-1 is first-level suppressed, so the rank-2 ICB is
	// second-level suppressed.
	icbOut := finalized[domain.LevelICB]
	if !icbOut.Rows[0].FirstLevel || !icbOut.Rows[0].SuppressionRequired {
		t.Error("QE1 must be first-level suppressed")
	}
	if !icbOut.Rows[1].SecondLevel || !icbOut.Rows[1].SuppressionRequired {
		t.Error("QF1 must be second-level suppressed")
	}

	// Trusts under QE1: the two smallest cascade, the third publishes.
	trustOut := finalized[domain.LevelTrust]
	expectCascade := map[string]bool{"RA": true, "RB": true, "RC": false}
	for _, r := range trustOut.Rows {
		if r.Cascade != expectCascade[r.TrustCode] {
			t.Errorf("trust %s: cascade = %v, want %v", r.TrustCode, r.Cascade, expectCascade[r.TrustCode])
		}
	}

	// Sites: S1/S2 sit under the suppressed RA; S3 under the published RC.
	siteOut := finalized[domain.LevelSite]
	for _, r := range siteOut.Rows {
		switch r.SiteCode {
		case "S1":
			if !r.FirstLevel || !r.Cascade {
				t.Error("S1 must be both first-level and cascade suppressed")
			}
		case "S2":
			if !r.SecondLevel || !r.Cascade {
				t.Error("S2 must be both second-level and cascade suppressed")
			}
		case "S3":
			if r.SuppressionRequired {
				t.Error("S3 must publish: its parent trust is not suppressed")
			}
		}
	}

	// Wards: the two smallest under suppressed S2 cascade; W4 is tiny
	// on its own merits under the published S3.
	wardOut := finalized[domain.LevelWard]
	for _, r := range wardOut.Rows {
		switch r.WardCode {
		case "W1", "W2":
			if !r.Cascade {
				t.Errorf("ward %s must cascade under suppressed site S2", r.WardCode)
			}
		case "W3":
			if r.SuppressionRequired {
				t.Error("W3 is rank 3: cascade depth 2 must not reach it")
			}
		case "W4":
			if !r.FirstLevel || r.Cascade {
				t.Error("W4 must be first-level suppressed only")
			}
		}
	}
}

func TestProcessAll_MissingLevelSkipped(t *testing.T) {
	e := newTestEngine(t)

	ward := wardTable([]domain.Row{wardRow("S1", "W1", 40)})
	finalized, err := e.ProcessAll(context.Background(), map[domain.Level]*domain.Table{
		domain.LevelWard: ward,
	})
	if err != nil {
		t.Fatalf("ProcessAll returned error: %v", err)
	}
	if _, ok := finalized[domain.LevelWard]; !ok {
		t.Fatal("ward level missing from result")
	}
	if len(finalized) != 1 {
		t.Errorf("expected 1 finalized level, got %d", len(finalized))
	}
}

func TestProcessAll_MisregisteredLevel(t *testing.T) {
	e := newTestEngine(t)
	ward := wardTable(nil)
	_, err := e.ProcessAll(context.Background(), map[domain.Level]*domain.Table{
		domain.LevelSite: ward,
	})
	if err == nil {
		t.Fatal("expected error for table registered under the wrong level")
	}
}

func TestProcessLevel_FailsClosedOnMissingColumn(t *testing.T) {
	e := newTestEngine(t)
	tbl := domain.NewTable(domain.LevelWard, domain.ServiceInpatient, "2026-07",
		[]domain.Row{wardRow("S1", "W1", 3)}, domain.ColSiteCode)

	out, err := e.ProcessLevel(context.Background(), tbl, nil)
	if !apperrors.IsMissingColumn(err) {
		t.Errorf("expected MissingColumn, got %v", err)
	}
	if out != nil {
		t.Error("no partial output may be returned on failure")
	}
}
