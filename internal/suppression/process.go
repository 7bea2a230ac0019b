package suppression

import (
	"context"
	"fmt"
	"log/slog"

	"fftcli/pkg/contracts/domain"
)

// Engine runs the suppression passes over a level hierarchy with one
// fixed set of disclosure-control parameters.
type Engine struct {
	params Params
	logger *slog.Logger
}

// NewEngine validates the parameters once and returns an engine.
func NewEngine(params Params, logger *slog.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{params: params, logger: logger}, nil
}

// Params returns the engine's disclosure-control parameters.
func (e *Engine) Params() Params {
	return e.params
}

// ProcessLevel runs the full pass sequence for one geography level:
// rank, first-level, second-level, then cascade against the finalized
// parent table (nil at the top of the hierarchy), and finally the
// combined per-row decision. Any missing-column failure aborts the
// level with no partial output.
func (e *Engine) ProcessLevel(ctx context.Context, t *domain.Table, parent *domain.Table) (*domain.Table, error) {
	groupCol := t.Level.GroupColumn()

	out, err := AssignRanks(t, groupCol)
	if err != nil {
		return nil, fmt.Errorf("assign ranks: %w", err)
	}

	out, err = FlagFirstLevel(out, e.params.Threshold)
	if err != nil {
		return nil, fmt.Errorf("first-level suppression: %w", err)
	}

	out, err = FlagSecondLevel(out, groupCol)
	if err != nil {
		return nil, fmt.Errorf("second-level suppression: %w", err)
	}

	if parent != nil {
		codeCol := parent.Level.CodeColumn()
		out, err = ApplyCascade(parent, out, codeCol, codeCol, e.params.CascadeDepth)
		if err != nil {
			return nil, fmt.Errorf("cascade suppression: %w", err)
		}
	}

	suppressedRows := 0
	for i := range out.Rows {
		r := &out.Rows[i]
		r.SuppressionRequired = r.FirstLevel || r.SecondLevel || r.Cascade
		if r.SuppressionRequired {
			suppressedRows++
		}
	}

	e.logger.InfoContext(ctx, "processed suppression level",
		slog.String("service", string(t.Service)),
		slog.String("level", t.Level.String()),
		slog.Int("rows", len(out.Rows)),
		slog.Int("suppressed_rows", suppressedRows))

	return out, nil
}

// ProcessAll finalizes every level present in tables, strictly
// top-down (ICB, Trust, Site, Ward), wiring each level's finalized
// output into the next level's cascade input. A level whose parent
// table is absent is processed without cascade.
func (e *Engine) ProcessAll(ctx context.Context, tables map[domain.Level]*domain.Table) (map[domain.Level]*domain.Table, error) {
	finalized := make(map[domain.Level]*domain.Table, len(tables))

	for _, level := range domain.Levels() {
		t, ok := tables[level]
		if !ok {
			continue
		}
		if t.Level != level {
			return nil, fmt.Errorf("table registered under level %s has level %s", level, t.Level)
		}

		var parent *domain.Table
		if parentLevel, ok := level.Parent(); ok {
			parent = finalized[parentLevel]
		}

		out, err := e.ProcessLevel(ctx, t, parent)
		if err != nil {
			return nil, fmt.Errorf("process %s level: %w", level, err)
		}
		finalized[level] = out
	}

	return finalized, nil
}
