package suppression

import (
	"fmt"

	"fftcli/internal/config"
	apperrors "fftcli/internal/errors"
)

// Params carries the disclosure-control constants through the engine.
// It is an immutable value passed explicitly to every entry point;
// nothing in this package reads shared state.
type Params struct {
	// Threshold suppresses any row with 0 < responses < Threshold.
	Threshold int
	// CascadeDepth is how many of a suppressed parent's smallest
	// children (by rank) are suppressed in turn.
	CascadeDepth int
}

// DefaultParams returns the publication-rule constants.
func DefaultParams() Params {
	return Params{
		Threshold:    config.SuppressionThreshold,
		CascadeDepth: config.CascadeRankDepth,
	}
}

// Validate rejects malformed constants. Called once when the engine is
// constructed, never per row.
func (p Params) Validate() error {
	if p.Threshold < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("suppression threshold must be positive, got %d", p.Threshold), nil)
	}
	if p.CascadeDepth < 1 {
		return apperrors.NewConfigError(
			fmt.Sprintf("cascade depth must be positive, got %d", p.CascadeDepth), nil)
	}
	return nil
}
