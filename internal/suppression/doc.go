// Package suppression implements the statistical disclosure control
// engine for FFT reports.
//
// Each geography level's table goes through four passes: dense ranking
// of rows by response count within their parent group, first-level
// suppression of rows with fewer than the threshold responses,
// second-level suppression of the rank-2 sibling whenever the rank-1
// sibling is first-level suppressed (otherwise the hidden value could
// be recovered as group total minus the visible rows), and cascade
// suppression of the two smallest children under any suppressed parent
// row. Levels run strictly top-down (ICB, Trust, Site, Ward) because
// each level's cascade pass consumes the finalized decisions of the
// level above.
//
// All passes are pure: they clone their input table and never mutate
// it. Redaction is the terminal transformation; aggregation must only
// ever consume pre-redaction tables.
package suppression
