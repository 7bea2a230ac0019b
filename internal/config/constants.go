package config

import "time"

// Application constants for the FFT reporting pipeline.
const (
	// Application Info
	AppName    = "FFT Reporting Pipeline"
	AppVersion = "2.1.0"

	// Statistical disclosure control. These are domain-fixed by the
	// national publication rules, not tunable policy knobs; they live
	// here so the whole pipeline shares one definition.
	//
	// SuppressionThreshold: a row with 0 < responses < threshold is
	// suppressed outright.
	// CascadeRankDepth: how many of a suppressed parent's smallest
	// children are suppressed in turn (rank 1..depth).
	SuppressionThreshold = 5
	CascadeRankDepth     = 2

	// Independent-sector providers are identified by organisation code
	// prefix (e.g. "IS1") when building the national provider split.
	IndependentProviderPrefix = "IS"

	// Monthly extract filename patterns per survey stream.
	InpatientExtractPattern = `FFT_Inpatient_.*\.xlsx?`
	AEExtractPattern        = `FFT_AE_.*\.xlsx?`
	MaternityExtractPattern = `FFT_Maternity_.*\.xlsx?`
	CommunityExtractPattern = `FFT_Community_.*\.xlsx?`
	AmbulanceExtractPattern = `FFT_Ambulance_.*\.xlsx?`

	// File Paths (relative to executable)
	DefaultDataDir     = "data"
	DefaultLogsDir     = "logs"
	DefaultExtractsDir = "data/extracts"
	DefaultReportsDir  = "data/reports"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Run Timeouts
	DefaultRunTimeout  = 30 * time.Minute
	DefaultFileTimeout = 5 * time.Minute
)
