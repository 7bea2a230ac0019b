package domain

// Canonical column names shared between the workbook loader, the
// suppression engine and the exporters. Source extracts use several
// header variants per service type; the loader maps them all onto
// these names.
const (
	ColTotalResponses = "Total Responses"
	ColTotalEligible  = "Total Eligible"
	ColVeryGood       = "Very Good"
	ColGood           = "Good"
	ColNeither        = "Neither Good Nor Poor"
	ColPoor           = "Poor"
	ColVeryPoor       = "Very Poor"
	ColDontKnow       = "Dont Know"
	ColPctPositive    = "Percentage Positive"
	ColPctNegative    = "Percentage Negative"
	ColICBCode        = "ICB_Code"
	ColTrustCode      = "Trust_Code"
	ColSiteCode       = "Site_Code"
	ColWardCode       = "Ward_Code"
	ColOrgName        = "Org_Name"
	ColSubmitterType  = "Submitter Type"
)

// SuppressedMarker is the value published in place of a disclosure-
// controlled cell.
const SuppressedMarker = "*"

// Level identifies one tier of the reporting geography hierarchy.
// Levels are processed strictly top-down (ICB first) because each
// tier's cascade suppression consumes the finalized decisions of the
// tier above it.
type Level int

const (
	LevelICB Level = iota
	LevelTrust
	LevelSite
	LevelWard
)

// Levels returns the hierarchy in processing order, top-down.
func Levels() []Level {
	return []Level{LevelICB, LevelTrust, LevelSite, LevelWard}
}

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelICB:
		return "ICB"
	case LevelTrust:
		return "Trust"
	case LevelSite:
		return "Site"
	case LevelWard:
		return "Ward"
	default:
		return "unknown"
	}
}

// CodeColumn returns the column holding a row's own organisational
// code at this level.
func (l Level) CodeColumn() string {
	switch l {
	case LevelICB:
		return ColICBCode
	case LevelTrust:
		return ColTrustCode
	case LevelSite:
		return ColSiteCode
	case LevelWard:
		return ColWardCode
	default:
		return ""
	}
}

// GroupColumn returns the parent-code column used to group sibling
// rows at this level. ICB sits at the top of the hierarchy and is
// ranked as a single national group, so it has no group column.
func (l Level) GroupColumn() string {
	switch l {
	case LevelTrust:
		return ColICBCode
	case LevelSite:
		return ColTrustCode
	case LevelWard:
		return ColSiteCode
	default:
		return ""
	}
}

// Parent returns the level immediately above, if any.
func (l Level) Parent() (Level, bool) {
	switch l {
	case LevelTrust:
		return LevelICB, true
	case LevelSite:
		return LevelTrust, true
	case LevelWard:
		return LevelSite, true
	default:
		return 0, false
	}
}

// ServiceType identifies one FFT survey stream. Each stream arrives as
// its own monthly extract with its own header conventions.
type ServiceType string

const (
	ServiceInpatient ServiceType = "inpatient"
	ServiceAE        ServiceType = "ae"
	ServiceMaternity ServiceType = "maternity"
	ServiceCommunity ServiceType = "community"
	ServiceAmbulance ServiceType = "ambulance"
)

// ServiceTypes returns all known survey streams.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceInpatient, ServiceAE, ServiceMaternity, ServiceCommunity, ServiceAmbulance}
}

// LikertCounts holds the six response-option counts for one row.
type LikertCounts struct {
	VeryGood int `json:"very_good" validate:"min=0"`
	Good     int `json:"good" validate:"min=0"`
	Neither  int `json:"neither" validate:"min=0"`
	Poor     int `json:"poor" validate:"min=0"`
	VeryPoor int `json:"very_poor" validate:"min=0"`
	DontKnow int `json:"dont_know" validate:"min=0"`
}

// Add returns the element-wise sum of two count sets.
func (c LikertCounts) Add(o LikertCounts) LikertCounts {
	return LikertCounts{
		VeryGood: c.VeryGood + o.VeryGood,
		Good:     c.Good + o.Good,
		Neither:  c.Neither + o.Neither,
		Poor:     c.Poor + o.Poor,
		VeryPoor: c.VeryPoor + o.VeryPoor,
		DontKnow: c.DontKnow + o.DontKnow,
	}
}

// Positive returns the count of positive responses (Very Good + Good).
func (c LikertCounts) Positive() int {
	return c.VeryGood + c.Good
}

// Negative returns the count of negative responses (Very Poor + Poor).
func (c LikertCounts) Negative() int {
	return c.VeryPoor + c.Poor
}

// Row is a single organisational unit's results at one geography level
// for one reporting period. Rank and the suppression flags are derived
// by the suppression engine; everything else comes from the extract or
// the aggregator.
type Row struct {
	ICBCode   string `json:"icb_code,omitempty"`
	TrustCode string `json:"trust_code,omitempty"`
	SiteCode  string `json:"site_code,omitempty"`
	WardCode  string `json:"ward_code,omitempty"`
	OrgName   string `json:"org_name,omitempty"`

	// SubmitterType is set only on national provider-split rows.
	SubmitterType SubmitterType `json:"submitter_type,omitempty"`

	TotalResponses int          `json:"total_responses" validate:"min=0"`
	TotalEligible  int          `json:"total_eligible" validate:"min=0"`
	Counts         LikertCounts `json:"counts"`
	PctPositive    float64      `json:"pct_positive"`
	PctNegative    float64      `json:"pct_negative"`

	Rank                int  `json:"rank"`
	FirstLevel          bool `json:"first_level"`
	SecondLevel         bool `json:"second_level"`
	Cascade             bool `json:"cascade"`
	SuppressionRequired bool `json:"suppression_required"`
}

// CodeValue returns the value of the named code column for this row.
func (r Row) CodeValue(col string) string {
	switch col {
	case ColICBCode:
		return r.ICBCode
	case ColTrustCode:
		return r.TrustCode
	case ColSiteCode:
		return r.SiteCode
	case ColWardCode:
		return r.WardCode
	default:
		return ""
	}
}

// RecomputePercentages rederives both percentage fields from the
// Likert counts. Percentages are always (category sum)/(total
// responses), never an average of child percentages.
func (r *Row) RecomputePercentages() {
	if r.TotalResponses <= 0 {
		r.PctPositive = 0
		r.PctNegative = 0
		return
	}
	r.PctPositive = float64(r.Counts.Positive()) / float64(r.TotalResponses)
	r.PctNegative = float64(r.Counts.Negative()) / float64(r.TotalResponses)
}

// SubmitterType keys the national provider-split rows.
type SubmitterType string

const (
	SubmitterTotal       SubmitterType = "Total"
	SubmitterNHS         SubmitterType = "NHS"
	SubmitterIndependent SubmitterType = "Independent Sector"
)

// ProviderSplit is the national Total / NHS / Independent-provider
// aggregate, with the number of organisations contributing to each
// partition.
type ProviderSplit struct {
	Rows      []Row                 `json:"rows"`
	OrgCounts map[SubmitterType]int `json:"org_counts"`
}
