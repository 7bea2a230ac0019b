package domain

import "strconv"

// Count is a published Likert count cell. Once suppressed it renders
// as the disclosure marker; the underlying number is dropped so a
// redacted table cannot leak it.
type Count struct {
	N          int  `json:"n"`
	Suppressed bool `json:"suppressed"`
}

// String renders the cell the way it appears in the published report.
func (c Count) String() string {
	if c.Suppressed {
		return SuppressedMarker
	}
	return strconv.Itoa(c.N)
}

// Percent is a published percentage cell, in [0,1].
type Percent struct {
	V          float64 `json:"v"`
	Suppressed bool    `json:"suppressed"`
}

// String renders the cell the way it appears in the published report.
func (p Percent) String() string {
	if p.Suppressed {
		return SuppressedMarker
	}
	return strconv.FormatFloat(p.V, 'f', 4, 64)
}

// ReportRow is the publishable form of a Row: identity and totals plus
// mixed numeric/marker cells for the six Likert counts and the two
// percentages, with the suppression decision columns appended as 0/1.
type ReportRow struct {
	ICBCode       string        `json:"icb_code,omitempty"`
	TrustCode     string        `json:"trust_code,omitempty"`
	SiteCode      string        `json:"site_code,omitempty"`
	WardCode      string        `json:"ward_code,omitempty"`
	OrgName       string        `json:"org_name,omitempty"`
	SubmitterType SubmitterType `json:"submitter_type,omitempty"`

	TotalResponses int `json:"total_responses"`
	TotalEligible  int `json:"total_eligible"`

	VeryGood Count `json:"very_good"`
	Good     Count `json:"good"`
	Neither  Count `json:"neither"`
	Poor     Count `json:"poor"`
	VeryPoor Count `json:"very_poor"`
	DontKnow Count `json:"dont_know"`

	PctPositive Percent `json:"pct_positive"`
	PctNegative Percent `json:"pct_negative"`

	Rank                int `json:"rank"`
	FirstLevel          int `json:"first_level"`
	SecondLevel         int `json:"second_level"`
	Cascade             int `json:"cascade"`
	SuppressionRequired int `json:"suppression_required"`
}

// ReportTable is one geography level's publishable output.
type ReportTable struct {
	Level   Level       `json:"level"`
	Service ServiceType `json:"service"`
	Period  string      `json:"period"`
	Rows    []ReportRow `json:"rows"`
}
