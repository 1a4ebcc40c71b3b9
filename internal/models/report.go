package models

// Severity classifies how likely a violation is to cause rejection.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for sorting: high first, unknown last.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// ReadinessStatus is the overall submission verdict.
type ReadinessStatus string

const (
	ReadinessReady      ReadinessStatus = "ready"
	ReadinessNeedsFixes ReadinessStatus = "needs_fixes"
	ReadinessHighRisk   ReadinessStatus = "high_risk"
)

// Label returns the human-readable form of the verdict.
func (s ReadinessStatus) Label() string {
	switch s {
	case ReadinessReady:
		return "Ready"
	case ReadinessNeedsFixes:
		return "Needs Fixes"
	case ReadinessHighRisk:
		return "High Risk"
	default:
		return string(s)
	}
}

// ReadinessForScore derives a verdict from a compliance score when the
// agent did not supply one explicitly.
func ReadinessForScore(score int) ReadinessStatus {
	switch {
	case score >= 85:
		return ReadinessReady
	case score >= 60:
		return ReadinessNeedsFixes
	default:
		return ReadinessHighRisk
	}
}

// CheckStatus is the outcome of a single readiness checklist item.
type CheckStatus string

const (
	CheckPass          CheckStatus = "pass"
	CheckFail          CheckStatus = "fail"
	CheckWarning       CheckStatus = "warning"
	CheckNotApplicable CheckStatus = "not_applicable"
)

// Violation is a single guideline violation reported by the agent.
// Every field is agent-supplied and may arrive empty; normalization
// fills defaults once at the boundary.
type Violation struct {
	Title              string   `json:"title"`
	Severity           Severity `json:"severity"`
	GuidelineReference string   `json:"guideline_reference"`
	Description        string   `json:"description"`
	AffectedCode       string   `json:"affected_code"`
	SuggestedFix       string   `json:"suggested_fix"`
}

// Category groups violations under an agent-defined heading. Order of
// categories and of violations within them is display order.
type Category struct {
	CategoryName    string      `json:"category_name"`
	CategorySummary string      `json:"category_summary"`
	Violations      []Violation `json:"violations"`
}

// PriorityFix is one entry in the agent's ordered remediation list.
type PriorityFix struct {
	Priority int    `json:"priority"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// RiskSummary holds the agent's own violation counts per severity.
// These are not reconciled against the category contents: the agent
// owns them, and a mismatch is preserved as-is.
type RiskSummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ReadinessCheckItem is one row of the optional submission checklist.
type ReadinessCheckItem struct {
	Item    string      `json:"item"`
	Status  CheckStatus `json:"status"`
	Details string      `json:"details"`
}

// AnalysisResult is the root artifact of one analysis run. Immutable
// once normalized; history entries reference it whole.
type AnalysisResult struct {
	ComplianceScore    int                  `json:"compliance_score"`
	ReadinessStatus    ReadinessStatus      `json:"readiness_status,omitempty"`
	RiskSummary        RiskSummary          `json:"risk_summary"`
	ReadinessChecklist []ReadinessCheckItem `json:"readiness_checklist,omitempty"`
	Categories         []Category           `json:"categories"`
	OverallAssessment  string               `json:"overall_assessment"`
	PriorityFixes      []PriorityFix        `json:"priority_fixes"`
}

// AllViolations flattens the categories in display order, pairing each
// violation with its category name.
func (r *AnalysisResult) AllViolations() []CategorizedViolation {
	var out []CategorizedViolation
	for _, cat := range r.Categories {
		for _, v := range cat.Violations {
			out = append(out, CategorizedViolation{Category: cat.CategoryName, Violation: v})
		}
	}
	return out
}

// CategorizedViolation is a violation tagged with its category name.
type CategorizedViolation struct {
	Category  string
	Violation Violation
}
