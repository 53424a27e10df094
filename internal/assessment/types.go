// Package assessment scores a candidate RFQ document along four independent
// dimensions and combines them into one release verdict.
package assessment

// Issue severities.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Readiness levels, from worst to best.
const (
	ReadinessNotReady         = "not_ready"
	ReadinessNeedsImprovement = "needs_improvement"
	ReadinessGood             = "good"
	ReadinessExcellent        = "excellent"
)

// Issue is one flagged problem with a severity tag.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// StructuralValidation reports whether the document has the required sections
// and machine-parseable structure.
type StructuralValidation struct {
	Score          int     `json:"score"` // 0-100
	Passed         bool    `json:"passed"`
	CriticalIssues []Issue `json:"critical_issues"`
}

// FairnessReview reports bias and open-competition concerns.
type FairnessReview struct {
	BiasScore       int     `json:"bias_score"` // 0-100, higher = fairer
	PotentialIssues []Issue `json:"potential_issues"`
}

// ComplianceCheck reports regulatory (FAR) compliance findings.
type ComplianceCheck struct {
	ComplianceScore int      `json:"compliance_score"` // 0-100
	RegulatoryGaps  []string `json:"regulatory_gaps"`
}

// QualityReview reports writing and content quality.
type QualityReview struct {
	QualityScore int      `json:"quality_score"` // 0-100
	Suggestions  []string `json:"suggestions"`
}

// ImprovementPriority names an area to fix, how urgent it is, and what it
// costs to leave it unfixed.
type ImprovementPriority struct {
	Area     string `json:"area"`
	Priority string `json:"priority"` // "high" or "medium"
	Impact   string `json:"impact"`
}

// OverallAssessment is the combined verdict over the four sub-assessments.
type OverallAssessment struct {
	OverallScore          int                   `json:"overall_score"` // 0-100
	ReadinessLevel        string                `json:"readiness_level"`
	CriticalIssueCount    int                   `json:"critical_issue_count"`
	RecommendedActions    []string              `json:"recommended_actions"`
	StrengthAreas         []string              `json:"strength_areas"`
	ImprovementPriorities []ImprovementPriority `json:"improvement_priorities"`
}
