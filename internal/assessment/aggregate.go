package assessment

import (
	"errors"
	"math"
)

// ErrMissingAssessment is returned when aggregation is attempted over an
// incomplete set of sub-assessments. A score computed from partial inputs
// would be misleading, so this fails loudly instead of defaulting.
var ErrMissingAssessment = errors.New("assessment: missing sub-assessment")

// Aggregation weights. Business constants; must not be tuned.
const (
	weightStructural = 0.40
	weightFairness   = 0.20
	weightCompliance = 0.25
	weightQuality    = 0.15
)

// Fixed condition -> message tables. These are lookup tables, not heuristics:
// each check contributes at most one entry, in check order.
const (
	actionStructural = "Resolve structural validation failures before publishing"
	actionFairness   = "Review requirement language for exclusionary or vendor-specific terms"
	actionCompliance = "Address the regulatory gaps flagged by the compliance review"
	actionQuality    = "Clarify scope, deliverables and evaluation criteria wording"
	actionCritical   = "Fix all critical issues before releasing the RFQ"
)

const strengthThreshold = 85

type areaCheck struct {
	area   string
	impact string
}

var impactByArea = map[string]string{
	"structural": "Blocks automated validation and supplier parsing",
	"fairness":   "Risks protest on competition grounds",
	"compliance": "Risks rejection during contracting review",
	"quality":    "Reduces quality and comparability of quotes",
}

// ComputeOverallAssessment combines the four independently produced
// sub-assessments into one verdict. All four must be present.
//
// Readiness thresholds are evaluated in order, first match wins:
// excellent (>=90, no criticals), good (>=75, <=1 critical),
// needs_improvement (>=60), not_ready.
func ComputeOverallAssessment(structural *StructuralValidation, fairness *FairnessReview, compliance *ComplianceCheck, quality *QualityReview) (*OverallAssessment, error) {
	if structural == nil || fairness == nil || compliance == nil || quality == nil {
		return nil, ErrMissingAssessment
	}

	overall := int(math.Round(
		float64(structural.Score)*weightStructural +
			float64(fairness.BiasScore)*weightFairness +
			float64(compliance.ComplianceScore)*weightCompliance +
			float64(quality.QualityScore)*weightQuality))

	criticals := 0
	for _, issue := range structural.CriticalIssues {
		if issue.Severity == SeverityCritical {
			criticals++
		}
	}
	criticals += len(compliance.RegulatoryGaps)
	for _, issue := range fairness.PotentialIssues {
		if issue.Severity == SeverityHigh {
			criticals++
		}
	}

	var readiness string
	switch {
	case overall >= 90 && criticals == 0:
		readiness = ReadinessExcellent
	case overall >= 75 && criticals <= 1:
		readiness = ReadinessGood
	case overall >= 60:
		readiness = ReadinessNeedsImprovement
	default:
		readiness = ReadinessNotReady
	}

	var actions []string
	if structural.Score < 70 {
		actions = append(actions, actionStructural)
	}
	if fairness.BiasScore < 75 {
		actions = append(actions, actionFairness)
	}
	if compliance.ComplianceScore < 80 {
		actions = append(actions, actionCompliance)
	}
	if quality.QualityScore < 70 {
		actions = append(actions, actionQuality)
	}
	if criticals > 0 {
		actions = append(actions, actionCritical)
	}

	var strengths []string
	if structural.Score >= strengthThreshold {
		strengths = append(strengths, "Document structure")
	}
	if fairness.BiasScore >= strengthThreshold {
		strengths = append(strengths, "Fair and open competition language")
	}
	if compliance.ComplianceScore >= strengthThreshold {
		strengths = append(strengths, "Regulatory compliance")
	}
	if quality.QualityScore >= strengthThreshold {
		strengths = append(strengths, "Content quality")
	}

	priorities := buildPriorities([]struct {
		area  string
		score int
	}{
		{"structural", structural.Score},
		{"fairness", fairness.BiasScore},
		{"compliance", compliance.ComplianceScore},
		{"quality", quality.QualityScore},
	})

	return &OverallAssessment{
		OverallScore:          overall,
		ReadinessLevel:        readiness,
		CriticalIssueCount:    criticals,
		RecommendedActions:    actions,
		StrengthAreas:         strengths,
		ImprovementPriorities: priorities,
	}, nil
}

func buildPriorities(areas []struct {
	area  string
	score int
}) []ImprovementPriority {
	var priorities []ImprovementPriority
	for _, a := range areas {
		if a.score >= 75 {
			continue
		}
		priority := "medium"
		if a.score < 60 {
			priority = "high"
		}
		priorities = append(priorities, ImprovementPriority{
			Area:     a.area,
			Priority: priority,
			Impact:   impactByArea[a.area],
		})
	}
	return priorities
}
