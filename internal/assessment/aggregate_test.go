package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cleanAssessments() (*StructuralValidation, *FairnessReview, *ComplianceCheck, *QualityReview) {
	return &StructuralValidation{Score: 90, Passed: true},
		&FairnessReview{BiasScore: 85},
		&ComplianceCheck{ComplianceScore: 85},
		&QualityReview{QualityScore: 85}
}

func TestComputeOverallAssessment_DocumentedExample(t *testing.T) {
	structural, fairness, compliance, quality := cleanAssessments()

	got, err := ComputeOverallAssessment(structural, fairness, compliance, quality)
	require.NoError(t, err)

	// round(90*0.4 + 85*0.2 + 85*0.25 + 85*0.15) = round(87.25) = 87
	require.Equal(t, 87, got.OverallScore)
	require.Equal(t, 0, got.CriticalIssueCount)
	// 87 < 90, so good rather than excellent.
	require.Equal(t, ReadinessGood, got.ReadinessLevel)
	require.Empty(t, got.RecommendedActions)
	require.Equal(t, []string{
		"Document structure",
		"Fair and open competition language",
		"Regulatory compliance",
		"Content quality",
	}, got.StrengthAreas)
	require.Empty(t, got.ImprovementPriorities)
}

func TestComputeOverallAssessment_Excellent(t *testing.T) {
	structural, fairness, compliance, quality := cleanAssessments()
	structural.Score = 98
	fairness.BiasScore = 95
	compliance.ComplianceScore = 92
	quality.QualityScore = 90

	got, err := ComputeOverallAssessment(structural, fairness, compliance, quality)
	require.NoError(t, err)
	require.GreaterOrEqual(t, got.OverallScore, 90)
	require.Equal(t, ReadinessExcellent, got.ReadinessLevel)
}

func TestComputeOverallAssessment_CriticalIssueCount(t *testing.T) {
	structural, fairness, compliance, quality := cleanAssessments()
	structural.CriticalIssues = []Issue{
		{Severity: SeverityCritical, Message: "no submission instructions"},
		{Severity: SeverityMedium, Message: "deadline buried in prose"}, // not counted
	}
	compliance.RegulatoryGaps = []string{"missing FAR 52.212-1"}
	fairness.PotentialIssues = []Issue{
		{Severity: SeverityHigh, Message: "brand-name requirement"},
		{Severity: SeverityLow, Message: "jargon"}, // not counted
	}

	got, err := ComputeOverallAssessment(structural, fairness, compliance, quality)
	require.NoError(t, err)
	require.Equal(t, 3, got.CriticalIssueCount)
	require.Contains(t, got.RecommendedActions, "Fix all critical issues before releasing the RFQ")
}

func TestComputeOverallAssessment_ReadinessLadderFirstMatchWins(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		criticals int
		want      string
	}{
		{"excellent", 92, 0, ReadinessExcellent},
		{"high score but criticals drop to good", 92, 1, ReadinessGood},
		{"high score many criticals falls through", 92, 3, ReadinessNeedsImprovement},
		{"good", 80, 1, ReadinessGood},
		{"needs improvement", 65, 0, ReadinessNeedsImprovement},
		{"not ready", 40, 0, ReadinessNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structural := &StructuralValidation{Score: tt.score}
			for i := 0; i < tt.criticals; i++ {
				structural.CriticalIssues = append(structural.CriticalIssues, Issue{Severity: SeverityCritical})
			}
			got, err := ComputeOverallAssessment(structural,
				&FairnessReview{BiasScore: tt.score},
				&ComplianceCheck{ComplianceScore: tt.score},
				&QualityReview{QualityScore: tt.score})
			require.NoError(t, err)
			require.Equal(t, tt.want, got.ReadinessLevel)
		})
	}
}

func TestComputeOverallAssessment_ActionsAndPriorities(t *testing.T) {
	got, err := ComputeOverallAssessment(
		&StructuralValidation{Score: 55},
		&FairnessReview{BiasScore: 70},
		&ComplianceCheck{ComplianceScore: 79},
		&QualityReview{QualityScore: 90},
	)
	require.NoError(t, err)

	require.Equal(t, []string{
		"Resolve structural validation failures before publishing",
		"Review requirement language for exclusionary or vendor-specific terms",
		"Address the regulatory gaps flagged by the compliance review",
	}, got.RecommendedActions)

	require.Equal(t, []ImprovementPriority{
		{Area: "structural", Priority: "high", Impact: "Blocks automated validation and supplier parsing"},
		{Area: "fairness", Priority: "medium", Impact: "Risks protest on competition grounds"},
	}, got.ImprovementPriorities)

	require.Equal(t, []string{"Content quality"}, got.StrengthAreas)
}

func TestComputeOverallAssessment_MissingInputFailsLoudly(t *testing.T) {
	structural, fairness, compliance, quality := cleanAssessments()

	_, err := ComputeOverallAssessment(nil, fairness, compliance, quality)
	require.ErrorIs(t, err, ErrMissingAssessment)

	_, err = ComputeOverallAssessment(structural, fairness, nil, quality)
	require.ErrorIs(t, err, ErrMissingAssessment)
}
