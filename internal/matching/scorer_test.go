package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/samuel/fed-rfq/internal/models"
)

func testOpportunity() models.Opportunity {
	deadline := time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC)
	return models.Opportunity{
		ID:               uuid.New(),
		Title:            "IT Support Services",
		Description:      "Cloud migration and help desk support for regional offices",
		NaicsCode:        "541511",
		SetAside:         models.SetAsideNone,
		EstimatedValue:   100000,
		ResponseDeadline: &deadline,
		ContractType:     models.ContractFixedPrice,
		Status:           models.StatusActive,
	}
}

func TestScoreSupplierMatch_DocumentedExample(t *testing.T) {
	// NAICS exact (100*0.30) + GSA (100*0.20) + open competition (80*0.25)
	// + rating 4.5 (90*0.15) + neutral capabilities (50*0.10) = 88.5 -> 89.
	opp := testOpportunity()
	supplier := models.Supplier{
		ID:          uuid.New(),
		Name:        "Acme Federal",
		NaicsCodes:  []string{"541511"},
		Rating:      "4.5",
		GSASchedule: true,
		Active:      true,
	}

	match := ScoreSupplierMatch(opp, supplier)
	require.Equal(t, 89, match.MatchScore)
	require.Equal(t, []string{
		"Exact NAICS code match",
		"GSA Schedule holder",
		"Highly rated supplier (4.5/5)",
		"Strong overall match",
	}, match.Reasoning)
}

func TestScoreSupplierMatch_Deterministic(t *testing.T) {
	opp := testOpportunity()
	opp.SetAside = models.SetAsideVeteranOwned
	supplier := models.Supplier{
		ID:             uuid.New(),
		Name:           "Veteran Tech LLC",
		NaicsCodes:     []string{"541512"},
		Certifications: []string{"SDVOSB"},
		Capabilities:   []string{"cloud migration"},
		Rating:         "3.8",
	}

	first := ScoreSupplierMatch(opp, supplier)
	second := ScoreSupplierMatch(opp, supplier)
	require.Equal(t, first.MatchScore, second.MatchScore)
	require.Equal(t, first.Reasoning, second.Reasoning)
}

func TestScoreSupplierMatch_ScoreInRange(t *testing.T) {
	opp := testOpportunity()
	suppliers := []models.Supplier{
		{},
		{NaicsCodes: []string{"541511"}, Rating: "5", GSASchedule: true, Capabilities: []string{"cloud"}},
		{NaicsCodes: []string{"999999"}, Rating: "bogus"},
	}
	for _, supplier := range suppliers {
		match := ScoreSupplierMatch(opp, supplier)
		require.GreaterOrEqual(t, match.MatchScore, 0)
		require.LessOrEqual(t, match.MatchScore, 100)
	}
}

func TestScoreSupplierMatch_ReasoningOrder(t *testing.T) {
	opp := testOpportunity()
	opp.SetAside = models.SetAsideWomanOwned
	supplier := models.Supplier{
		Name:           "Full House Inc",
		NaicsCodes:     []string{"541511"},
		Certifications: []string{"WOSB Certified"},
		Capabilities:   []string{"cloud migration", "help desk"},
		Rating:         "4.9",
		GSASchedule:    true,
	}

	match := ScoreSupplierMatch(opp, supplier)
	require.Equal(t, []string{
		"Exact NAICS code match",
		"GSA Schedule holder",
		"Meets WOSB set-aside requirements",
		"Highly rated supplier (4.9/5)",
		"Strong overall match",
	}, match.Reasoning)
}

func TestDefaultWeightsValid(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	require.InDelta(t, 1.0, DefaultWeights().Sum(), 0.0001)
}
