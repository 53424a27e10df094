package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/samuel/fed-rfq/internal/models"
)

func TestRankSuppliers_SortedAndTruncated(t *testing.T) {
	opp := testOpportunity()
	suppliers := []models.Supplier{
		{ID: uuid.New(), Name: "No Fit", NaicsCodes: []string{"236220"}},
		{ID: uuid.New(), Name: "Exact Fit", NaicsCodes: []string{"541511"}, Rating: "4.5", GSASchedule: true},
		{ID: uuid.New(), Name: "Family Fit", NaicsCodes: []string{"541512"}, Rating: "3.0"},
	}

	matches := RankSuppliers(opp, suppliers, fixedEstimator(0.5), 2)
	require.Len(t, matches, 2)
	require.Equal(t, "Exact Fit", matches[0].SupplierName)
	require.Equal(t, "Family Fit", matches[1].SupplierName)
	require.GreaterOrEqual(t, matches[0].MatchScore, matches[1].MatchScore)
	require.NotNil(t, matches[0].EstimatedPrice)
	require.Greater(t, matches[0].EstimatedDeliveryDays, 0)
}

func TestRankSuppliers_LimitLargerThanPool(t *testing.T) {
	opp := testOpportunity()
	suppliers := []models.Supplier{
		{ID: uuid.New(), Name: "Only One", NaicsCodes: []string{"541511"}},
	}

	matches := RankSuppliers(opp, suppliers, fixedEstimator(0.5), 10)
	require.Len(t, matches, 1)
}

func TestRankSuppliers_TieKeepsInputOrder(t *testing.T) {
	opp := testOpportunity()
	// Identical profiles score identically; the stable sort must keep input order.
	first := models.Supplier{ID: uuid.New(), Name: "First In", NaicsCodes: []string{"541511"}, Rating: "4.0"}
	second := models.Supplier{ID: uuid.New(), Name: "Second In", NaicsCodes: []string{"541511"}, Rating: "4.0"}

	matches := RankSuppliers(opp, []models.Supplier{first, second}, fixedEstimator(0.5), 0)
	require.Len(t, matches, 2)
	require.Equal(t, matches[0].MatchScore, matches[1].MatchScore)
	require.Equal(t, "First In", matches[0].SupplierName)
	require.Equal(t, "Second In", matches[1].SupplierName)
}

func TestRankSuppliers_EmptyPool(t *testing.T) {
	matches := RankSuppliers(testOpportunity(), nil, fixedEstimator(0.5), 5)
	require.Empty(t, matches)
}
