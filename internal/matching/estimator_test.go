package matching

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuel/fed-rfq/internal/models"
)

// fixedEstimator returns an Estimator whose random source always yields r.
func fixedEstimator(r float64) *Estimator {
	return &Estimator{Rand: func() float64 { return r }}
}

func TestEstimatePricing_NoValueNoEstimate(t *testing.T) {
	opp := testOpportunity()
	opp.EstimatedValue = 0

	price := NewEstimator().EstimatePricing(opp, models.Supplier{Rating: "5"})
	require.Nil(t, price, "zero would be indistinguishable from free")
}

func TestEstimatePricing_FixedRandom(t *testing.T) {
	opp := testOpportunity() // value 100000

	// Rand=0 -> randomFactor 0.85; rating 5 -> multiplier 1.1.
	price := fixedEstimator(0).EstimatePricing(opp, models.Supplier{Rating: "5"})
	require.NotNil(t, price)
	require.Equal(t, 93500.0, *price)

	// Rand=1 -> randomFactor 1.15; missing rating -> multiplier 0.9.
	price = fixedEstimator(1).EstimatePricing(opp, models.Supplier{})
	require.NotNil(t, price)
	require.Equal(t, 103500.0, *price)
}

func TestEstimatePricing_WithinDocumentedBounds(t *testing.T) {
	opp := testOpportunity()
	estimator := NewEstimator()
	supplier := models.Supplier{Rating: "4.5"}

	for i := 0; i < 200; i++ {
		price := estimator.EstimatePricing(opp, supplier)
		require.NotNil(t, price)
		require.GreaterOrEqual(t, *price, 0.765*opp.EstimatedValue)
		require.LessOrEqual(t, *price, 1.265*opp.EstimatedValue)
	}
}

func TestEstimateDeliveryDays(t *testing.T) {
	estimator := NewEstimator()

	tests := []struct {
		name         string
		contractType string
		description  string
		gsa          bool
		want         int
	}{
		{"base", models.ContractFixedPrice, "routine services", false, 30},
		{"time and materials", models.ContractTimeAndMaterials, "routine services", false, 14},
		{"urgent", models.ContractFixedPrice, "URGENT replacement needed", false, 21},
		{"gsa holder", models.ContractFixedPrice, "routine services", true, 24},
		{"urgent then gsa compound", models.ContractFixedPrice, "urgent work", true, 17}, // 30*0.7=21, 21*0.8=16.8->17
		{"tm urgent gsa", models.ContractTimeAndMaterials, "urgent work", true, 8},       // 14*0.7=9.8->10, 10*0.8=8
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := testOpportunity()
			opp.ContractType = tt.contractType
			opp.Description = tt.description
			got := estimator.EstimateDeliveryDays(opp, models.Supplier{GSASchedule: tt.gsa})
			require.Equal(t, tt.want, got)
		})
	}
}
