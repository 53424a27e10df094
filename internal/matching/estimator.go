package matching

import (
	"math"
	"math/rand"
	"strings"

	"github.com/samuel/fed-rfq/internal/models"
)

// Market variance bounds for price estimation. The random factor is drawn
// uniformly from [priceFactorMin, priceFactorMax].
const (
	priceFactorMin = 0.85
	priceFactorMax = 1.15
)

const (
	baseDeliveryDays = 30
	tmDeliveryDays   = 14
)

// Estimator derives price and lead-time estimates for (opportunity, supplier)
// pairs. The random source is injected so tests can substitute a fixed
// sequence; production uses math/rand's global uniform source.
type Estimator struct {
	// Rand returns a uniform float in [0, 1).
	Rand func() float64
}

func NewEstimator() *Estimator {
	return &Estimator{Rand: rand.Float64}
}

// EstimatePricing returns an estimated quote price, or nil when the
// opportunity carries no estimated value. A missing estimate must stay
// distinguishable from a free contract.
//
// price = round(baseValue * ratingMultiplier * randomFactor), where
// ratingMultiplier = 0.9 + (rating/5)*0.2 and randomFactor is uniform in
// [0.85, 1.15]. The result therefore always lies within
// [0.765*baseValue, 1.265*baseValue].
func (e *Estimator) EstimatePricing(opp models.Opportunity, supplier models.Supplier) *float64 {
	if opp.EstimatedValue <= 0 {
		return nil
	}

	ratingMultiplier := 0.9 + ParseRating(supplier.Rating)/5*0.2
	randomFactor := priceFactorMin + e.Rand()*(priceFactorMax-priceFactorMin)

	price := math.Round(opp.EstimatedValue * ratingMultiplier * randomFactor)
	return &price
}

// EstimateDeliveryDays estimates lead time in days. Base 30; time-and-materials
// contracts reset the base to 14; an "urgent" description multiplies by 0.7;
// a GSA schedule multiplies by 0.8. Multipliers apply in that order,
// compounding, with rounding after each.
func (e *Estimator) EstimateDeliveryDays(opp models.Opportunity, supplier models.Supplier) int {
	days := float64(baseDeliveryDays)
	if opp.ContractType == models.ContractTimeAndMaterials {
		days = tmDeliveryDays
	}
	if strings.Contains(strings.ToLower(opp.Description), "urgent") {
		days = math.Round(days * 0.7)
	}
	if supplier.GSASchedule {
		days = math.Round(days * 0.8)
	}
	return int(days)
}
