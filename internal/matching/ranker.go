package matching

import (
	"sort"

	"github.com/samuel/fed-rfq/internal/models"
)

// RankSuppliers scores every supplier in the pool against the opportunity,
// annotates each match with pricing and delivery estimates, and returns the
// top matches sorted by descending score, truncated to limit.
//
// The sort is stable: suppliers with equal scores keep their input order, so
// "top N" results are reproducible for a given pool ordering. Callers are
// responsible for pre-filtering inactive suppliers; no activity filtering
// happens here.
func RankSuppliers(opp models.Opportunity, suppliers []models.Supplier, estimator *Estimator, limit int) []models.SupplierMatch {
	matches := make([]models.SupplierMatch, 0, len(suppliers))
	for _, supplier := range suppliers {
		match := ScoreSupplierMatch(opp, supplier)
		match.EstimatedPrice = estimator.EstimatePricing(opp, supplier)
		match.EstimatedDeliveryDays = estimator.EstimateDeliveryDays(opp, supplier)
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
