package matching

import (
	"fmt"
	"math"

	"github.com/samuel/fed-rfq/internal/models"
)

// Match band thresholds for the overall reasoning line.
const (
	strongMatchThreshold = 80
	goodMatchThreshold   = 60
)

// highRatingThreshold marks the parsed rating at which a supplier is called
// out as highly rated.
const highRatingThreshold = 4.0

// ScoreSupplierMatch computes the weighted match score and human-readable
// reasoning for one (opportunity, supplier) pair. The result is a pure,
// deterministic function of its inputs; pricing and delivery annotations are
// added separately by the Estimator.
//
// Reasoning entries follow the fixed check order: NAICS, GSA, set-aside,
// rating, overall band. Callers and tests rely on that order.
func ScoreSupplierMatch(opp models.Opportunity, supplier models.Supplier) models.SupplierMatch {
	weights := DefaultWeights()

	naics := NaicsAlignment(opp.NaicsCode, supplier.NaicsCodes)
	gsa := GSABonus(supplier.GSASchedule)
	setAside := SetAsideCompliance(opp.SetAside, supplier.Certifications)
	rating := RatingScore(supplier.Rating)
	capability := CapabilityOverlap(opp.Description, supplier.Capabilities)

	total := naics.Score*weights.NaicsAlignment +
		gsa*weights.GSABonus +
		setAside.Score*weights.SetAsideCompliance +
		rating*weights.Rating +
		capability*weights.CapabilityOverlap
	matchScore := int(math.Round(total))

	var reasoning []string
	if naics.ExactMatch {
		reasoning = append(reasoning, "Exact NAICS code match")
	}
	if supplier.GSASchedule {
		reasoning = append(reasoning, "GSA Schedule holder")
	}
	if setAside.Matched {
		reasoning = append(reasoning, fmt.Sprintf("Meets %s set-aside requirements", opp.SetAside))
	}
	if parsed := ParseRating(supplier.Rating); parsed >= highRatingThreshold {
		reasoning = append(reasoning, fmt.Sprintf("Highly rated supplier (%.1f/5)", parsed))
	}
	if matchScore >= strongMatchThreshold {
		reasoning = append(reasoning, "Strong overall match")
	} else if matchScore >= goodMatchThreshold {
		reasoning = append(reasoning, "Good overall match")
	}

	return models.SupplierMatch{
		OpportunityID: opp.ID,
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		MatchScore:    matchScore,
		Reasoning:     reasoning,
	}
}
