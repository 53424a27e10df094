package assessment

import (
	"context"
	"fmt"
	"sync"

	"github.com/samuel/fed-rfq/internal/models"
)

// AssessRFQ runs the four analyses concurrently and aggregates the results.
// The analyses are mutually independent and have no ordering requirement, but
// aggregation waits for all four; there is no partial or streaming verdict.
// Any failed analysis fails the whole assessment.
func AssessRFQ(ctx context.Context, client Completer, rfq models.RFQ) (*OverallAssessment, error) {
	var (
		wg sync.WaitGroup

		structural *StructuralValidation
		fairness   *FairnessReview
		compliance *ComplianceCheck
		quality    *QualityReview

		structuralErr, fairnessErr, complianceErr, qualityErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		structural, structuralErr = AnalyzeStructure(ctx, client, rfq)
	}()
	go func() {
		defer wg.Done()
		fairness, fairnessErr = AnalyzeFairness(ctx, client, rfq)
	}()
	go func() {
		defer wg.Done()
		compliance, complianceErr = AnalyzeCompliance(ctx, client, rfq)
	}()
	go func() {
		defer wg.Done()
		quality, qualityErr = AnalyzeQuality(ctx, client, rfq)
	}()
	wg.Wait()

	for _, err := range []error{structuralErr, fairnessErr, complianceErr, qualityErr} {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingAssessment, err)
		}
	}

	return ComputeOverallAssessment(structural, fairness, compliance, quality)
}
