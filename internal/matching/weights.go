package matching

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scoring factor.
// All weights must sum to 1.0.
type WeightSet struct {
	NaicsAlignment     float64
	GSABonus           float64
	SetAsideCompliance float64
	Rating             float64
	CapabilityOverlap  float64
}

// DefaultWeights is business policy, not a tunable: identical input data must
// reproduce identical rankings across releases.
func DefaultWeights() WeightSet {
	return WeightSet{
		NaicsAlignment:     0.30,
		GSABonus:           0.20,
		SetAsideCompliance: 0.25,
		Rating:             0.15,
		CapabilityOverlap:  0.10,
	}
}

func (w WeightSet) Sum() float64 {
	return w.NaicsAlignment + w.GSABonus + w.SetAsideCompliance + w.Rating + w.CapabilityOverlap
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.NaicsAlignment, w.GSABonus, w.SetAsideCompliance, w.Rating, w.CapabilityOverlap} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}
