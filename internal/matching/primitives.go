package matching

import (
	"strconv"
	"strings"

	"github.com/samuel/fed-rfq/internal/models"
)

// Neutral constants. These are fixed contract values inherited from the
// original scoring policy; they are not derived and must not be tuned.
const (
	scoreNeutralNoNaics      = 50.0 // opportunity carries no NAICS code
	scoreOpenCompetition     = 80.0 // no set-aside: not a blocker, not a bonus
	scoreNeutralNoCapability = 50.0 // insufficient information, not a penalty
	scoreNoGSASchedule       = 70.0 // absence of a schedule is not disqualifying
)

// naicsPrefixLen is the number of leading digits that count as an industry
// family match (e.g. 5415xx "Computer Systems Design and Related Services").
const naicsPrefixLen = 4

// setAsideCertHints maps a set-aside code to certification substrings that
// satisfy it, matched case-insensitively. Certification expiration and
// authenticity are NOT checked here; that is a known limitation carried over
// from the original policy.
var setAsideCertHints = map[string][]string{
	models.SetAsideSmallBiz:     {"small business", "sba certified", "small disadvantaged"},
	models.SetAsideVeteranOwned: {"veteran", "sdvosb", "vosb"},
	models.SetAsideWomanOwned:   {"woman", "women", "wosb", "edwosb"},
	models.SetAsideHUBZone:      {"hubzone"},
	models.SetAside8a:           {"8(a)", "8a certified"},
}

// NaicsResult is the outcome of NAICS alignment scoring.
type NaicsResult struct {
	Score      float64
	ExactMatch bool
}

// NaicsAlignment scores how well a supplier's NAICS codes cover the
// opportunity's code: exact membership 100, shared 4-digit family 70,
// no code on the opportunity 50 (neutral), otherwise 0. A supplier with no
// codes at all scores 0, never neutral.
func NaicsAlignment(oppCode string, supplierCodes []string) NaicsResult {
	if len(supplierCodes) == 0 {
		return NaicsResult{Score: 0}
	}
	if oppCode == "" {
		return NaicsResult{Score: scoreNeutralNoNaics}
	}

	for _, code := range supplierCodes {
		if code == oppCode {
			return NaicsResult{Score: 100, ExactMatch: true}
		}
	}

	if len(oppCode) >= naicsPrefixLen {
		prefix := oppCode[:naicsPrefixLen]
		for _, code := range supplierCodes {
			if strings.HasPrefix(code, prefix) {
				return NaicsResult{Score: 70}
			}
		}
	}

	return NaicsResult{Score: 0}
}

// SetAsideResult is the outcome of set-aside compliance scoring.
type SetAsideResult struct {
	Score   float64
	Matched bool
}

// SetAsideCompliance checks supplier certifications against the set-aside
// category: any certification containing an acceptable substring scores 100,
// otherwise 0. No set-aside means open competition and scores 80.
func SetAsideCompliance(setAsideCode string, certifications []string) SetAsideResult {
	if setAsideCode == models.SetAsideNone {
		return SetAsideResult{Score: scoreOpenCompetition}
	}

	hints := setAsideCertHints[setAsideCode]
	for _, cert := range certifications {
		lower := strings.ToLower(cert)
		for _, hint := range hints {
			if strings.Contains(lower, hint) {
				return SetAsideResult{Score: 100, Matched: true}
			}
		}
	}

	return SetAsideResult{Score: 0}
}

// ParseRating parses a decimal rating string defensively: non-numeric or
// missing values resolve to 0, and the result is clamped to [0, 5].
func ParseRating(ratingText string) float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(ratingText), 64)
	if err != nil {
		return 0
	}
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// RatingScore scales a 0-5 rating text linearly to [0, 100].
func RatingScore(ratingText string) float64 {
	return ParseRating(ratingText) / 5 * 100
}

// CapabilityOverlap scores how many supplier capability tags appear in the
// opportunity description. A capability counts if it contains a description
// token or the whole description contains the capability. Empty inputs on
// either side score 50: insufficient information, not a penalty.
func CapabilityOverlap(description string, capabilities []string) float64 {
	if strings.TrimSpace(description) == "" || len(capabilities) == 0 {
		return scoreNeutralNoCapability
	}

	descLower := strings.ToLower(description)
	tokens := strings.Fields(descLower)

	matched := 0
	for _, capability := range capabilities {
		capLower := strings.ToLower(strings.TrimSpace(capability))
		if capLower == "" {
			continue
		}
		if strings.Contains(descLower, capLower) {
			matched++
			continue
		}
		for _, token := range tokens {
			if strings.Contains(capLower, token) {
				matched++
				break
			}
		}
	}

	score := float64(matched) / float64(len(capabilities)) * 100
	if score > 100 {
		score = 100
	}
	return score
}

// GSABonus scores schedule eligibility: 100 for holders, 70 otherwise.
func GSABonus(hasSchedule bool) float64 {
	if hasSchedule {
		return 100
	}
	return scoreNoGSASchedule
}
