package ingest

import (
	"strings"
	"time"

	"github.com/samuel/fed-rfq/internal/models"
)

// StatusDecision is the outcome of the status ladder for one notice.
type StatusDecision struct {
	Status     string
	Reason     string
	Confidence float64
}

// ComputeStatusDecision decides a notice's lifecycle status. Checks run top
// to bottom and the first match wins:
//
//  1. source says awarded/cancelled        -> closed
//  2. source raw status maps to closed and
//     no future deadline contradicts it    -> closed
//  3. posted date in the future            -> upcoming
//  4. response deadline passed             -> expired
//  5. response deadline in the future      -> active
//  6. source says open but no deadline     -> needs_review
//  7. anything else                        -> needs_review
func ComputeStatusDecision(opp models.Opportunity, sourceStatusRaw string, now time.Time) StatusDecision {
	now = now.UTC()

	mapped := mapSourceStatusRaw(sourceStatusRaw)

	if mapped == "awarded" || mapped == "cancelled" {
		return StatusDecision{Status: models.StatusClosed, Reason: "source_" + mapped, Confidence: 0.95}
	}

	if mapped == "closed" {
		if opp.ResponseDeadline != nil && opp.ResponseDeadline.After(now) {
			return StatusDecision{Status: models.StatusNeedsReview, Reason: "inconsistent_dates", Confidence: 0.35}
		}
		return StatusDecision{Status: models.StatusClosed, Reason: "source_closed", Confidence: 0.92}
	}

	if opp.PostedAt != nil && opp.PostedAt.After(now) {
		return StatusDecision{Status: models.StatusUpcoming, Reason: "posted_date_in_future", Confidence: 0.9}
	}

	if opp.ResponseDeadline != nil {
		if opp.ResponseDeadline.After(now) {
			return StatusDecision{Status: models.StatusActive, Reason: "future_deadline", Confidence: 0.93}
		}
		return StatusDecision{Status: models.StatusExpired, Reason: "deadline_passed", Confidence: 0.95}
	}

	if mapped == "active" {
		return StatusDecision{Status: models.StatusNeedsReview, Reason: "source_active_without_deadline", Confidence: 0.3}
	}

	return StatusDecision{Status: models.StatusNeedsReview, Reason: "missing_deadline", Confidence: 0.25}
}

func mapSourceStatusRaw(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	awardedHints := []string{"awarded", "award notice"}
	for _, hint := range awardedHints {
		if strings.Contains(raw, hint) {
			return "awarded"
		}
	}

	cancelledHints := []string{"cancel", "withdrawn", "rescinded"}
	for _, hint := range cancelledHints {
		if strings.Contains(raw, hint) {
			return "cancelled"
		}
	}

	closedHints := []string{"closed", "archived", "inactive", "expired", "no longer accepting"}
	for _, hint := range closedHints {
		if strings.Contains(raw, hint) {
			return "closed"
		}
	}

	activeHints := []string{"active", "open", "posted", "solicitation", "combined synopsis"}
	for _, hint := range activeHints {
		if strings.Contains(raw, hint) {
			return "active"
		}
	}

	return ""
}
