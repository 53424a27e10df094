package ingest

import (
	"testing"
	"time"

	"github.com/samuel/fed-rfq/internal/models"
)

func TestComputeStatusDecision_AwardedClosed(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)

	// Award beats a future deadline.
	decision := ComputeStatusDecision(models.Opportunity{ResponseDeadline: &future}, "Award Notice", now)
	if decision.Status != models.StatusClosed {
		t.Fatalf("expected closed, got %s", decision.Status)
	}
	if decision.Reason != "source_awarded" {
		t.Fatalf("expected reason source_awarded, got %s", decision.Reason)
	}
}

func TestComputeStatusDecision_CancelledClosed(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	decision := ComputeStatusDecision(models.Opportunity{}, "Cancelled by agency", now)
	if decision.Status != models.StatusClosed {
		t.Fatalf("expected closed, got %s", decision.Status)
	}
}

func TestComputeStatusDecision_SourceClosedWithFutureDeadlineNeedsReview(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)

	decision := ComputeStatusDecision(models.Opportunity{ResponseDeadline: &future}, "closed", now)
	if decision.Status != models.StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", decision.Status)
	}
	if decision.Reason != "inconsistent_dates" {
		t.Fatalf("expected reason inconsistent_dates, got %s", decision.Reason)
	}
}

func TestComputeStatusDecision_FuturePostedUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	posted := now.Add(48 * time.Hour)
	deadline := now.Add(30 * 24 * time.Hour)

	decision := ComputeStatusDecision(models.Opportunity{PostedAt: &posted, ResponseDeadline: &deadline}, "", now)
	if decision.Status != models.StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", decision.Status)
	}
}

func TestComputeStatusDecision_PastDeadlineExpired(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	decision := ComputeStatusDecision(models.Opportunity{ResponseDeadline: &past}, "", now)
	if decision.Status != models.StatusExpired {
		t.Fatalf("expected expired, got %s", decision.Status)
	}
}

func TestComputeStatusDecision_FutureDeadlineActive(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	future := now.Add(14 * 24 * time.Hour)

	decision := ComputeStatusDecision(models.Opportunity{ResponseDeadline: &future}, "posted", now)
	if decision.Status != models.StatusActive {
		t.Fatalf("expected active, got %s", decision.Status)
	}
}

func TestComputeStatusDecision_SourceActiveWithoutDeadlineNeedsReview(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	decision := ComputeStatusDecision(models.Opportunity{}, "active", now)
	if decision.Status != models.StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", decision.Status)
	}
	if decision.Reason != "source_active_without_deadline" {
		t.Fatalf("expected reason source_active_without_deadline, got %s", decision.Reason)
	}
}

func TestComputeStatusDecision_NoEvidenceNeedsReview(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	decision := ComputeStatusDecision(models.Opportunity{}, "", now)
	if decision.Status != models.StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", decision.Status)
	}
	if decision.Reason != "missing_deadline" {
		t.Fatalf("expected reason missing_deadline, got %s", decision.Reason)
	}
}
