package models

import (
	"time"

	"github.com/google/uuid"
)

// Set-aside codes as published on the notice. Empty string means open
// competition.
const (
	SetAsideNone         = ""
	SetAsideSmallBiz     = "SBA"
	SetAsideVeteranOwned = "SDVOSB"
	SetAsideWomanOwned   = "WOSB"
	SetAsideHUBZone      = "HUBZone"
	SetAside8a           = "8A"
)

// Contract type codes.
const (
	ContractFixedPrice       = "FFP"
	ContractCostPlus         = "CPFF"
	ContractTimeAndMaterials = "T&M"
	ContractIDIQ             = "IDIQ"
)

// Opportunity statuses. Transitions are driven by the ingest status engine;
// opportunities are otherwise immutable after ingestion.
const (
	StatusActive      = "active"
	StatusUpcoming    = "upcoming"
	StatusExpired     = "expired"
	StatusClosed      = "closed"
	StatusNeedsReview = "needs_review"
)

type Opportunity struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"` // Sanitized plain text
	SolicitationNumber string     `json:"solicitation_number"`
	AgencyName         string     `json:"agency_name"`
	AgencyCode         string     `json:"agency_code"`
	NaicsCode          string     `json:"naics_code"`
	SetAside           string     `json:"set_aside"`
	EstimatedValue     float64    `json:"estimated_value"` // Whole USD, 0 = unknown
	ResponseDeadline   *time.Time `json:"response_deadline"`
	PostedAt           *time.Time `json:"posted_at"`
	ContractType       string     `json:"contract_type"`
	Status             string     `json:"status"`
	StatusReason       string     `json:"status_reason"`
	SourceDomain       string     `json:"source_domain"`
	SourceID           string     `json:"source_id"`
	ExternalURL        string     `json:"external_url"`
	AttachmentURLs     []string   `json:"attachment_urls"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
