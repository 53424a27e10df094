package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQ statuses.
const (
	RFQDraft     = "draft"
	RFQPublished = "published"
	RFQClosed    = "closed"
)

type RFQ struct {
	ID            uuid.UUID  `json:"id"`
	OpportunityID uuid.UUID  `json:"opportunity_id"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	Title         string     `json:"title"`
	Scope         string     `json:"scope"`
	Instructions  string     `json:"instructions"`
	DueAt         *time.Time `json:"due_at"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Quote is a supplier's priced response to a published RFQ.
type Quote struct {
	ID           uuid.UUID `json:"id"`
	RFQID        uuid.UUID `json:"rfq_id"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name,omitempty"`
	Price        float64   `json:"price"` // Whole USD
	DeliveryDays int       `json:"delivery_days"`
	Notes        string    `json:"notes"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
