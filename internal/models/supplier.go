package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor profile. Ratings come from upstream imports as decimal
// text ("4.5") and are parsed defensively at scoring time.
type Supplier struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NaicsCodes     []string  `json:"naics_codes"`
	Certifications []string  `json:"certifications"`
	Capabilities   []string  `json:"capabilities"`
	Rating         string    `json:"rating"`
	GSASchedule    bool      `json:"gsa_schedule"`
	Active         bool      `json:"active"`
	ContactEmail   string    `json:"contact_email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SupplierMatch is a derived, ephemeral result for one (opportunity, supplier)
// pair. It is recomputed on demand and never stored as a first-class entity.
type SupplierMatch struct {
	OpportunityID         uuid.UUID `json:"opportunity_id"`
	SupplierID            uuid.UUID `json:"supplier_id"`
	SupplierName          string    `json:"supplier_name"`
	MatchScore            int       `json:"match_score"` // 0-100
	Reasoning             []string  `json:"reasoning"`
	EstimatedPrice        *float64  `json:"estimated_price,omitempty"` // Whole USD
	EstimatedDeliveryDays int       `json:"estimated_delivery_days"`
}
