package domain

import (
	"context"
	"time"
)

// ContactInfo is how a shopper asked to be reached about a lead.
type ContactInfo struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	PreferredContact string `json:"preferred_contact"`
}

// Lead is a shopper's request to be contacted by a local dealer.
type Lead struct {
	ID          string      `json:"id"`
	VehicleIDs  []string    `json:"vehicle_ids"`
	EstimateID  string      `json:"estimate_id,omitempty"`
	ContactInfo ContactInfo `json:"contact_info"`
	PostalCode  string      `json:"postal_code"`
	Message     string      `json:"message,omitempty"`
	Status      string      `json:"status"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

// LeadStatusNew is the status of a lead that no dealer has picked up yet.
const LeadStatusNew = "new"

// LeadPublisher hands accepted leads to the downstream dealer systems.
type LeadPublisher interface {
	PublishLead(ctx context.Context, lead Lead) error
}
