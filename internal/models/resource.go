package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType is the kind of stock tracked by the ledger
type ResourceType string

const (
	ResourceSIM  ResourceType = "SIM"
	ResourceFTTH ResourceType = "FTTH"
)

// IsValid reports whether t is a known resource type
func (t ResourceType) IsValid() bool {
	return t == ResourceSIM || t == ResourceFTTH
}

// Resource is one circle's stock counter for a resource type.
// remaining is always total - used; allocated is a soft reservation.
type Resource struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Type      ResourceType `db:"type" json:"type"`
	Circle    string       `db:"circle" json:"circle"`
	Total     int          `db:"total" json:"total"`
	Allocated int          `db:"allocated" json:"allocated"`
	Used      int          `db:"used" json:"used"`
	Remaining int          `db:"remaining" json:"remaining"`
	UpdatedBy *uuid.UUID   `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// ResourceTypeSummary is the roll-up of one resource type across circles
type ResourceTypeSummary struct {
	Type      ResourceType `db:"type" json:"type"`
	Circles   int          `db:"circles" json:"circles"`
	Total     int          `db:"total" json:"total"`
	Allocated int          `db:"allocated" json:"allocated"`
	Used      int          `db:"used" json:"used"`
	Remaining int          `db:"remaining" json:"remaining"`
}

// UpdateStockRequest sets a circle's total stock
type UpdateStockRequest struct {
	NewTotal *int `json:"new_total" binding:"required"`
}
