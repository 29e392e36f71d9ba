package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesReportStatus is the approval state of a sales report
type SalesReportStatus string

const (
	SalesReportPending  SalesReportStatus = "pending"
	SalesReportApproved SalesReportStatus = "approved"
	SalesReportRejected SalesReportStatus = "rejected"
)

// IsTerminal reports whether the report has already been reviewed
func (s SalesReportStatus) IsTerminal() bool {
	return s == SalesReportApproved || s == SalesReportRejected
}

// IsValid reports whether s is a known status
func (s SalesReportStatus) IsValid() bool {
	return s == SalesReportPending || s.IsTerminal()
}

// SalesReport is a staff-submitted sales tally awaiting manager review
type SalesReport struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	EventID       *uuid.UUID        `db:"event_id" json:"event_id,omitempty"`
	SalesStaffID  uuid.UUID         `db:"sales_staff_id" json:"sales_staff_id"`
	StaffName     string            `db:"staff_name" json:"staff_name,omitempty"`
	SimsSold      int               `db:"sims_sold" json:"sims_sold"`
	SimsActivated int               `db:"sims_activated" json:"sims_activated"`
	FtthSold      int               `db:"ftth_sold" json:"ftth_sold"`
	FtthActivated int               `db:"ftth_activated" json:"ftth_activated"`
	CustomerType  string            `db:"customer_type" json:"customer_type"`
	Remarks       *string           `db:"remarks" json:"remarks,omitempty"`
	Status        SalesReportStatus `db:"status" json:"status"`
	ReviewedBy    *uuid.UUID        `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time        `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewRemarks *string           `db:"review_remarks" json:"review_remarks,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// CreateSalesReportRequest is the body of salesReports.create
type CreateSalesReportRequest struct {
	SalesCounts
	EventID      *string `json:"event_id" binding:"omitempty,uuid"`
	CustomerType string  `json:"customer_type" binding:"required,oneof=individual business government"`
	Remarks      *string `json:"remarks" binding:"omitempty,max=1000"`
}

// ReviewSalesReportRequest is the body of approve / reject
type ReviewSalesReportRequest struct {
	Remarks *string `json:"remarks" binding:"omitempty,max=1000"`
}

// SalesReportFilter narrows salesReports.getAll
type SalesReportFilter struct {
	Status       SalesReportStatus
	SalesStaffID *uuid.UUID
}
