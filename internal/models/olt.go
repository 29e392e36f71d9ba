package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OltAssignment ties an OLT device IP to an employee pers number
type OltAssignment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PersNo    string    `db:"pers_no" json:"pers_no"`
	OltIP     string    `db:"olt_ip" json:"olt_ip"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OltReportRow groups OLT assignments for one pers number
type OltReportRow struct {
	PersNo       string      `db:"pers_no" json:"pers_no"`
	EmployeeName *string     `db:"employee_name" json:"employee_name,omitempty"`
	OltIPs       StringArray `db:"olt_ips" json:"olt_ips"`
	OltCount     int         `db:"olt_count" json:"olt_count"`
}

// KamAccount is an enterprise customer owned by a key account manager
type KamAccount struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	KamPersNo    string          `db:"kam_pers_no" json:"kam_pers_no"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Circle       string          `db:"circle" json:"circle"`
	Segment      NullString      `db:"segment" json:"segment,omitempty"`
	Revenue      decimal.Decimal `db:"revenue" json:"revenue"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// KamReportRow groups KAM accounts for one manager
type KamReportRow struct {
	KamPersNo    string          `db:"kam_pers_no" json:"kam_pers_no"`
	KamName      *string         `db:"kam_name" json:"kam_name,omitempty"`
	AccountCount int             `db:"account_count" json:"account_count"`
	TotalRevenue decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

// SkippedRow explains why an import row was not stored
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of a bulk CSV import; Imported+Skipped == Total
type ImportResult struct {
	Total       int          `json:"total"`
	Imported    int          `json:"imported"`
	Skipped     int          `json:"skipped"`
	SkippedRows []SkippedRow `json:"skipped_rows"`
}
