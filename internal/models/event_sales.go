package models

import (
	"time"

	"github.com/google/uuid"
)

// EventSalesEntry is one append-only sales submission against an assignment
type EventSalesEntry struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	EventID       uuid.UUID   `db:"event_id" json:"event_id"`
	EmployeeID    uuid.UUID   `db:"employee_id" json:"employee_id"`
	EmployeeName  string      `db:"employee_name" json:"employee_name,omitempty"`
	SimsSold      int         `db:"sims_sold" json:"sims_sold"`
	SimsActivated int         `db:"sims_activated" json:"sims_activated"`
	FtthSold      int         `db:"ftth_sold" json:"ftth_sold"`
	FtthActivated int         `db:"ftth_activated" json:"ftth_activated"`
	CustomerType  string      `db:"customer_type" json:"customer_type"`
	Photos        StringArray `db:"photos" json:"photos"`
	GPSLatitude   *float64    `db:"gps_latitude" json:"gps_latitude,omitempty"`
	GPSLongitude  *float64    `db:"gps_longitude" json:"gps_longitude,omitempty"`
	Remarks       *string     `db:"remarks" json:"remarks,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// GPS is an optional location attached to a submission
type GPS struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// SalesCounts are the per-type sold/activated numbers in a submission
type SalesCounts struct {
	SimsSold      int `json:"sims_sold" binding:"min=0"`
	SimsActivated int `json:"sims_activated" binding:"min=0"`
	FtthSold      int `json:"ftth_sold" binding:"min=0"`
	FtthActivated int `json:"ftth_activated" binding:"min=0"`
}

// SubmitEventSalesRequest is the body of events.submitEventSales
type SubmitEventSalesRequest struct {
	SalesCounts
	CustomerType string   `json:"customer_type" binding:"required,oneof=individual business government"`
	Photos       []string `json:"photos" binding:"max=10,dive,url"`
	GPS          *GPS     `json:"gps"`
	Remarks      *string  `json:"remarks" binding:"omitempty,max=1000"`
}

// SubmitEventSalesResult is what the caller sees after a submission
type SubmitEventSalesResult struct {
	Entry      EventSalesEntry `json:"entry"`
	Assignment EventAssignment `json:"assignment"`
}
