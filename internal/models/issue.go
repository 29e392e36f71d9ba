package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IssueStatus is the escalation state of an issue
type IssueStatus string

const (
	IssueOpen       IssueStatus = "OPEN"
	IssueInProgress IssueStatus = "IN_PROGRESS"
	IssueResolved   IssueStatus = "RESOLVED"
	IssueClosed     IssueStatus = "CLOSED"
)

var issueRank = map[IssueStatus]int{
	IssueOpen:       0,
	IssueInProgress: 1,
	IssueResolved:   2,
	IssueClosed:     3,
}

// IsValid reports whether s is a known status
func (s IssueStatus) IsValid() bool {
	_, ok := issueRank[s]
	return ok
}

// IsForwardOf reports whether s comes strictly after prev
func (s IssueStatus) IsForwardOf(prev IssueStatus) bool {
	if !s.IsValid() || !prev.IsValid() {
		return false
	}
	return issueRank[s] > issueRank[prev]
}

// TimelineEntry is one audit record on an issue
type TimelineEntry struct {
	Action      string      `json:"action"`
	Status      IssueStatus `json:"status"`
	PerformedBy uuid.UUID   `json:"performed_by"`
	Remarks     string      `json:"remarks,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Timeline is the JSONB audit trail of an issue; it is only ever appended to
type Timeline []TimelineEntry

// Value implements the driver.Valuer interface
func (t Timeline) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface
func (t *Timeline) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Timeline{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Timeline", src)
	}
	out := Timeline{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("failed to decode timeline: %w", err)
		}
	}
	*t = out
	return nil
}

// Issue is a field problem escalated to a manager
type Issue struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	EventID     uuid.UUID   `db:"event_id" json:"event_id"`
	RaisedBy    uuid.UUID   `db:"raised_by" json:"raised_by"`
	IssueType   string      `db:"issue_type" json:"issue_type"`
	Description string      `db:"description" json:"description"`
	Priority    string      `db:"priority" json:"priority"`
	Status      IssueStatus `db:"status" json:"status"`
	EscalatedTo uuid.UUID   `db:"escalated_to" json:"escalated_to"`
	ResolvedBy  *uuid.UUID  `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time  `db:"resolved_at" json:"resolved_at,omitempty"`
	Timeline    Timeline    `db:"timeline" json:"timeline"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateIssueRequest is the body of issues.create
type CreateIssueRequest struct {
	EventID     string  `json:"event_id" binding:"required,uuid"`
	IssueType   string  `json:"issue_type" binding:"required,oneof=resource_shortage technical customer logistics other"`
	Description string  `json:"description" binding:"required,max=2000"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	EscalatedTo *string `json:"escalated_to" binding:"omitempty,uuid"`
}

// UpdateIssueStatusRequest is the body of issues.updateStatus
type UpdateIssueStatusRequest struct {
	Status  IssueStatus `json:"status" binding:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	Remarks string      `json:"remarks" binding:"max=1000"`
}
