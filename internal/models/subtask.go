package models

import (
	"time"

	"github.com/google/uuid"
)

// SubtaskStatus represents the state of an event subtask
type SubtaskStatus string

const (
	SubtaskPending    SubtaskStatus = "pending"
	SubtaskInProgress SubtaskStatus = "in_progress"
	SubtaskCompleted  SubtaskStatus = "completed"
)

// IsValid reports whether s is a known subtask status
func (s SubtaskStatus) IsValid() bool {
	return s == SubtaskPending || s == SubtaskInProgress || s == SubtaskCompleted
}

// EventSubtask is a unit of work under an event with its own SLA
type EventSubtask struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	EventID     uuid.UUID     `db:"event_id" json:"event_id"`
	Title       string        `db:"title" json:"title"`
	Description *string       `db:"description" json:"description,omitempty"`
	AssignedTo  *uuid.UUID    `db:"assigned_to" json:"assigned_to,omitempty"`
	Status      SubtaskStatus `db:"status" json:"status"`
	Priority    string        `db:"priority" json:"priority"`
	DueDate     *time.Time    `db:"due_date" json:"due_date,omitempty"`
	CompletedAt *time.Time    `db:"completed_at" json:"completed_at,omitempty"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// CreateSubtaskRequest is the body of events.createSubtask
type CreateSubtaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"` // YYYY-MM-DD
}

// UpdateSubtaskStatusRequest is the body of subtasks.updateStatus
type UpdateSubtaskStatusRequest struct {
	Status SubtaskStatus `json:"status" binding:"required,oneof=pending in_progress completed"`
}
