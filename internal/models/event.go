package models

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusPaused    EventStatus = "paused"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// eventTransitions lists the allowed next states per state
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:  {EventStatusActive, EventStatusCancelled},
	EventStatusActive: {EventStatusPaused, EventStatusCompleted, EventStatusCancelled},
	EventStatusPaused: {EventStatusActive, EventStatusCompleted, EventStatusCancelled},
}

// CanTransitionTo reports whether an event may move from s to next
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// IsValid reports whether s is a known status
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusActive, EventStatusPaused, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a field sales campaign in a circle
type Event struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	EventType     string      `db:"event_type" json:"event_type"`
	Location      string      `db:"location" json:"location"`
	Circle        string      `db:"circle" json:"circle"`
	Zone          string      `db:"zone" json:"zone"`
	StartDate     time.Time   `db:"start_date" json:"start_date"`
	EndDate       time.Time   `db:"end_date" json:"end_date"`
	TargetSim     int         `db:"target_sim" json:"target_sim"`
	TargetFtth    int         `db:"target_ftth" json:"target_ftth"`
	AllocatedSim  int         `db:"allocated_sim" json:"allocated_sim"`
	AllocatedFtth int         `db:"allocated_ftth" json:"allocated_ftth"`
	Status        EventStatus `db:"status" json:"status"`
	KeyInsight    *string     `db:"key_insight" json:"key_insight,omitempty"`
	CreatedBy     uuid.UUID   `db:"created_by" json:"created_by"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateEventRequest is the body of events.create
type CreateEventRequest struct {
	Name          string  `json:"name" binding:"required,max=200"`
	EventType     string  `json:"event_type" binding:"required,max=50"`
	Location      string  `json:"location" binding:"required,max=200"`
	Circle        string  `json:"circle" binding:"required,circle"`
	Zone          string  `json:"zone" binding:"max=100"`
	StartDate     string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate       string  `json:"end_date" binding:"required"`   // YYYY-MM-DD
	TargetSim     int     `json:"target_sim" binding:"min=0"`
	TargetFtth    int     `json:"target_ftth" binding:"min=0"`
	AllocatedSim  int     `json:"allocated_sim" binding:"min=0"`
	AllocatedFtth int     `json:"allocated_ftth" binding:"min=0"`
	KeyInsight    *string `json:"key_insight"`
	Activate      bool    `json:"activate"`
}

// UpdateEventStatusRequest is the body of events.updateStatus
type UpdateEventStatusRequest struct {
	Status EventStatus `json:"status" binding:"required"`
}

// EventFilter narrows events.getAll
type EventFilter struct {
	Circle string
	Status EventStatus
}

// EventAssignment maps an employee to an event with targets and sold counters
type EventAssignment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EventID      uuid.UUID `db:"event_id" json:"event_id"`
	EmployeeID   uuid.UUID `db:"employee_id" json:"employee_id"`
	EmployeeName string    `db:"employee_name" json:"employee_name,omitempty"`
	SimTarget    int       `db:"sim_target" json:"sim_target"`
	FtthTarget   int       `db:"ftth_target" json:"ftth_target"`
	SimSold      int       `db:"sim_sold" json:"sim_sold"`
	FtthSold     int       `db:"ftth_sold" json:"ftth_sold"`
	AssignedBy   uuid.UUID `db:"assigned_by" json:"assigned_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TeamMemberInput is one employee in an events.assignTeam call
type TeamMemberInput struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	SimTarget  int    `json:"sim_target" binding:"min=0"`
	FtthTarget int    `json:"ftth_target" binding:"min=0"`
}

// AssignTeamRequest is the body of events.assignTeam
type AssignTeamRequest struct {
	Members []TeamMemberInput `json:"members" binding:"required,min=1,dive"`
}

// AssignTeamResult reports what assignTeam changed
type AssignTeamResult struct {
	Created     int               `json:"created"`
	Updated     int               `json:"updated"`
	Assignments []EventAssignment `json:"assignments"`
}

// MyTask is an assignment of the caller joined with its event
type MyTask struct {
	EventAssignment
	EventName   string      `db:"event_name" json:"event_name"`
	Location    string      `db:"location" json:"location"`
	StartDate   time.Time   `db:"start_date" json:"start_date"`
	EndDate     time.Time   `db:"end_date" json:"end_date"`
	EventStatus EventStatus `db:"event_status" json:"event_status"`
}

// SubtaskStats counts an event's subtasks by status
type SubtaskStats struct {
	Total      int `db:"total" json:"total"`
	Pending    int `db:"pending" json:"pending"`
	InProgress int `db:"in_progress" json:"in_progress"`
	Completed  int `db:"completed" json:"completed"`
}

// EventSummary is the roll-up shown on the event detail screen
type EventSummary struct {
	TotalSimsSold int          `json:"total_sims_sold"`
	TotalFtthSold int          `json:"total_ftth_sold"`
	TeamCount     int          `json:"team_count"`
	SimProgress   float64      `json:"sim_progress"`
	FtthProgress  float64      `json:"ftth_progress"`
	Subtasks      SubtaskStats `json:"subtasks"`
}

// EventDetails is the response of getEventWithDetails
type EventDetails struct {
	Event        Event             `json:"event"`
	Assignments  []EventAssignment `json:"assignments"`
	Subtasks     []EventSubtask    `json:"subtasks"`
	SalesEntries []EventSalesEntry `json:"sales_entries"`
	Summary      EventSummary      `json:"summary"`
}
