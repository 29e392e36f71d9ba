package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

// AssignmentRepository handles event_assignments
type AssignmentRepository struct {
	db DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// AssignmentTarget is one row of an assignTeam upsert
type AssignmentTarget struct {
	EmployeeID uuid.UUID
	SimTarget  int
	FtthTarget int
}

// UpsertedAssignment is an assignment plus whether the upsert inserted it
type UpsertedAssignment struct {
	models.EventAssignment
	Inserted bool `db:"inserted"`
}

// Upsert writes targets for each employee on an event in one transaction.
// Existing rows keep their sold counters. The event row is locked first so a
// concurrent completion or cancellation cannot slip in new assignments.
func (r *AssignmentRepository) Upsert(eventID, assignedBy uuid.UUID, targets []AssignmentTarget) ([]UpsertedAssignment, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.EventStatus
	found, err := getOptional(tx, &status, `SELECT status FROM events WHERE id = $1 FOR UPDATE`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}
	if !found {
		return nil, ErrEventNotFound
	}
	if status.IsTerminal() {
		return nil, ErrEventClosed
	}

	query := `
		INSERT INTO event_assignments (event_id, employee_id, sim_target, ftth_target, assigned_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, employee_id) DO UPDATE SET
			sim_target = EXCLUDED.sim_target,
			ftth_target = EXCLUDED.ftth_target,
			assigned_by = EXCLUDED.assigned_by,
			updated_at = NOW()
		RETURNING id, event_id, employee_id, sim_target, ftth_target, sim_sold, ftth_sold,
			assigned_by, created_at, updated_at, (xmax = 0) AS inserted`

	out := make([]UpsertedAssignment, 0, len(targets))
	for _, t := range targets {
		var a UpsertedAssignment
		if err := tx.Get(&a, query, eventID, t.EmployeeID, t.SimTarget, t.FtthTarget, assignedBy); err != nil {
			return nil, fmt.Errorf("failed to upsert assignment for %s: %w", t.EmployeeID, err)
		}
		out = append(out, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assignments: %w", err)
	}
	return out, nil
}

// ListByEvent returns an event's assignments with employee names
func (r *AssignmentRepository) ListByEvent(eventID uuid.UUID) ([]models.EventAssignment, error) {
	assignments := []models.EventAssignment{}
	err := r.db.Select(&assignments, `
		SELECT a.id, a.event_id, a.employee_id, COALESCE(e.name, '') AS employee_name,
			a.sim_target, a.ftth_target, a.sim_sold, a.ftth_sold, a.assigned_by,
			a.created_at, a.updated_at
		FROM event_assignments a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.event_id = $1
		ORDER BY e.name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// ListByEmployee returns an employee's assignments joined with their events, newest event first
func (r *AssignmentRepository) ListByEmployee(employeeID uuid.UUID) ([]models.MyTask, error) {
	tasks := []models.MyTask{}
	err := r.db.Select(&tasks, `
		SELECT a.id, a.event_id, a.employee_id, a.sim_target, a.ftth_target,
			a.sim_sold, a.ftth_sold, a.assigned_by, a.created_at, a.updated_at,
			ev.name AS event_name, ev.location, ev.start_date, ev.end_date,
			ev.status AS event_status
		FROM event_assignments a
		JOIN events ev ON ev.id = a.event_id
		WHERE a.employee_id = $1
		ORDER BY ev.start_date DESC, ev.created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
