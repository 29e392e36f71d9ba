package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

const subtaskColumns = `id, event_id, title, description, assigned_to, status, priority,
	due_date, completed_at, created_by, created_at`

// SubtaskRepository handles event_subtasks
type SubtaskRepository struct {
	db DB
}

// NewSubtaskRepository creates a new subtask repository
func NewSubtaskRepository(db DB) *SubtaskRepository {
	return &SubtaskRepository{db: db}
}

// Create inserts a subtask and fills in its generated fields
func (r *SubtaskRepository) Create(s *models.EventSubtask) error {
	err := r.db.QueryRowx(`
		INSERT INTO event_subtasks (event_id, title, description, assigned_to, status, priority, due_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		s.EventID, s.Title, s.Description, s.AssignedTo, s.Status, s.Priority, s.DueDate, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subtask: %w", err)
	}
	return nil
}

// UpdateStatus sets a subtask's status, stamping completed_at on completion
// and clearing it otherwise. Returns nil if the subtask does not exist.
func (r *SubtaskRepository) UpdateStatus(id uuid.UUID, status models.SubtaskStatus) (*models.EventSubtask, error) {
	var s models.EventSubtask
	found, err := getOptional(r.db, &s, `
		UPDATE event_subtasks SET
			status = $2,
			completed_at = CASE WHEN $2::text = 'completed' THEN COALESCE(completed_at, NOW()) ELSE NULL END
		WHERE id = $1
		RETURNING `+subtaskColumns, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

// ListByEvent returns an event's subtasks by due date
func (r *SubtaskRepository) ListByEvent(eventID uuid.UUID) ([]models.EventSubtask, error) {
	subtasks := []models.EventSubtask{}
	err := r.db.Select(&subtasks, `
		SELECT `+subtaskColumns+` FROM event_subtasks
		WHERE event_id = $1
		ORDER BY due_date NULLS LAST, created_at`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	return subtasks, nil
}

// GetByID returns a subtask or nil
func (r *SubtaskRepository) GetByID(id uuid.UUID) (*models.EventSubtask, error) {
	var s models.EventSubtask
	found, err := getOptional(r.db, &s, `SELECT `+subtaskColumns+` FROM event_subtasks WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtask: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}
