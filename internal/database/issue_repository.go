package database

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

const issueColumns = `id, event_id, raised_by, issue_type, description, priority, status,
	escalated_to, resolved_by, resolved_at, timeline, created_at, updated_at`

// IssueRepository handles escalated issues
type IssueRepository struct {
	db DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create inserts an issue with its initial timeline
func (r *IssueRepository) Create(issue *models.Issue) error {
	err := r.db.QueryRowx(`
		INSERT INTO issues (event_id, raised_by, issue_type, description, priority, status, escalated_to, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		issue.EventID, issue.RaisedBy, issue.IssueType, issue.Description, issue.Priority,
		issue.Status, issue.EscalatedTo, issue.Timeline,
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// GetByID returns an issue or nil
func (r *IssueRepository) GetByID(id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	found, err := getOptional(r.db, &issue, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &issue, nil
}

// Transition moves an issue from one status to the next and appends entry to
// its timeline. The update only applies while the issue is still in status
// from, so a concurrent transition makes this return nil instead of dropping
// a timeline entry.
func (r *IssueRepository) Transition(id uuid.UUID, from models.IssueStatus, entry models.TimelineEntry) (*models.Issue, error) {
	raw, err := json.Marshal([]models.TimelineEntry{entry})
	if err != nil {
		return nil, fmt.Errorf("failed to encode timeline entry: %w", err)
	}

	var issue models.Issue
	found, err := getOptional(r.db, &issue, `
		UPDATE issues SET
			status = $3,
			timeline = COALESCE(timeline, '[]'::jsonb) || $4::jsonb,
			resolved_by = CASE WHEN $3::text = 'RESOLVED' THEN $5 ELSE resolved_by END,
			resolved_at = CASE WHEN $3::text = 'RESOLVED' THEN NOW() ELSE resolved_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+issueColumns,
		id, from, entry.Status, string(raw), entry.PerformedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &issue, nil
}

// ListRaisedBy returns issues raised by an employee, newest first
func (r *IssueRepository) ListRaisedBy(employeeID uuid.UUID, status models.IssueStatus) ([]models.Issue, error) {
	return r.list("raised_by", employeeID, status)
}

// ListEscalatedTo returns issues escalated to an employee, newest first
func (r *IssueRepository) ListEscalatedTo(employeeID uuid.UUID, status models.IssueStatus) ([]models.Issue, error) {
	return r.list("escalated_to", employeeID, status)
}

func (r *IssueRepository) list(column string, employeeID uuid.UUID, status models.IssueStatus) ([]models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE ` + column + ` = $1`
	args := []interface{}{employeeID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	issues := []models.Issue{}
	if err := r.db.Select(&issues, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}
