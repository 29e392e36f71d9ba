package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

const eventColumns = `id, name, event_type, location, circle, zone, start_date, end_date,
	target_sim, target_ftth, allocated_sim, allocated_ftth, status, key_insight,
	created_by, created_at, updated_at`

// EventRepository handles events and their ledger reservations
type EventRepository struct {
	db DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event and reserves its allocations in the ledger in one transaction
func (r *EventRepository) Create(event *models.Event) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (
			name, event_type, location, circle, zone, start_date, end_date,
			target_sim, target_ftth, allocated_sim, allocated_ftth, status,
			key_insight, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowx(query,
		event.Name, event.EventType, event.Location, event.Circle, event.Zone,
		event.StartDate, event.EndDate, event.TargetSim, event.TargetFtth,
		event.AllocatedSim, event.AllocatedFtth, event.Status, event.KeyInsight,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := adjustAllocated(tx, event.Circle, models.ResourceSIM, event.AllocatedSim); err != nil {
		return err
	}
	if err := adjustAllocated(tx, event.Circle, models.ResourceFTTH, event.AllocatedFtth); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}
	return nil
}

// GetByID returns an event or nil if it does not exist
func (r *EventRepository) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	found, err := getOptional(r.db, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &event, nil
}

// List returns events newest first, optionally filtered by circle and status
func (r *EventRepository) List(filter models.EventFilter) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []interface{}{}
	if filter.Circle != "" {
		args = append(args, filter.Circle)
		query += fmt.Sprintf(" AND circle = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY start_date DESC, created_at DESC`

	events := []models.Event{}
	if err := r.db.Select(&events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateStatus moves an event from one status to another. It returns nil when
// the event is no longer in status from. Entering a terminal status releases
// the event's ledger reservation in the same transaction.
func (r *EventRepository) UpdateStatus(id uuid.UUID, from, to models.EventStatus) (*models.Event, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var event models.Event
	found, err := getOptional(tx, &event, `
		UPDATE events SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+eventColumns, id, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}
	if !found {
		return nil, nil
	}

	if to.IsTerminal() {
		if err := adjustAllocated(tx, event.Circle, models.ResourceSIM, -event.AllocatedSim); err != nil {
			return nil, err
		}
		if err := adjustAllocated(tx, event.Circle, models.ResourceFTTH, -event.AllocatedFtth); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event status: %w", err)
	}
	return &event, nil
}

// ListEnded returns active or paused events whose end date is before cutoff
func (r *EventRepository) ListEnded(cutoff time.Time) ([]models.Event, error) {
	events := []models.Event{}
	err := r.db.Select(&events, `
		SELECT `+eventColumns+` FROM events
		WHERE status IN ('active', 'paused') AND end_date < $1
		ORDER BY end_date`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list ended events: %w", err)
	}
	return events, nil
}
