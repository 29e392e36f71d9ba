package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

var (
	// ErrAssignmentNotFound means the employee is not assigned to the event
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrEventNotFound means the event row does not exist
	ErrEventNotFound = errors.New("event not found")
	// ErrEventClosed means the event is completed or cancelled
	ErrEventClosed = errors.New("event is closed")
)

const assignmentColumns = `a.id, a.event_id, a.employee_id, a.sim_target, a.ftth_target,
	a.sim_sold, a.ftth_sold, a.assigned_by, a.created_at, a.updated_at`

// SalesEntryRepository handles append-only event sales entries and their roll-ups
type SalesEntryRepository struct {
	db DB
}

// NewSalesEntryRepository creates a new sales entry repository
func NewSalesEntryRepository(db DB) *SalesEntryRepository {
	return &SalesEntryRepository{db: db}
}

type lockedAssignment struct {
	models.EventAssignment
	EventStatus models.EventStatus `db:"event_status"`
	Circle      string             `db:"circle"`
}

// Submit records a sales entry and folds it into the assignment counters and
// the circle ledger in one transaction. The assignment row is locked for the
// duration so concurrent submissions serialize.
func (r *SalesEntryRepository) Submit(entry *models.EventSalesEntry) (*models.EventAssignment, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked lockedAssignment
	found, err := getOptional(tx, &locked, `
		SELECT `+assignmentColumns+`, ev.status AS event_status, ev.circle
		FROM event_assignments a
		JOIN events ev ON ev.id = a.event_id
		WHERE a.event_id = $1 AND a.employee_id = $2
		FOR UPDATE OF a`, entry.EventID, entry.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock assignment: %w", err)
	}
	if !found {
		return nil, ErrAssignmentNotFound
	}
	if locked.EventStatus.IsTerminal() {
		return nil, ErrEventClosed
	}

	err = tx.QueryRowx(`
		INSERT INTO event_sales_entries (
			event_id, employee_id, sims_sold, sims_activated, ftth_sold, ftth_activated,
			customer_type, photos, gps_latitude, gps_longitude, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		entry.EventID, entry.EmployeeID, entry.SimsSold, entry.SimsActivated,
		entry.FtthSold, entry.FtthActivated, entry.CustomerType, entry.Photos,
		entry.GPSLatitude, entry.GPSLongitude, entry.Remarks,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sales entry: %w", err)
	}

	var updated models.EventAssignment
	err = tx.Get(&updated, `
		UPDATE event_assignments a SET
			sim_sold = a.sim_sold + $2,
			ftth_sold = a.ftth_sold + $3,
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING `+assignmentColumns,
		locked.ID, entry.SimsSold, entry.FtthSold)
	if err != nil {
		return nil, fmt.Errorf("failed to update assignment totals: %w", err)
	}

	if err := addUsed(tx, locked.Circle, models.ResourceSIM, entry.SimsSold); err != nil {
		return nil, err
	}
	if err := addUsed(tx, locked.Circle, models.ResourceFTTH, entry.FtthSold); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sales entry: %w", err)
	}
	return &updated, nil
}

// ListByEvent returns an event's sales entries newest first
func (r *SalesEntryRepository) ListByEvent(eventID uuid.UUID) ([]models.EventSalesEntry, error) {
	entries := []models.EventSalesEntry{}
	err := r.db.Select(&entries, `
		SELECT s.id, s.event_id, s.employee_id, COALESCE(e.name, '') AS employee_name,
			s.sims_sold, s.sims_activated, s.ftth_sold, s.ftth_activated,
			s.customer_type, s.photos, s.gps_latitude, s.gps_longitude, s.remarks,
			s.created_at
		FROM event_sales_entries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.event_id = $1
		ORDER BY s.created_at DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales entries: %w", err)
	}
	return entries, nil
}
