package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/circleops/salesops-backend/internal/models"
)

const resourceColumns = `id, type, circle, total, allocated, used, remaining, updated_by, updated_at`

// ResourceRepository handles the per-circle stock ledger
type ResourceRepository struct {
	db DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// GetAll returns ledger rows ordered by circle then type. An empty circle returns every circle.
func (r *ResourceRepository) GetAll(circle string) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	args := []interface{}{}
	if circle != "" {
		query += ` WHERE circle = $1`
		args = append(args, circle)
	}
	query += ` ORDER BY circle, type`

	resources := []models.Resource{}
	if err := r.db.Select(&resources, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// SetTotal upserts a circle's total and recomputes remaining. It returns nil
// without writing when the row exists and newTotal is below its used count.
func (r *ResourceRepository) SetTotal(circle string, resourceType models.ResourceType, newTotal int, updatedBy uuid.UUID) (*models.Resource, error) {
	query := `
		INSERT INTO resources (circle, type, total, allocated, used, remaining, updated_by, updated_at)
		VALUES ($1, $2, $3, 0, 0, $3, $4, NOW())
		ON CONFLICT (circle, type) DO UPDATE SET
			total = EXCLUDED.total,
			remaining = EXCLUDED.total - resources.used,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		WHERE resources.used <= EXCLUDED.total
		RETURNING ` + resourceColumns

	var res models.Resource
	found, err := getOptional(r.db, &res, query, circle, resourceType, newTotal, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &res, nil
}

// GetSummary rolls the ledger up per resource type across circles
func (r *ResourceRepository) GetSummary() ([]models.ResourceTypeSummary, error) {
	query := `
		SELECT type,
			COUNT(DISTINCT circle) AS circles,
			COALESCE(SUM(total), 0) AS total,
			COALESCE(SUM(allocated), 0) AS allocated,
			COALESCE(SUM(used), 0) AS used,
			COALESCE(SUM(remaining), 0) AS remaining
		FROM resources
		GROUP BY type
		ORDER BY type`

	summary := []models.ResourceTypeSummary{}
	if err := r.db.Select(&summary, query); err != nil {
		return nil, fmt.Errorf("failed to summarize resources: %w", err)
	}
	return summary, nil
}

// adjustAllocated moves a circle's soft reservation by delta inside tx.
// A missing ledger row is created with zero stock. allocated never drops below zero.
func adjustAllocated(tx sqlx.Execer, circle string, resourceType models.ResourceType, delta int) error {
	if delta == 0 {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO resources (circle, type, total, allocated, used, remaining, updated_at)
		VALUES ($1, $2, 0, GREATEST($3::int, 0), 0, 0, NOW())
		ON CONFLICT (circle, type) DO UPDATE SET
			allocated = GREATEST(resources.allocated + $3::int, 0),
			updated_at = NOW()`,
		circle, resourceType, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s allocation for %s: %w", resourceType, circle, err)
	}
	return nil
}

// addUsed books sold units against a circle's ledger inside tx and keeps
// remaining = total - used
func addUsed(tx sqlx.Execer, circle string, resourceType models.ResourceType, n int) error {
	if n == 0 {
		return nil
	}
	_, err := tx.Exec(`
		INSERT INTO resources (circle, type, total, allocated, used, remaining, updated_at)
		VALUES ($1, $2, 0, 0, $3::int, -$3::int, NOW())
		ON CONFLICT (circle, type) DO UPDATE SET
			used = resources.used + $3::int,
			remaining = resources.total - (resources.used + $3::int),
			updated_at = NOW()`,
		circle, resourceType, n)
	if err != nil {
		return fmt.Errorf("failed to book %s usage for %s: %w", resourceType, circle, err)
	}
	return nil
}
