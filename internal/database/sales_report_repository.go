package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

const salesReportColumns = `r.id, r.event_id, r.sales_staff_id, r.sims_sold, r.sims_activated,
	r.ftth_sold, r.ftth_activated, r.customer_type, r.remarks, r.status,
	r.reviewed_by, r.reviewed_at, r.review_remarks, r.created_at`

// SalesReportRepository handles the sales report approval queue
type SalesReportRepository struct {
	db DB
}

// NewSalesReportRepository creates a new sales report repository
func NewSalesReportRepository(db DB) *SalesReportRepository {
	return &SalesReportRepository{db: db}
}

// Create inserts a pending report
func (r *SalesReportRepository) Create(report *models.SalesReport) error {
	err := r.db.QueryRowx(`
		INSERT INTO sales_reports (
			event_id, sales_staff_id, sims_sold, sims_activated, ftth_sold,
			ftth_activated, customer_type, remarks, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		RETURNING id, status, created_at`,
		report.EventID, report.SalesStaffID, report.SimsSold, report.SimsActivated,
		report.FtthSold, report.FtthActivated, report.CustomerType, report.Remarks,
	).Scan(&report.ID, &report.Status, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sales report: %w", err)
	}
	return nil
}

// GetByID returns a report or nil
func (r *SalesReportRepository) GetByID(id uuid.UUID) (*models.SalesReport, error) {
	var report models.SalesReport
	found, err := getOptional(r.db, &report,
		`SELECT `+salesReportColumns+` FROM sales_reports r WHERE r.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales report: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &report, nil
}

// List returns reports newest first with the submitter's name
func (r *SalesReportRepository) List(filter models.SalesReportFilter) ([]models.SalesReport, error) {
	query := `
		SELECT ` + salesReportColumns + `, COALESCE(e.name, '') AS staff_name
		FROM sales_reports r
		LEFT JOIN employees e ON e.id = r.sales_staff_id
		WHERE 1=1`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.SalesStaffID != nil {
		args = append(args, *filter.SalesStaffID)
		query += fmt.Sprintf(" AND r.sales_staff_id = $%d", len(args))
	}
	query += ` ORDER BY r.created_at DESC`

	reports := []models.SalesReport{}
	if err := r.db.Select(&reports, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sales reports: %w", err)
	}
	return reports, nil
}

// Review moves a pending report to a terminal status. It returns nil when the
// report is missing or no longer pending; nothing is written in that case.
func (r *SalesReportRepository) Review(id uuid.UUID, status models.SalesReportStatus, reviewer uuid.UUID, remarks *string) (*models.SalesReport, error) {
	var report models.SalesReport
	found, err := getOptional(r.db, &report, `
		UPDATE sales_reports r SET
			status = $2,
			reviewed_by = $3,
			reviewed_at = NOW(),
			review_remarks = $4
		WHERE r.id = $1 AND r.status = 'pending'
		RETURNING `+salesReportColumns, id, status, reviewer, remarks)
	if err != nil {
		return nil, fmt.Errorf("failed to review sales report: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &report, nil
}
