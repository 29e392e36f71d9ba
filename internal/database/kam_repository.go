package database

import (
	"fmt"

	"github.com/circleops/salesops-backend/internal/models"
)

// KamRepository reads key account manager portfolios
type KamRepository struct {
	db DB
}

// NewKamRepository creates a new KAM repository
func NewKamRepository(db DB) *KamRepository {
	return &KamRepository{db: db}
}

// Report groups accounts per KAM with account count and revenue total
func (r *KamRepository) Report(circle string) ([]models.KamReportRow, error) {
	query := `
		SELECT k.kam_pers_no, MAX(m.name) AS kam_name,
			COUNT(*) AS account_count,
			COALESCE(SUM(k.revenue), 0) AS total_revenue
		FROM kam_accounts k
		LEFT JOIN employee_master m ON m.pers_no = k.kam_pers_no`
	args := []interface{}{}
	if circle != "" {
		query += ` WHERE k.circle = $1`
		args = append(args, circle)
	}
	query += ` GROUP BY k.kam_pers_no ORDER BY total_revenue DESC, k.kam_pers_no`

	rows := []models.KamReportRow{}
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to build KAM report: %w", err)
	}
	return rows, nil
}

// ListByKam returns one KAM's accounts, largest revenue first
func (r *KamRepository) ListByKam(kamPersNo string) ([]models.KamAccount, error) {
	accounts := []models.KamAccount{}
	err := r.db.Select(&accounts, `
		SELECT id, kam_pers_no, customer_name, circle, segment, revenue, created_at
		FROM kam_accounts
		WHERE kam_pers_no = $1
		ORDER BY revenue DESC`, kamPersNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list KAM accounts: %w", err)
	}
	return accounts, nil
}
