package database

import (
	"fmt"
	"strings"

	"github.com/circleops/salesops-backend/internal/models"
)

// OltRepository handles OLT-to-employee assignments
type OltRepository struct {
	db DB
}

// NewOltRepository creates a new OLT repository
func NewOltRepository(db DB) *OltRepository {
	return &OltRepository{db: db}
}

// Insert stores a (persNo, oltIP) pair and reports whether it was new
func (r *OltRepository) Insert(persNo, oltIP string) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO olt_assignments (pers_no, olt_ip)
		VALUES ($1, $2)
		ON CONFLICT (pers_no, olt_ip) DO NOTHING`, persNo, oltIP)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert OLT assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// Report groups assignments by pers number. search matches pers numbers as a
// case-insensitive substring.
func (r *OltRepository) Report(search string) ([]models.OltReportRow, error) {
	query := `
		SELECT o.pers_no, MAX(m.name) AS employee_name,
			ARRAY_AGG(o.olt_ip ORDER BY o.olt_ip) AS olt_ips,
			COUNT(*) AS olt_count
		FROM olt_assignments o
		LEFT JOIN employee_master m ON m.pers_no = o.pers_no`
	args := []interface{}{}
	if s := strings.TrimSpace(search); s != "" {
		query += ` WHERE o.pers_no ILIKE $1`
		args = append(args, "%"+escapeLike(s)+"%")
	}
	query += ` GROUP BY o.pers_no ORDER BY o.pers_no`

	rows := []models.OltReportRow{}
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to build OLT report: %w", err)
	}
	return rows, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
