package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/circleops/salesops-backend/internal/models"
)

const employeeColumns = `id, name, phone, email, role, circle, zone, pers_no, purse_id, is_active, created_at, updated_at`

const masterColumns = `m.purse_id, m.pers_no, m.name, m.designation, m.circle, m.zone, m.office,
	m.phone, m.reporting_purse_id, m.reporting_officer_name`

// EmployeeRepository handles app accounts and the HR master table
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// GetByID returns an account or nil
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByPhone returns an account by its 10-digit mobile number, or nil
func (r *EmployeeRepository) GetByPhone(phone string) (*models.Employee, error) {
	return r.getOne(`WHERE phone = $1`, phone)
}

func (r *EmployeeRepository) getOne(where string, arg interface{}) (*models.Employee, error) {
	var e models.Employee
	found, err := getOptional(r.db, &e, `SELECT `+employeeColumns+` FROM employees `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

// LinkPurseID attaches a master purse ID to an account. A purse ID already
// linked elsewhere surfaces as a unique violation; see IsUniqueViolation.
func (r *EmployeeRepository) LinkPurseID(employeeID uuid.UUID, purseID string) (*models.Employee, error) {
	var e models.Employee
	found, err := getOptional(r.db, &e, `
		UPDATE employees SET purse_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+employeeColumns, employeeID, purseID)
	if err != nil {
		return nil, fmt.Errorf("failed to link employee: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

// GetMasterByPersNo returns a master row with its linked account id, or nil
func (r *EmployeeRepository) GetMasterByPersNo(persNo string) (*models.MasterWithAccount, error) {
	return r.getMaster(`m.pers_no = $1`, persNo)
}

// GetMasterByPurseID returns a master row with its linked account id, or nil
func (r *EmployeeRepository) GetMasterByPurseID(purseID string) (*models.MasterWithAccount, error) {
	return r.getMaster(`m.purse_id = $1`, purseID)
}

func (r *EmployeeRepository) getMaster(cond string, arg interface{}) (*models.MasterWithAccount, error) {
	var m models.MasterWithAccount
	found, err := getOptional(r.db, &m, `
		SELECT `+masterColumns+`, e.id AS employee_id
		FROM employee_master m
		LEFT JOIN employees e ON e.purse_id = m.purse_id
		WHERE `+cond, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee master: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

// ListDirectReports returns master rows reporting to any of the given purse IDs
func (r *EmployeeRepository) ListDirectReports(purseIDs []string) ([]models.MasterWithAccount, error) {
	reports := []models.MasterWithAccount{}
	if len(purseIDs) == 0 {
		return reports, nil
	}
	err := r.db.Select(&reports, `
		SELECT `+masterColumns+`, e.id AS employee_id
		FROM employee_master m
		LEFT JOIN employees e ON e.purse_id = m.purse_id
		WHERE m.reporting_purse_id = ANY($1)
		ORDER BY m.name`, pq.Array(purseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list direct reports: %w", err)
	}
	return reports, nil
}

// InsertMaster stores one master row unless its purse ID or pers number
// already exists. It reports whether a row was written.
func (r *EmployeeRepository) InsertMaster(m models.EmployeeMaster) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO employee_master (
			purse_id, pers_no, name, designation, circle, zone, office, phone,
			reporting_purse_id, reporting_officer_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING`,
		m.PurseID, m.PersNo, m.Name, m.Designation, m.Circle, m.Zone, m.Office,
		m.Phone, m.ReportingPurseID, m.ReportingOfficerName)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert employee master: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
