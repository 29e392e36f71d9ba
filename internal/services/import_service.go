package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/utils"
	"github.com/circleops/salesops-backend/pkg/validator"
)

const (
	oltColumns    = 2
	masterColumns = 7
)

// ImportService loads OLT assignments and the employee master from CSV.
// Every data row ends up either imported or skipped, never both.
type ImportService struct {
	olts      *database.OltRepository
	employees *database.EmployeeRepository
	logger    *logrus.Logger
}

// NewImportService creates a new import service
func NewImportService(olts *database.OltRepository, employees *database.EmployeeRepository, logger *logrus.Logger) *ImportService {
	return &ImportService{olts: olts, employees: employees, logger: logger}
}

// csvRow is one data record with its 1-based line number
type csvRow struct {
	line   int
	fields []string
	err    error
}

// readRows reads every record, dropping row 1 when isHeader says so.
// Malformed records are returned with err set so they count as skipped.
func readRows(r io.Reader, isHeader func([]string) bool) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []csvRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, err
			}
			rows = append(rows, csvRow{line: perr.Line, err: perr.Err})
			first = false
			continue
		}
		line, _ := reader.FieldPos(0)
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if first {
			first = false
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			if isHeader(record) {
				continue
			}
		}
		rows = append(rows, csvRow{line: line, fields: record})
	}
	return rows, nil
}

func cellContains(record []string, idx int, substr string) bool {
	return idx < len(record) && strings.Contains(strings.ToUpper(record[idx]), substr)
}

func isOltHeader(record []string) bool {
	return cellContains(record, 0, "PER") || cellContains(record, 1, "OLT")
}

func isMasterHeader(record []string) bool {
	return cellContains(record, 0, "PURSE") || cellContains(record, 1, "PERS")
}

type importTally struct {
	result models.ImportResult
}

func newImportTally(total int) *importTally {
	return &importTally{result: models.ImportResult{Total: total, SkippedRows: []models.SkippedRow{}}}
}

func (t *importTally) imported() {
	t.result.Imported++
}

func (t *importTally) skipped(line int, format string, args ...interface{}) {
	t.result.Skipped++
	t.result.SkippedRows = append(t.result.SkippedRows, models.SkippedRow{
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	})
}

// ImportOlt loads PER_NO,OLT_IP rows. Blank pers numbers, invalid IPs,
// in-batch duplicates and rows already stored are skipped.
func (s *ImportService) ImportOlt(sess authz.Session, r io.Reader) (*models.ImportResult, error) {
	if !sess.Can(authz.AdminImport) {
		return nil, errForbidden("not allowed to import data")
	}
	rows, err := readRows(r, isOltHeader)
	if err != nil {
		return nil, errBadRequest("unreadable CSV: %v", err)
	}

	tally := newImportTally(len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.err != nil {
			tally.skipped(row.line, "malformed row: %v", row.err)
			continue
		}
		if len(row.fields) != oltColumns {
			tally.skipped(row.line, "expected %d columns, got %d", oltColumns, len(row.fields))
			continue
		}
		persNo := strings.ToUpper(row.fields[0])
		ip := row.fields[1]
		if persNo == "" {
			tally.skipped(row.line, "pers number is blank")
			continue
		}
		if !utils.IsValidIP(ip) {
			tally.skipped(row.line, "invalid OLT IP %q", ip)
			continue
		}
		key := persNo + "|" + ip
		if seen[key] {
			tally.skipped(row.line, "duplicate of an earlier row")
			continue
		}
		seen[key] = true

		inserted, err := s.olts.Insert(persNo, ip)
		if err != nil {
			return nil, errInternal("failed to store OLT assignment", err)
		}
		if !inserted {
			tally.skipped(row.line, "already assigned")
			continue
		}
		tally.imported()
	}

	s.logger.WithFields(logrus.Fields{
		"total":       tally.result.Total,
		"imported":    tally.result.Imported,
		"skipped":     tally.result.Skipped,
		"imported_by": sess.EmployeeID,
	}).Info("OLT import finished")
	return &tally.result, nil
}

// ImportEmployeeMaster loads PURSE_ID,PERS_NO,NAME,DESIGNATION,CIRCLE,ZONE,
// REPORTING_PURSE_ID rows with circle names normalized.
func (s *ImportService) ImportEmployeeMaster(sess authz.Session, r io.Reader) (*models.ImportResult, error) {
	if !sess.Can(authz.AdminImport) {
		return nil, errForbidden("not allowed to import data")
	}
	rows, err := readRows(r, isMasterHeader)
	if err != nil {
		return nil, errBadRequest("unreadable CSV: %v", err)
	}

	tally := newImportTally(len(rows))
	seenPurse := make(map[string]bool, len(rows))
	seenPers := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.err != nil {
			tally.skipped(row.line, "malformed row: %v", row.err)
			continue
		}
		m, reason := parseMasterRow(row.fields)
		if reason != "" {
			tally.skipped(row.line, "%s", reason)
			continue
		}
		if seenPurse[m.PurseID] || seenPers[m.PersNo] {
			tally.skipped(row.line, "duplicate of an earlier row")
			continue
		}
		seenPurse[m.PurseID] = true
		seenPers[m.PersNo] = true

		inserted, err := s.employees.InsertMaster(m)
		if err != nil {
			return nil, errInternal("failed to store employee master row", err)
		}
		if !inserted {
			tally.skipped(row.line, "purse ID or pers number already exists")
			continue
		}
		tally.imported()
	}

	s.logger.WithFields(logrus.Fields{
		"total":       tally.result.Total,
		"imported":    tally.result.Imported,
		"skipped":     tally.result.Skipped,
		"imported_by": sess.EmployeeID,
	}).Info("employee master import finished")
	return &tally.result, nil
}

// parseMasterRow validates one master record and returns a skip reason on failure
func parseMasterRow(fields []string) (models.EmployeeMaster, string) {
	var m models.EmployeeMaster
	if len(fields) != masterColumns {
		return m, fmt.Sprintf("expected %d columns, got %d", masterColumns, len(fields))
	}
	m.PurseID = strings.ToUpper(fields[0])
	if m.PurseID == "" {
		return m, "purse ID is blank"
	}
	persNo, err := validator.NormalizePersNo(fields[1])
	if err != nil {
		return m, fmt.Sprintf("invalid pers number %q", fields[1])
	}
	m.PersNo = persNo
	m.Name = fields[2]
	if m.Name == "" {
		return m, "name is blank"
	}
	m.Designation = strings.ToUpper(fields[3])
	c, err := normalizeCircle(fields[4])
	if err != nil {
		return m, fmt.Sprintf("unknown circle %q", fields[4])
	}
	m.Circle = c
	m.Zone = models.NewNullString(fields[5])
	reporting := strings.ToUpper(fields[6])
	if reporting == m.PurseID {
		return m, "employee reports to themselves"
	}
	m.ReportingPurseID = models.NewNullString(reporting)
	return m, ""
}
