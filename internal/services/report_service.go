package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

// ReportService builds the admin OLT and KAM reports
type ReportService struct {
	olts   *database.OltRepository
	kams   *database.KamRepository
	logger *logrus.Logger
}

// NewReportService creates a new report service
func NewReportService(olts *database.OltRepository, kams *database.KamRepository, logger *logrus.Logger) *ReportService {
	return &ReportService{olts: olts, kams: kams, logger: logger}
}

// OltReport groups OLT assignments by pers number. search matches the pers
// number as a case-insensitive substring.
func (s *ReportService) OltReport(sess authz.Session, search string) ([]models.OltReportRow, error) {
	if !sess.Can(authz.AdminReports) {
		return nil, errForbidden("not allowed to view admin reports")
	}
	rows, err := s.olts.Report(strings.TrimSpace(search))
	if err != nil {
		return nil, errInternal("failed to build OLT report", err)
	}
	return rows, nil
}

// KamReport groups KAM accounts by manager with revenue totals
func (s *ReportService) KamReport(sess authz.Session, rawCircle string) ([]models.KamReportRow, error) {
	if !sess.Can(authz.AdminReports) {
		return nil, errForbidden("not allowed to view admin reports")
	}
	c, err := optionalCircle(rawCircle)
	if err != nil {
		return nil, err
	}
	rows, err := s.kams.Report(c)
	if err != nil {
		return nil, errInternal("failed to build KAM report", err)
	}
	return rows, nil
}

// KamAccounts lists the accounts owned by one KAM
func (s *ReportService) KamAccounts(sess authz.Session, kamPersNo string) ([]models.KamAccount, error) {
	if !sess.Can(authz.AdminReports) {
		return nil, errForbidden("not allowed to view admin reports")
	}
	kamPersNo = strings.ToUpper(strings.TrimSpace(kamPersNo))
	if kamPersNo == "" {
		return nil, errBadRequest("kam pers number is required")
	}
	accounts, err := s.kams.ListByKam(kamPersNo)
	if err != nil {
		return nil, errInternal("failed to list KAM accounts", err)
	}
	return accounts, nil
}
