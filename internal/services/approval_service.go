package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

// ApprovalService runs the pending -> approved | rejected sales report workflow
type ApprovalService struct {
	reports       *database.SalesReportRepository
	notifications *NotificationService
	logger        *logrus.Logger
}

// NewApprovalService creates a new approval service
func NewApprovalService(reports *database.SalesReportRepository, notifications *NotificationService, logger *logrus.Logger) *ApprovalService {
	return &ApprovalService{reports: reports, notifications: notifications, logger: logger}
}

// Create submits a report for review
func (s *ApprovalService) Create(sess authz.Session, req models.CreateSalesReportRequest) (*models.SalesReport, error) {
	if err := validateSalesCounts(req.SalesCounts); err != nil {
		return nil, err
	}

	report := &models.SalesReport{
		SalesStaffID:  sess.EmployeeID,
		SimsSold:      req.SimsSold,
		SimsActivated: req.SimsActivated,
		FtthSold:      req.FtthSold,
		FtthActivated: req.FtthActivated,
		CustomerType:  req.CustomerType,
		Remarks:       req.Remarks,
	}
	if req.EventID != nil {
		id, err := uuid.Parse(*req.EventID)
		if err != nil {
			return nil, errBadRequest("invalid event_id")
		}
		report.EventID = &id
	}

	if err := s.reports.Create(report); err != nil {
		return nil, errInternal("failed to create sales report", err)
	}
	return report, nil
}

// List returns every report to approvers and only the caller's own to everyone else
func (s *ApprovalService) List(sess authz.Session, status models.SalesReportStatus) ([]models.SalesReport, error) {
	if status != "" && !status.IsValid() {
		return nil, errBadRequest("unknown report status %q", status)
	}
	filter := models.SalesReportFilter{Status: status}
	if !sess.Can(authz.SalesViewAll) {
		id := sess.EmployeeID
		filter.SalesStaffID = &id
	}
	reports, err := s.reports.List(filter)
	if err != nil {
		return nil, errInternal("failed to list sales reports", err)
	}
	return reports, nil
}

// Approve approves a pending report
func (s *ApprovalService) Approve(sess authz.Session, id uuid.UUID, remarks *string) (*models.SalesReport, error) {
	return s.review(sess, id, models.SalesReportApproved, remarks)
}

// Reject rejects a pending report
func (s *ApprovalService) Reject(sess authz.Session, id uuid.UUID, remarks *string) (*models.SalesReport, error) {
	return s.review(sess, id, models.SalesReportRejected, remarks)
}

// review applies a terminal decision exactly once. A report that was already
// reviewed is left as it is and the call fails with CONFLICT.
func (s *ApprovalService) review(sess authz.Session, id uuid.UUID, decision models.SalesReportStatus, remarks *string) (*models.SalesReport, error) {
	if !sess.Can(authz.SalesApprove) {
		return nil, errForbidden("your role cannot review sales reports")
	}

	report, err := s.reports.Review(id, decision, sess.EmployeeID, remarks)
	if err != nil {
		return nil, errInternal("failed to review sales report", err)
	}
	if report == nil {
		existing, err := s.reports.GetByID(id)
		if err != nil {
			return nil, errInternal("failed to load sales report", err)
		}
		if existing == nil {
			return nil, errNotFound("sales report")
		}
		return nil, errConflict("sales report is already %s", existing.Status)
	}

	s.notifications.notifyQuietly(report.SalesStaffID, models.CategoryApproval,
		fmt.Sprintf("Sales report %s", decision),
		fmt.Sprintf("Your report of %d SIM and %d FTTH sales was %s", report.SimsSold, report.FtthSold, decision),
		models.JSONMap{"sales_report_id": report.ID.String(), "status": string(decision)})

	s.logger.WithFields(logrus.Fields{
		"sales_report_id": id,
		"status":          decision,
		"reviewed_by":     sess.EmployeeID,
	}).Info("sales report reviewed")
	return report, nil
}
