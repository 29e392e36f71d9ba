package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

var reportRowColumns = []string{
	"id", "event_id", "sales_staff_id", "sims_sold", "sims_activated", "ftth_sold",
	"ftth_activated", "customer_type", "remarks", "status", "reviewed_by", "reviewed_at",
	"review_remarks", "created_at",
}

func setupApprovalService(t *testing.T) (*ApprovalService, sqlmock.Sqlmock) {
	db, mock := setupServiceDB(t)
	notifications := NewNotificationService(database.NewNotificationRepository(db), quietLogger())
	return NewApprovalService(database.NewSalesReportRepository(db), notifications, quietLogger()), mock
}

func TestApprove_PendingReport(t *testing.T) {
	service, mock := setupApprovalService(t)
	sess := sessionFor(models.RoleAGM)
	id, staff := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`UPDATE sales_reports r SET (.+) WHERE r.id = \$1 AND r.status = 'pending'`).
		WithArgs(id, models.SalesReportApproved, sess.EmployeeID, nil).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).AddRow(
			id.String(), nil, staff.String(), 4, 3, 1, 1, "individual", nil, "approved",
			sess.EmployeeID.String(), now, nil, now))
	expectNotification(mock, staff)

	report, err := service.Approve(sess, id, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SalesReportApproved, report.Status)
	require.NotNil(t, report.ReviewedBy)
	assert.Equal(t, sess.EmployeeID, *report.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_TerminalReportIsNotChanged(t *testing.T) {
	service, mock := setupApprovalService(t)
	sess := sessionFor(models.RoleDGM)
	id, staff, firstReviewer := uuid.New(), uuid.New(), uuid.New()
	reviewedAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	// the conditional update matches nothing
	mock.ExpectQuery(`UPDATE sales_reports r SET`).
		WithArgs(id, models.SalesReportRejected, sess.EmployeeID, nil).
		WillReturnRows(sqlmock.NewRows(reportRowColumns))
	mock.ExpectQuery(`SELECT (.+) FROM sales_reports r WHERE r.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).AddRow(
			id.String(), nil, staff.String(), 4, 3, 1, 1, "individual", nil, "approved",
			firstReviewer.String(), reviewedAt, nil, reviewedAt))

	report, err := service.Reject(sess, id, nil)
	assert.Nil(t, report)
	assertCode(t, err, CodeConflict)
	assert.Contains(t, err.Error(), "already approved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_MissingReport(t *testing.T) {
	service, mock := setupApprovalService(t)
	sess := sessionFor(models.RoleGM)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE sales_reports r SET`).WillReturnRows(sqlmock.NewRows(reportRowColumns))
	mock.ExpectQuery(`FROM sales_reports r WHERE r.id`).WillReturnRows(sqlmock.NewRows(reportRowColumns))

	_, err := service.Approve(sess, id, nil)
	assertCode(t, err, CodeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_StaffCannotApprove(t *testing.T) {
	service, mock := setupApprovalService(t)

	_, err := service.Approve(sessionFor(models.RoleStaff), uuid.New(), nil)
	assertCode(t, err, CodeForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReports_StaffSeesOwnOnly(t *testing.T) {
	service, mock := setupApprovalService(t)
	sess := sessionFor(models.RoleStaff)

	mock.ExpectQuery(`FROM sales_reports r\s+LEFT JOIN employees e (.+) AND r.sales_staff_id = \$1`).
		WithArgs(sess.EmployeeID).
		WillReturnRows(sqlmock.NewRows(append(reportRowColumns, "staff_name")))

	reports, err := service.List(sess, "")
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}
