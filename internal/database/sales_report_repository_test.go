package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/models"
)

var salesReportRowColumns = []string{
	"id", "event_id", "sales_staff_id", "sims_sold", "sims_activated", "ftth_sold",
	"ftth_activated", "customer_type", "remarks", "status", "reviewed_by", "reviewed_at",
	"review_remarks", "created_at",
}

func TestSalesReportRepository_Review(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSalesReportRepository(db)
	id, staff, reviewer := uuid.New(), uuid.New(), uuid.New()
	remarks := "verified with retailer"

	t.Run("Pending report is reviewed", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE sales_reports r SET (.+) WHERE r.id = \$1 AND r.status = 'pending'`).
			WithArgs(id, models.SalesReportApproved, reviewer, &remarks).
			WillReturnRows(sqlmock.NewRows(salesReportRowColumns).AddRow(
				id.String(), nil, staff.String(), 10, 8, 2, 1, "individual", nil, "approved",
				reviewer.String(), time.Now(), remarks, time.Now()))

		report, err := repo.Review(id, models.SalesReportApproved, reviewer, &remarks)
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, models.SalesReportApproved, report.Status)
		assert.Equal(t, reviewer, *report.ReviewedBy)
		assert.Nil(t, report.EventID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Terminal report is untouched", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE sales_reports r SET`).
			WillReturnRows(sqlmock.NewRows(salesReportRowColumns))

		report, err := repo.Review(id, models.SalesReportRejected, reviewer, nil)
		require.NoError(t, err)
		assert.Nil(t, report)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesReportRepository_ListOwn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSalesReportRepository(db)
	staff := uuid.New()

	mock.ExpectQuery(`FROM sales_reports r\s+LEFT JOIN employees e (.+) AND r.status = \$1 AND r.sales_staff_id = \$2`).
		WithArgs(models.SalesReportPending, staff).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, salesReportRowColumns...), "staff_name")).
			AddRow(uuid.New().String(), nil, staff.String(), 3, 3, 0, 0, "business", nil, "pending",
				nil, nil, nil, time.Now(), "Anitha K"))

	reports, err := repo.List(models.SalesReportFilter{Status: models.SalesReportPending, SalesStaffID: &staff})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Anitha K", reports[0].StaffName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
